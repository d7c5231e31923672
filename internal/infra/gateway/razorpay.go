package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"couponbot/internal/pkg/config"
	"couponbot/internal/pkg/errs"
	"couponbot/internal/usecase/commands"
)

// RazorpayClient creates hosted orders against the Razorpay Orders API.
// Amounts cross this boundary in whole currency units and are converted
// to the gateway's smallest-denomination representation here, nowhere else.
type RazorpayClient struct {
	cfg        config.RazorpayConfig
	httpClient *http.Client
}

func NewRazorpayClient(cfg config.RazorpayConfig) *RazorpayClient {
	return &RazorpayClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"` // smallest denomination (paise for INR)
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

func (c *RazorpayClient) CreateHostedOrder(ctx context.Context, params commands.GatewayOrderParams) (string, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   params.AmountUnits * 100,
		Currency: c.cfg.Currency,
		Receipt:  params.OrderID.String(),
		Notes:    map[string]string{"external_id": params.ExternalID},
	})
	if err != nil {
		return "", errs.Wrap(err, "failed to marshal gateway order")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIBaseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return "", errs.Wrap(err, "failed to build gateway request")
	}
	req.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errs.Wrap(err, "gateway request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", errs.New(fmt.Sprintf("gateway returned %d: %s", resp.StatusCode, respBody))
	}

	var result createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errs.Wrap(err, "failed to decode gateway response")
	}
	if result.ID == "" {
		return "", errs.New("gateway response missing order id")
	}

	return result.ID, nil
}
