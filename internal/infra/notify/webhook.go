package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"couponbot/internal/pkg/config"
	"couponbot/internal/pkg/errs"
	"couponbot/internal/usecase/commands"
)

// WebhookClient posts redemption notifications to merchant-owned endpoints.
type WebhookClient struct {
	httpClient *http.Client
}

func NewWebhookClient(cfg config.WebhookConfig) *WebhookClient {
	return &WebhookClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *WebhookClient) Send(ctx context.Context, url string, payload commands.WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "failed to marshal webhook payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errs.Wrap(err, "failed to build webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Wrap(err, "webhook request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errs.New(fmt.Sprintf("webhook endpoint returned %d", resp.StatusCode))
	}
	return nil
}
