package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"couponbot/internal/pkg/config"
	"couponbot/internal/pkg/errs"
)

// TelegramClient posts messages through the Bot API's sendMessage method.
type TelegramClient struct {
	cfg        config.TelegramConfig
	httpClient *http.Client
}

func NewTelegramClient(cfg config.TelegramConfig) *TelegramClient {
	return &TelegramClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

func (c *TelegramClient) SendMessage(ctx context.Context, chatID, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "Markdown",
	})
	if err != nil {
		return errs.Wrap(err, "failed to marshal telegram message")
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.cfg.APIBaseURL, c.cfg.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errs.Wrap(err, "failed to build telegram request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Wrap(err, "telegram request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errs.New(fmt.Sprintf("telegram returned %d: %s", resp.StatusCode, respBody))
	}

	var result sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return errs.Wrap(err, "failed to decode telegram response")
	}
	if !result.OK {
		return errs.New("telegram rejected message: " + result.Description)
	}
	return nil
}
