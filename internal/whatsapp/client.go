package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mariposahq/anchor/internal/models"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Credentials is one Meta Business account credential set. Users are
// routed to a set via their account index.
type Credentials struct {
	PhoneNumberID string
	AccessToken   string
}

// Client talks to the WhatsApp Cloud API for a single credential set.
// Sends are rate limited and carry a bounded timeout; a timeout is a
// per-recipient failure, never fatal for a sweep.
type Client struct {
	apiURL        string
	phoneNumberID string
	accessToken   string
	client        *http.Client
	limiter       *rate.Limiter
	logger        *zap.Logger
}

func NewClient(apiURL string, credentials Credentials, logger *zap.Logger) (*Client, error) {
	if apiURL == "" || credentials.PhoneNumberID == "" || credentials.AccessToken == "" {
		return nil, errors.New("whatsapp credentials are incomplete")
	}
	return &Client{
		apiURL:        apiURL,
		phoneNumberID: credentials.PhoneNumberID,
		accessToken:   credentials.AccessToken,
		client:        &http.Client{Timeout: 8 * time.Second},
		limiter:       rate.NewLimiter(rate.Limit(10), 20),
		logger:        logger,
	}, nil
}

func (client *Client) SendText(ctx context.Context, recipient string, body string) error {
	return client.post(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                recipient,
		"type":              "text",
		"text":              map[string]string{"body": body},
	})
}

func (client *Client) SendButtons(ctx context.Context, recipient string, body string, buttons []models.Button) error {
	buttonObjects := make([]map[string]any, 0, len(buttons))
	for _, button := range buttons {
		buttonObjects = append(buttonObjects, map[string]any{
			"type": "reply",
			"reply": map[string]string{
				"id":    button.ID,
				"title": button.Title,
			},
		})
	}
	return client.post(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                recipient,
		"type":              "interactive",
		"interactive": map[string]any{
			"type": "button",
			"body": map[string]string{"text": body},
			"action": map[string]any{
				"buttons": buttonObjects,
			},
		},
	})
}

func (client *Client) post(ctx context.Context, payload map[string]any) error {
	if err := client.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/messages", client.apiURL, client.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+client.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("whatsapp status %d: %s", resp.StatusCode, string(raw))
	}

	var ack struct {
		Messages []struct {
			ID string `json:"id"`
		} `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err == nil && len(ack.Messages) > 0 {
		client.logger.Debug("message accepted",
			zap.String("message_id", ack.Messages[0].ID))
	}
	return nil
}
