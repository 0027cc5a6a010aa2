package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Relay is the notifier as seen by other services.
type Relay interface {
	SendEmail(ctx context.Context, to, subject, text string) error
	SendSMS(ctx context.Context, to, body string) error
}

// Client calls the relay service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) SendEmail(ctx context.Context, to, subject, text string) error {
	return c.post(ctx, "/send-email", map[string]string{
		"to":      to,
		"subject": subject,
		"text":    text,
	})
}

func (c *Client) SendSMS(ctx context.Context, to, body string) error {
	return c.post(ctx, "/send-sms", map[string]string{
		"to":   to,
		"body": body,
	})
}

func (c *Client) post(ctx context.Context, path string, payload map[string]string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notifier returned status %d for %s", resp.StatusCode, path)
	}
	return nil
}
