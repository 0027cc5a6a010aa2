// Package notifier relays messages to the email and SMS providers and
// exposes the relay over HTTP for the other services.
package notifier

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailSender delivers a plain-text email and returns a provider
// tracking identifier.
type EmailSender interface {
	Send(ctx context.Context, to, subject, text string) (string, error)
}

type SendGridSender struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

func NewSendGridSender(apiKey, from, fromName string) *SendGridSender {
	return &SendGridSender{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: fromName,
	}
}

func (s *SendGridSender) Send(_ context.Context, to, subject, text string) (string, error) {
	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.from),
		subject,
		mail.NewEmail("", to),
		text,
		"",
	)

	resp, err := s.client.Send(message)
	if err != nil {
		return "", fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("sendgrid send failed: status %d", resp.StatusCode)
	}

	if ids := resp.Headers["X-Message-Id"]; len(ids) > 0 {
		return ids[0], nil
	}
	// SendGrid accepted the message but returned no id.
	return uuid.NewString(), nil
}
