package orchestrator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/davidrendon/identia-backend/internal/events"
	"github.com/davidrendon/identia-backend/internal/notifier"
)

// UserRegisteredHandler welcomes a new account by email, and by SMS
// when a phone number was provided.
type UserRegisteredHandler struct {
	relay notifier.Relay
	log   *zap.Logger
}

func NewUserRegisteredHandler(relay notifier.Relay, log *zap.Logger) *UserRegisteredHandler {
	return &UserRegisteredHandler{relay: relay, log: log}
}

func (h *UserRegisteredHandler) Type() string { return events.TypeUserRegistered }

func (h *UserRegisteredHandler) Handle(ctx context.Context, evt events.Event) error {
	text := fmt.Sprintf("Hello %s, your Identia account has been created.", evt.Name)
	if err := h.relay.SendEmail(ctx, evt.Email, "Welcome to Identia", text); err != nil {
		return err
	}

	if evt.Phone != "" {
		sms := "Welcome to Identia! Your account is ready."
		if err := h.relay.SendSMS(ctx, evt.Phone, sms); err != nil {
			// Email already went out; a failed SMS is not worth a retry
			// of the whole event.
			h.log.Warn("welcome sms failed", zap.String("phone", evt.Phone), zap.Error(err))
		}
	}
	return nil
}

// OTPRequestedHandler delivers the one-time code to the subject. This
// is the only path the code travels; the API response never carries it.
type OTPRequestedHandler struct {
	relay notifier.Relay
	log   *zap.Logger
}

func NewOTPRequestedHandler(relay notifier.Relay, log *zap.Logger) *OTPRequestedHandler {
	return &OTPRequestedHandler{relay: relay, log: log}
}

func (h *OTPRequestedHandler) Type() string { return events.TypeOTPRequested }

func (h *OTPRequestedHandler) Handle(ctx context.Context, evt events.Event) error {
	text := fmt.Sprintf("Your verification code is %s. It expires in a few minutes.", evt.Code)
	return h.relay.SendEmail(ctx, evt.Email, "Your Identia verification code", text)
}

// PasswordChangedHandler confirms a password change to the subject.
type PasswordChangedHandler struct {
	relay notifier.Relay
	log   *zap.Logger
}

func NewPasswordChangedHandler(relay notifier.Relay, log *zap.Logger) *PasswordChangedHandler {
	return &PasswordChangedHandler{relay: relay, log: log}
}

func (h *PasswordChangedHandler) Type() string { return events.TypePasswordChanged }

func (h *PasswordChangedHandler) Handle(ctx context.Context, evt events.Event) error {
	text := "Your Identia password was just changed. If this wasn't you, contact support immediately."
	return h.relay.SendEmail(ctx, evt.Email, "Your password was changed", text)
}
