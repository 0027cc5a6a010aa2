// Package otp implements the one-time-passcode lifecycle: issuance,
// single-use verification with expiry, and OTP-gated password recovery.
package otp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/davidrendon/identia-backend/internal/events"
	"github.com/davidrendon/identia-backend/internal/models"
	"github.com/davidrendon/identia-backend/internal/store"
	"github.com/davidrendon/identia-backend/pkg/utils"
)

var (
	// ErrValidation reports missing or malformed input; it is raised
	// before any store call.
	ErrValidation = errors.New("validation error")
	// ErrInvalidOTP reports a failed verification during password
	// recovery: wrong code, expired code, or none issued.
	ErrInvalidOTP = errors.New("invalid or expired OTP")
)

// Revoker invalidates outstanding session tokens for a subject.
type Revoker interface {
	Revoke(ctx context.Context, email string) error
}

type Service struct {
	store   *store.Store
	events  events.Publisher
	revoker Revoker
	ttl     time.Duration
	log     *zap.Logger
}

func NewService(st *store.Store, pub events.Publisher, revoker Revoker, ttl time.Duration, log *zap.Logger) *Service {
	if ttl <= 0 {
		ttl = utils.OTPExpiration
	}
	return &Service{store: st, events: pub, revoker: revoker, ttl: ttl, log: log}
}

// Issue generates a fresh 6-digit code for the subject and persists it.
// The code travels to the user through the notification pipeline, never
// through the API response. Fails with store.ErrActiveOTP while an
// unexpired unconsumed code exists.
func (s *Service) Issue(ctx context.Context, email string) (*models.OTP, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	code, err := utils.GenerateOTPCode()
	if err != nil {
		return nil, err
	}

	rec, err := s.store.CreateOTP(ctx, email, code, s.ttl)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:  events.TypeOTPRequested,
		Email: email,
		Code:  code,
	})

	return rec, nil
}

// Verify consumes the subject's active code iff the submitted one
// matches and has not expired. A mismatch or an expired code is a
// business negative (false, nil), not a fault.
func (s *Service) Verify(ctx context.Context, email, submitted string) (bool, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(submitted) == "" {
		return false, fmt.Errorf("%w: email and otp are required", ErrValidation)
	}

	rec, err := s.store.ActiveOTP(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if rec.Code != submitted || !rec.IsValid() {
		return false, nil
	}

	if err := s.store.MarkOTPUsed(ctx, rec.ID); err != nil {
		return false, err
	}
	return true, nil
}

// RecoverPassword verifies the code, then overwrites the subject's
// password with a bcrypt hash of newPassword. The OTP stays consumed
// even if the update fails; there is no compensation step. On success
// outstanding tokens are revoked and a password-changed event goes out.
func (s *Service) RecoverPassword(ctx context.Context, email, submitted, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}

	ok, err := s.Verify(ctx, email, submitted)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidOTP
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.store.UpdatePassword(ctx, email, string(hash)); err != nil {
		return err
	}

	if s.revoker != nil {
		if err := s.revoker.Revoke(ctx, email); err != nil {
			s.log.Warn("failed to revoke tokens after password change",
				zap.String("email", email), zap.Error(err))
		}
	}

	s.publish(ctx, events.Event{
		Type:  events.TypePasswordChanged,
		Email: email,
	})

	return nil
}

// publish is best-effort: a dead broker must not fail the request.
func (s *Service) publish(ctx context.Context, evt events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, evt); err != nil {
		s.log.Warn("event publish failed",
			zap.String("type", evt.Type), zap.Error(err))
	}
}
