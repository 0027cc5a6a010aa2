package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/davidrendon/identia-backend/internal/models"
)

// CreateOTP inserts a fresh code for the subject. Expired leftovers are
// retired inside the same transaction so the active-subject index only
// guards codes that could still verify; if a live one remains, the
// insert trips the index and the call reports ErrActiveOTP. This is the
// atomic check-and-insert that replaces a racy read-then-write.
func (s *Store) CreateOTP(ctx context.Context, email, code string, ttl time.Duration) (*models.OTP, error) {
	rec := &models.OTP{
		SubjectEmail: email,
		Code:         code,
		ExpiresAt:    time.Now().Add(ttl),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.OTP{}).
			Where("subject_email = ? AND NOT used AND expires_at <= ?", email, time.Now()).
			Update("used", true).Error; err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
	if err != nil {
		return nil, translate(err, ErrActiveOTP)
	}
	return rec, nil
}

// ActiveOTP returns the most recent unconsumed code for the subject,
// expired or not; the lifecycle manager decides what expiry means.
func (s *Store) ActiveOTP(ctx context.Context, email string) (*models.OTP, error) {
	var rec models.OTP
	err := s.db.WithContext(ctx).
		Where("subject_email = ? AND NOT used", email).
		Order("created_at DESC").
		First(&rec).Error
	if err != nil {
		return nil, translate(err, ErrActiveOTP)
	}
	return &rec, nil
}

// MarkOTPUsed consumes the code; once used it can never verify again.
func (s *Store) MarkOTPUsed(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Model(&models.OTP{}).
		Where("id = ?", id).
		Update("used", true)
	if res.Error != nil {
		return translate(res.Error, ErrActiveOTP)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
