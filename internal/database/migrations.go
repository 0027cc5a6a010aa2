package database

import (
	"gorm.io/gorm"

	"github.com/davidrendon/identia-backend/internal/models"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	if err := db.AutoMigrate(
		&models.User{},
		&models.OTP{},
	); err != nil {
		return err
	}

	// Email is unique only among live accounts; soft-deleted rows keep
	// their address without blocking re-registration.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_active_email ON users(email) WHERE deleted_at IS NULL`,
	).Error; err != nil {
		return err
	}

	// At most one unconsumed OTP per subject. Inserting while one is
	// live violates this index, which the store reports as a conflict.
	// The predicate works in both Postgres and SQLite.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_otps_active_subject ON otps(subject_email) WHERE NOT used`,
	).Error; err != nil {
		return err
	}

	return nil
}
