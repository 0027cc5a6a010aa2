package models

import (
	"time"

	"gorm.io/gorm"
)

// OTP is a single-use numeric passcode bound to an email address.
// At most one unconsumed code may exist per subject; a partial unique
// index on (subject_email) WHERE NOT used enforces this at the store.
type OTP struct {
	gorm.Model
	SubjectEmail string    `json:"subjectEmail" gorm:"column:subject_email;not null"`
	Code         string    `json:"-" gorm:"column:code;not null"`
	ExpiresAt    time.Time `json:"expiresAt" gorm:"column:expires_at;not null"`
	Used         bool      `json:"used" gorm:"column:used;default:false"`
}

// TableName specifies the table name
func (OTP) TableName() string {
	return "otps"
}

// IsValid checks if the OTP is valid (not expired and not used)
func (o *OTP) IsValid() bool {
	return !o.Used && time.Now().Before(o.ExpiresAt)
}
