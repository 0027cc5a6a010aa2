package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User is an account on the platform. Email uniqueness is scoped to
// non-deleted rows by a partial index created in migrations, so a
// soft-deleted user frees their address for re-registration.
type User struct {
	gorm.Model
	Email        string `gorm:"column:email;not null"`
	Name         string `gorm:"column:name;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	Phone        string `gorm:"column:phone"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// SetPassword stores a bcrypt hash of the plaintext password.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
