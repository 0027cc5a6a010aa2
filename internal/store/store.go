// Package store is the persistence gateway: every read and write of
// user and OTP records goes through it. Underlying storage faults are
// wrapped in ErrDatabase; expected business outcomes (missing rows,
// duplicate emails, an already-active OTP) get their own sentinels so
// handlers can map them to distinct HTTP statuses.
package store

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound reports a missing (or soft-deleted) record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail reports a registration against an email that a
	// live account already uses.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrActiveOTP reports an issuance attempt while an unconsumed,
	// unexpired code exists for the same subject.
	ErrActiveOTP = errors.New("an active OTP already exists for this subject")
	// ErrDatabase wraps unexpected storage faults.
	ErrDatabase = errors.New("database error")
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func translate(err error, onDuplicate error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return onDuplicate
	default:
		return errors.Join(ErrDatabase, err)
	}
}
