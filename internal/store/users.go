package store

import (
	"context"

	"github.com/davidrendon/identia-backend/internal/models"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error, ErrDuplicateEmail)
}

func (s *Store) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, ErrDuplicateEmail)
	}
	return &user, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err, ErrDuplicateEmail)
	}
	return &user, nil
}

// UpdateUser persists the given user, including fields reset to their
// zero value.
func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Save(user).Error, ErrDuplicateEmail)
}

// UpdatePassword overwrites the stored hash for the account with the
// given email.
func (s *Store) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return translate(res.Error, ErrDuplicateEmail)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDeleteUser flags the record as deleted without removing the row.
func (s *Store) SoftDeleteUser(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return translate(res.Error, ErrDuplicateEmail)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UsersPage returns one page of live users plus the total count.
// Offset is (page-1)*size; the caller validates page and size bounds.
func (s *Store) UsersPage(ctx context.Context, page, size int) ([]models.User, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, ErrDuplicateEmail)
	}

	var users []models.User
	err := s.db.WithContext(ctx).
		Order("id").
		Offset((page - 1) * size).
		Limit(size).
		Find(&users).Error
	if err != nil {
		return nil, 0, translate(err, ErrDuplicateEmail)
	}
	return users, total, nil
}
