package store

import (
	"context"
	"errors"

	"neuroscan_backend/internal/domain"

	"gorm.io/gorm"
)

// UserStore persists User records and resolves them by their two natural
// keys, email and embg.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user. Returns ErrDuplicate when the email or embg is
// already taken. The database must be opened with TranslateError so driver
// duplicate-key errors surface as gorm.ErrDuplicatedKey.
func (s *UserStore) Create(ctx context.Context, u *domain.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// FindByEmail returns the user with the given email, or ErrNotFound.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmbg returns the user with the given national-id string, or
// ErrNotFound.
func (s *UserStore) FindByEmbg(ctx context.Context, embg string) (*domain.User, error) {
	var u domain.User
	err := s.db.WithContext(ctx).Where("embg = ?", embg).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
