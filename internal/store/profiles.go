package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherhub/eventhub-api/internal/models"
	"gorm.io/gorm"
)

// ProfileStore persists user identity and role. Roles are written once at
// signup and never updated.
type ProfileStore struct {
	db *gorm.DB
}

func NewProfileStore(db *gorm.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

func (s *ProfileStore) Create(ctx context.Context, profile *models.UserProfile) error {
	if err := s.db.WithContext(ctx).Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return validationErr("email", "already registered")
		}
		return fmt.Errorf("creating profile: %w", err)
	}
	return nil
}

func (s *ProfileStore) GetByUID(ctx context.Context, uid string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).First(&profile, "uid = ?", uid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return &profile, nil
}

func (s *ProfileStore) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).First(&profile, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return &profile, nil
}
