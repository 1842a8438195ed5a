package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"heyday/internal/domain/entity"
	"heyday/internal/domain/repository"
	appErrors "heyday/internal/pkg/errors"
)

type userProfileRepository struct {
	db *gorm.DB
}

// NewUserProfileRepository creates a new instance of UserProfileRepository.
func NewUserProfileRepository(db *gorm.DB) repository.UserProfileRepository {
	return &userProfileRepository{db: db}
}

// FindByUserID retrieves a user's profile.
func (r *userProfileRepository) FindByUserID(ctx context.Context, userID string) (*entity.UserProfile, error) {
	var profile entity.UserProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", appErrors.ErrProfileNotFound, userID)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find profile for user %s: %w", userID, err)
	}
	return &profile, nil
}

// Upsert inserts or updates the profile row for the user.
func (r *userProfileRepository) Upsert(ctx context.Context, profile *entity.UserProfile) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(profile).Error
	if err != nil {
		return fmt.Errorf("🔴 ERROR: failed to upsert profile for user %s: %w", profile.UserID, err)
	}
	return nil
}
