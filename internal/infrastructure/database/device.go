package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"heyday/internal/domain/entity"
	"heyday/internal/domain/repository"
)

type deviceTokenRepository struct {
	db *gorm.DB
}

// NewDeviceTokenRepository creates a new instance of DeviceTokenRepository.
func NewDeviceTokenRepository(db *gorm.DB) repository.DeviceTokenRepository {
	return &deviceTokenRepository{db: db}
}

// FindActiveByUser retrieves all active tokens for a user.
func (r *deviceTokenRepository) FindActiveByUser(ctx context.Context, userID string) ([]*entity.DeviceToken, error) {
	var tokens []*entity.DeviceToken
	if err := r.db.WithContext(ctx).Where("user_id = ? AND active = ?", userID, true).Find(&tokens).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find device tokens for user %s: %w", userID, err)
	}
	return tokens, nil
}

// Register inserts the token or reactivates/reassigns an existing row.
// A token re-registered from another account moves to the new user.
func (r *deviceTokenRepository) Register(ctx context.Context, token *entity.DeviceToken) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "platform", "active"}),
		}).
		Create(token).Error
	if err != nil {
		return fmt.Errorf("🔴 ERROR: failed to register device token for user %s: %w", token.UserID, err)
	}
	return nil
}

// Deactivate marks a token inactive.
func (r *deviceTokenRepository) Deactivate(ctx context.Context, token string) error {
	err := r.db.WithContext(ctx).Model(&entity.DeviceToken{}).Where("token = ?", token).
		Update("active", false).Error
	if err != nil {
		return fmt.Errorf("🔴 ERROR: failed to deactivate device token: %w", err)
	}
	return nil
}
