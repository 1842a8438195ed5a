package repository

import (
	"context"

	"heyday/internal/domain/entity"
)

// UserProfileRepository defines the interface for user profile data operations.
type UserProfileRepository interface {
	// FindByUserID retrieves a user's profile.
	// Returns ErrProfileNotFound when no row exists.
	FindByUserID(ctx context.Context, userID string) (*entity.UserProfile, error)
	// Upsert inserts or updates the profile row for the user.
	Upsert(ctx context.Context, profile *entity.UserProfile) error
}
