package service

import (
	"context"

	"heyday/internal/application/dto"
)

// ProfileService defines the interface for the user's location context.
type ProfileService interface {
	// GetProfile retrieves the stored profile.
	// Returns ErrProfileNotFound when none has been written yet.
	GetProfile(ctx context.Context, userID string) (dto.ProfileResponse, error)
	// UpsertProfile writes the profile row for the user.
	UpsertProfile(ctx context.Context, userID string, req dto.UpsertProfileRequest) (dto.ProfileResponse, error)
}
