package repository

import (
	"context"

	"heyday/internal/domain/entity"
)

// DeviceTokenRepository defines the interface for push destination data
// operations. It is the dispatcher's user-profile resolver: a user's
// destinations are their active tokens.
type DeviceTokenRepository interface {
	// FindActiveByUser retrieves all active tokens for a user. An empty
	// result means the user has no resolvable push address.
	FindActiveByUser(ctx context.Context, userID string) ([]*entity.DeviceToken, error)
	// Register inserts the token or reactivates/reassigns an existing row
	// with the same token value.
	Register(ctx context.Context, token *entity.DeviceToken) error
	// Deactivate marks a token inactive. Unknown tokens are a no-op.
	Deactivate(ctx context.Context, token string) error
}
