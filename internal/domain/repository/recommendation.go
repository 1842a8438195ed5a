package repository

import (
	"context"

	"heyday/internal/domain/entity"
)

// RecommendationRepository defines the interface for persisted
// recommendation rows.
type RecommendationRepository interface {
	// CreateAll inserts the rows of one recommendation run.
	CreateAll(ctx context.Context, recs []*entity.Recommendation) error
	// FindByUserID retrieves a user's recommendation history, newest
	// first, capped at limit.
	FindByUserID(ctx context.Context, userID string, limit int) ([]*entity.Recommendation, error)
}
