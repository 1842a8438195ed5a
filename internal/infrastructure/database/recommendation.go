package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"heyday/internal/domain/entity"
	"heyday/internal/domain/repository"
)

type recommendationRepository struct {
	db *gorm.DB
}

// NewRecommendationRepository creates a new instance of RecommendationRepository.
func NewRecommendationRepository(db *gorm.DB) repository.RecommendationRepository {
	return &recommendationRepository{db: db}
}

// CreateAll inserts the rows of one recommendation run.
func (r *recommendationRepository) CreateAll(ctx context.Context, recs []*entity.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(recs).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to create recommendations: %w", err)
	}
	return nil
}

// FindByUserID retrieves a user's recommendation history, newest first.
func (r *recommendationRepository) FindByUserID(ctx context.Context, userID string, limit int) ([]*entity.Recommendation, error) {
	var recs []*entity.Recommendation
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find recommendations for user %s: %w", userID, err)
	}
	return recs, nil
}
