package service

import (
	"context"

	"heyday/internal/application/dto"
)

// Generator produces text with the generative model. GenerateJSON
// returns the raw model output, which may arrive wrapped in markdown
// fences; Model names the model for persisted rows.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	Model() string
}

// RecommendService defines the interface for location-based plant
// recommendations.
type RecommendService interface {
	// ForLocation suggests up to limit plants for the user's stored
	// location, enriches each through the catalog, and persists the run.
	ForLocation(ctx context.Context, userID string, limit int) (dto.RecommendationResponse, error)
}
