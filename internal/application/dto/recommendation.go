package dto

import (
	"time"

	"heyday/internal/domain/entity"
)

// RecommendedPlant pairs a suggested name with its catalog entry when
// enrichment succeeded.
type RecommendedPlant struct {
	Name    string           `json:"name"`
	Species *SpeciesResponse `json:"species,omitempty"`
}

// RecommendationResponse is the DTO for sending a recommendation run to the client.
type RecommendationResponse struct {
	Location    string             `json:"location"`
	SourceModel string             `json:"source_model"`
	Plants      []RecommendedPlant `json:"plants"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// ToRecommendedPlant converts a suggested name and its optional species match.
func ToRecommendedPlant(name string, species *entity.Species) RecommendedPlant {
	return RecommendedPlant{
		Name:    name,
		Species: ToSpeciesResponse(species),
	}
}
