package dto

import (
	"time"

	"heyday/internal/domain/caldate"
	"heyday/internal/domain/entity"
)

// SpeciesResponse is the DTO for sending catalog species information to the client.
type SpeciesResponse struct {
	ID                   uint   `json:"id"`
	Name                 string `json:"name"`
	CommonName           string `json:"common_name,omitempty"`
	ScientificName       string `json:"scientific_name,omitempty"`
	WateringBenchmark    string `json:"watering_benchmark,omitempty"`
	WateringIntervalDays *int   `json:"watering_interval_days,omitempty"`
	Sunlight             string `json:"sunlight,omitempty"`
	MaintenanceCategory  string `json:"maintenance,omitempty"`
	PoisonousToHumans    bool   `json:"poisonous_to_humans"`
	PoisonousToPets      bool   `json:"poisonous_to_pets"`
	DefaultImageURL      string `json:"image_url,omitempty"`
	CareNotes            string `json:"care_notes,omitempty"`
}

// ToSpeciesResponse converts an entity.Species to a SpeciesResponse DTO.
func ToSpeciesResponse(s *entity.Species) *SpeciesResponse {
	if s == nil {
		return nil
	}
	return &SpeciesResponse{
		ID:                   s.ID,
		Name:                 s.Name,
		CommonName:           s.CommonName,
		ScientificName:       s.ScientificName,
		WateringBenchmark:    s.WateringBenchmark,
		WateringIntervalDays: s.WateringIntervalDays,
		Sunlight:             s.Sunlight,
		MaintenanceCategory:  s.MaintenanceCategory,
		PoisonousToHumans:    s.PoisonousToHumans,
		PoisonousToPets:      s.PoisonousToPets,
		DefaultImageURL:      s.DefaultImageURL,
		CareNotes:            s.CareNotes,
	}
}

// PlantResponse is the DTO for sending plant information to the client (e.g., listing the collection).
type PlantResponse struct {
	ID                    string           `json:"id"`
	Nickname              string           `json:"nickname,omitempty"`
	ImageURL              string           `json:"image_url,omitempty"`
	IntervalDays          int              `json:"interval_days"`
	EffectiveIntervalDays int              `json:"effective_interval_days"`
	LastWateredOn         caldate.Date     `json:"last_watered_on"`
	NextWaterOn           caldate.Date     `json:"next_water_on"`
	Species               *SpeciesResponse `json:"species,omitempty"`
	CreatedAt             time.Time        `json:"created_at"`
}

// ToPlantResponse converts an entity.UserPlant to a PlantResponse DTO.
func ToPlantResponse(p *entity.UserPlant) PlantResponse {
	return PlantResponse{
		ID:                    p.ID,
		Nickname:              p.Nickname,
		ImageURL:              p.ImageURL,
		IntervalDays:          p.IntervalDays,
		EffectiveIntervalDays: p.EffectiveInterval(),
		LastWateredOn:         p.LastWateredOn,
		NextWaterOn:           p.NextWaterOn,
		Species:               ToSpeciesResponse(p.Species),
		CreatedAt:             p.CreatedAt,
	}
}

// ToPlantResponseList converts a slice of entity.UserPlant to a slice of PlantResponse DTOs.
func ToPlantResponseList(plants []*entity.UserPlant) []PlantResponse {
	list := make([]PlantResponse, len(plants))
	for i, p := range plants {
		list[i] = ToPlantResponse(p)
	}
	return list
}

// AddPlantRequest is the DTO for adding a plant to the user's collection.
type AddPlantRequest struct {
	SpeciesName  string `json:"species_name"`
	Nickname     string `json:"nickname"`
	IntervalDays int    `json:"interval_days"` // 0 means unset; the species default applies
	ImageURL     string `json:"image_url"`
}

// UpdatePlantRequest is the DTO for editing a plant's display fields.
type UpdatePlantRequest struct {
	Nickname *string `json:"nickname"`
	ImageURL *string `json:"image_url"`
}
