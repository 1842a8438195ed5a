package service

import (
	"context"

	"heyday/internal/application/dto"
)

// CollectionService defines the interface for the user's plant collection.
type CollectionService interface {
	// AddPlant creates a plant with a default schedule and no watering
	// history, attaching a catalog species when a name is given.
	AddPlant(ctx context.Context, userID string, req dto.AddPlantRequest) (dto.PlantResponse, error)
	// ListPlants retrieves the user's collection, oldest first.
	ListPlants(ctx context.Context, userID string) ([]dto.PlantResponse, error)
	// GetPlant retrieves one plant, ownership-checked.
	GetPlant(ctx context.Context, userID, plantID string) (dto.PlantResponse, error)
	// UpdatePlant edits the plant's display fields.
	UpdatePlant(ctx context.Context, userID, plantID string, req dto.UpdatePlantRequest) (dto.PlantResponse, error)
	// RemovePlant cancels any pending reminder and deletes the plant;
	// its schedule goes with the row.
	RemovePlant(ctx context.Context, userID, plantID string) error
}
