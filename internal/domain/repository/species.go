package repository

import (
	"context"

	"heyday/internal/domain/entity"
)

// SpeciesRepository defines the interface for plant catalog data operations.
type SpeciesRepository interface {
	// FindByName retrieves a species by its normalized name.
	// Returns ErrSpeciesNotFound when no row exists.
	FindByName(ctx context.Context, name string) (*entity.Species, error)
	// FindByID retrieves a species by its ID.
	FindByID(ctx context.Context, id uint) (*entity.Species, error)
	// Upsert inserts the species or updates the existing row with the
	// same normalized name.
	Upsert(ctx context.Context, species *entity.Species) error
	// Count returns the number of catalog rows (used to decide seeding).
	Count(ctx context.Context) (int64, error)
}
