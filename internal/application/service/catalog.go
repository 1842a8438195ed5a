package service

import (
	"context"

	"heyday/internal/domain/entity"
)

// PlantDataAPI resolves a plant name against the external plant
// database. Lookup returns ErrSpeciesNotFound when the provider has no
// match and ErrPlantAPI for transport or protocol failures.
type PlantDataAPI interface {
	Lookup(ctx context.Context, name string) (*entity.Species, error)
}

// CatalogService defines the interface for the species catalog.
type CatalogService interface {
	// Enrich resolves a species name to a catalog row: cache first,
	// then the store, then the external plant-data API. API failures
	// degrade to a name-only row and are never fatal to the caller.
	Enrich(ctx context.Context, name string) (*entity.Species, error)
	// SeedIfEmpty loads the bundled catalog file when the table is empty.
	SeedIfEmpty(ctx context.Context) error
	// Reseed upserts the bundled catalog file unconditionally.
	Reseed(ctx context.Context) error
}
