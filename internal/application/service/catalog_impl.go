package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"heyday/internal/domain/entity"
	"heyday/internal/domain/repository"
	"heyday/internal/infrastructure/seedfile"
	appErrors "heyday/internal/pkg/errors"
	"heyday/internal/pkg/logger"
)

// catalogCacheSize bounds the in-process enrichment cache.
const catalogCacheSize = 256

type catalogService struct {
	speciesRepo repository.SpeciesRepository
	api         PlantDataAPI
	seedPath    string
	cache       *lru.Cache[string, *entity.Species]
	log         logger.Logger
}

// NewCatalogService creates a new instance of CatalogService implementation.
// seedPath points at the bundled species YAML; empty disables seeding.
func NewCatalogService(
	speciesRepo repository.SpeciesRepository,
	api PlantDataAPI,
	seedPath string,
	log logger.Logger,
) (CatalogService, error) {
	cache, err := lru.New[string, *entity.Species](catalogCacheSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErrors.ErrInternalServer, err)
	}
	return &catalogService{
		speciesRepo: speciesRepo,
		api:         api,
		seedPath:    seedPath,
		cache:       cache,
		log:         log,
	}, nil
}

// Enrich resolves a species name to a catalog row.
func (s *catalogService) Enrich(ctx context.Context, name string) (*entity.Species, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return nil, fmt.Errorf("%w: empty species name", appErrors.ErrInvalidArgument)
	}

	if cached, ok := s.cache.Get(normalized); ok {
		return cached, nil
	}

	species, err := s.speciesRepo.FindByName(ctx, normalized)
	if err == nil {
		s.cache.Add(normalized, species)
		return species, nil
	}
	if !errors.Is(err, appErrors.ErrSpeciesNotFound) {
		s.log.Error(fmt.Sprintf("Failed to look up species %q in the catalog", normalized), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	species, err = s.api.Lookup(ctx, normalized)
	if err != nil {
		// Degrade to a name-only row rather than failing the caller.
		// The row is cached but not stored, so a later process retries.
		s.log.Warn(fmt.Sprintf("Plant-data lookup for %q failed: %v", normalized, err))
		fallback := &entity.Species{Name: normalized}
		s.cache.Add(normalized, fallback)
		return fallback, nil
	}

	if err := s.speciesRepo.Upsert(ctx, species); err != nil {
		s.log.Error(fmt.Sprintf("Failed to store enriched species %q", normalized), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.cache.Add(normalized, species)
	s.log.Info(fmt.Sprintf("Enriched species %q from the plant-data API.", normalized))
	return species, nil
}

// SeedIfEmpty loads the bundled catalog file when the table is empty.
func (s *catalogService) SeedIfEmpty(ctx context.Context) error {
	count, err := s.speciesRepo.Count(ctx)
	if err != nil {
		s.log.Error("Failed to count catalog rows before seeding", err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if count > 0 {
		s.log.Debug(fmt.Sprintf("Catalog already holds %d species; skipping seed.", count))
		return nil
	}
	return s.Reseed(ctx)
}

// Reseed upserts the bundled catalog file unconditionally.
func (s *catalogService) Reseed(ctx context.Context) error {
	if s.seedPath == "" {
		return nil
	}

	rows, err := seedfile.Load(s.seedPath)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to load seed file %s", s.seedPath), err)
		return err
	}
	for i := range rows {
		if err := s.speciesRepo.Upsert(ctx, &rows[i]); err != nil {
			s.log.Error(fmt.Sprintf("Failed to seed species %q", rows[i].Name), err)
			return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
		}
	}

	// Seed rows supersede anything cached from earlier lookups.
	s.cache.Purge()
	s.log.Info(fmt.Sprintf("Seeded %d species from %s.", len(rows), s.seedPath))
	return nil
}
