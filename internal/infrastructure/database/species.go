package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"heyday/internal/domain/entity"
	"heyday/internal/domain/repository"
	appErrors "heyday/internal/pkg/errors"
)

type speciesRepository struct {
	db *gorm.DB
}

// NewSpeciesRepository creates a new instance of SpeciesRepository.
func NewSpeciesRepository(db *gorm.DB) repository.SpeciesRepository {
	return &speciesRepository{db: db}
}

// FindByName retrieves a species by its normalized name.
func (r *speciesRepository) FindByName(ctx context.Context, name string) (*entity.Species, error) {
	var species entity.Species
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&species).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: name %s", appErrors.ErrSpeciesNotFound, name)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find species by name %s: %w", name, err)
	}
	return &species, nil
}

// FindByID retrieves a species by its ID.
func (r *speciesRepository) FindByID(ctx context.Context, id uint) (*entity.Species, error) {
	var species entity.Species
	if err := r.db.WithContext(ctx).First(&species, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", appErrors.ErrSpeciesNotFound, id)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find species by id %d: %w", id, err)
	}
	return &species, nil
}

// Upsert inserts the species or updates the existing row with the same
// normalized name. The ID of the stored row is written back to species.
func (r *speciesRepository) Upsert(ctx context.Context, species *entity.Species) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			UpdateAll: true,
		}).
		Create(species).Error
	if err != nil {
		return fmt.Errorf("🔴 ERROR: failed to upsert species %s: %w", species.Name, err)
	}
	if species.ID == 0 {
		// The conflict path does not report the existing row's ID.
		stored, err := r.FindByName(ctx, species.Name)
		if err != nil {
			return err
		}
		species.ID = stored.ID
	}
	return nil
}

// Count returns the number of catalog rows.
func (r *speciesRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&entity.Species{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("🔴 ERROR: failed to count species: %w", err)
	}
	return n, nil
}
