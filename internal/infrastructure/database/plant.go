package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"heyday/internal/domain/caldate"
	"heyday/internal/domain/entity"
	"heyday/internal/domain/repository"
	appErrors "heyday/internal/pkg/errors"
)

type plantRepository struct {
	db *gorm.DB
}

// NewPlantRepository creates a new instance of PlantRepository.
func NewPlantRepository(db *gorm.DB) repository.PlantRepository {
	return &plantRepository{db: db}
}

// FindByID retrieves a plant (with its species preloaded) by ID.
func (r *plantRepository) FindByID(ctx context.Context, id string) (*entity.UserPlant, error) {
	var plant entity.UserPlant
	if err := r.db.WithContext(ctx).Preload("Species").Where("id = ?", id).First(&plant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %s", appErrors.ErrPlantNotFound, id)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find plant by id %s: %w", id, err)
	}
	return &plant, nil
}

// FindByIDs retrieves the plants for the given IDs.
func (r *plantRepository) FindByIDs(ctx context.Context, ids []string) ([]*entity.UserPlant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var plants []*entity.UserPlant
	if err := r.db.WithContext(ctx).Preload("Species").Where("id IN ?", ids).Find(&plants).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find plants by ids: %w", err)
	}
	return plants, nil
}

// FindByUserID retrieves all plants owned by a user, oldest first.
func (r *plantRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.UserPlant, error) {
	var plants []*entity.UserPlant
	if err := r.db.WithContext(ctx).Preload("Species").Where("user_id = ?", userID).Order("created_at asc").Find(&plants).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find plants by user_id %s: %w", userID, err)
	}
	return plants, nil
}

// FindDue retrieves all plants with next_water_on on or before now.
func (r *plantRepository) FindDue(ctx context.Context, now caldate.Date) ([]*entity.UserPlant, error) {
	var plants []*entity.UserPlant
	if err := r.db.WithContext(ctx).Preload("Species").
		Where("next_water_on IS NOT NULL AND next_water_on <= ?", now).
		Find(&plants).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to query due plants at %s: %w", now, err)
	}
	return plants, nil
}

// Create inserts a new plant row. The species association is read-only
// here: catalog rows are written by the catalog, never as a side effect
// of adding a plant.
func (r *plantRepository) Create(ctx context.Context, plant *entity.UserPlant) error {
	if err := r.db.WithContext(ctx).Omit("Species").Create(plant).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to create plant for user %s: %w", plant.UserID, err)
	}
	return nil
}

// Update saves nickname and image changes for an existing plant.
func (r *plantRepository) Update(ctx context.Context, plant *entity.UserPlant) error {
	err := r.db.WithContext(ctx).Model(&entity.UserPlant{}).Where("id = ?", plant.ID).
		Updates(map[string]any{
			"nickname":  plant.Nickname,
			"image_url": plant.ImageURL,
		}).Error
	if err != nil {
		return fmt.Errorf("🔴 ERROR: failed to update plant %s: %w", plant.ID, err)
	}
	return nil
}

// UpdateSchedule persists last_watered_on and next_water_on only.
func (r *plantRepository) UpdateSchedule(ctx context.Context, id string, lastWateredOn, nextWaterOn caldate.Date) error {
	err := r.db.WithContext(ctx).Model(&entity.UserPlant{}).Where("id = ?", id).
		Updates(map[string]any{
			"last_watered_on": lastWateredOn,
			"next_water_on":   nextWaterOn,
		}).Error
	if err != nil {
		return fmt.Errorf("🔴 ERROR: failed to update schedule for plant %s: %w", id, err)
	}
	return nil
}

// UpdateInterval persists interval_days only.
func (r *plantRepository) UpdateInterval(ctx context.Context, id string, days int) error {
	err := r.db.WithContext(ctx).Model(&entity.UserPlant{}).Where("id = ?", id).
		Update("interval_days", days).Error
	if err != nil {
		return fmt.Errorf("🔴 ERROR: failed to update interval for plant %s: %w", id, err)
	}
	return nil
}

// UpdateHandle persists pending_notification_handle only.
func (r *plantRepository) UpdateHandle(ctx context.Context, id string, handle *string) error {
	err := r.db.WithContext(ctx).Model(&entity.UserPlant{}).Where("id = ?", id).
		Update("pending_notification_handle", handle).Error
	if err != nil {
		return fmt.Errorf("🔴 ERROR: failed to update handle for plant %s: %w", id, err)
	}
	return nil
}

// AdvanceNextWater persists next_water_on only.
func (r *plantRepository) AdvanceNextWater(ctx context.Context, id string, nextWaterOn caldate.Date) error {
	err := r.db.WithContext(ctx).Model(&entity.UserPlant{}).Where("id = ?", id).
		Update("next_water_on", nextWaterOn).Error
	if err != nil {
		return fmt.Errorf("🔴 ERROR: failed to advance next_water_on for plant %s: %w", id, err)
	}
	return nil
}

// Delete removes a plant row by ID.
func (r *plantRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.UserPlant{}).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to delete plant %s: %w", id, err)
	}
	return nil
}
