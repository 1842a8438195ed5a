package repository

import (
	"context"

	"heyday/internal/domain/caldate"
	"heyday/internal/domain/entity"
)

// PlantRepository defines the interface for user-plant schedule data
// operations. The schedule writes are deliberately narrow: each method
// updates only the columns it names, so the watering flow and the batch
// dispatcher never clobber fields they do not own.
type PlantRepository interface {
	// FindByID retrieves a plant (with its species preloaded) by ID.
	// Returns ErrPlantNotFound when no row exists.
	FindByID(ctx context.Context, id string) (*entity.UserPlant, error)
	// FindByIDs retrieves the plants for the given IDs. Missing IDs are
	// silently dropped from the result.
	FindByIDs(ctx context.Context, ids []string) ([]*entity.UserPlant, error)
	// FindByUserID retrieves all plants owned by a user, oldest first.
	FindByUserID(ctx context.Context, userID string) ([]*entity.UserPlant, error)
	// FindDue retrieves all plants with next_water_on on or before now.
	FindDue(ctx context.Context, now caldate.Date) ([]*entity.UserPlant, error)
	// Create inserts a new plant row.
	Create(ctx context.Context, plant *entity.UserPlant) error
	// Update saves nickname and image changes for an existing plant.
	Update(ctx context.Context, plant *entity.UserPlant) error
	// UpdateSchedule persists last_watered_on and next_water_on only.
	UpdateSchedule(ctx context.Context, id string, lastWateredOn, nextWaterOn caldate.Date) error
	// UpdateInterval persists interval_days only.
	UpdateInterval(ctx context.Context, id string, days int) error
	// UpdateHandle persists pending_notification_handle only. nil clears it.
	UpdateHandle(ctx context.Context, id string, handle *string) error
	// AdvanceNextWater persists next_water_on only, leaving
	// last_watered_on untouched. Used by the batch dispatcher.
	AdvanceNextWater(ctx context.Context, id string, nextWaterOn caldate.Date) error
	// Delete removes a plant row by ID.
	Delete(ctx context.Context, id string) error
}
