package entity

import (
	"time"

	"heyday/internal/domain/caldate"
	"heyday/internal/domain/constant"
)

// UserPlant represents one plant in a user's collection together with its
// watering schedule. The schedule columns are the single source of truth
// shared by the in-app reminder scheduler and the batch dispatcher; both
// write them at single-row granularity (last writer wins).
type UserPlant struct {
	ID        string   `gorm:"column:id;primaryKey"`
	UserID    string   `gorm:"column:user_id;index"`
	SpeciesID *uint    `gorm:"column:species_id"`
	Species   *Species `gorm:"foreignKey:SpeciesID"`
	Nickname  string   `gorm:"column:nickname"`
	ImageURL  string   `gorm:"column:image_url"`

	// IntervalDays is the per-plant watering cadence. 0 means unset, in
	// which case the species default (then DefaultIntervalDays) applies.
	IntervalDays int `gorm:"column:interval_days"`

	LastWateredOn caldate.Date `gorm:"column:last_watered_on;type:date"`
	NextWaterOn   caldate.Date `gorm:"column:next_water_on;type:date"`

	// PendingNotificationHandle references the one outstanding local
	// notification for this plant, or nil when none is armed.
	PendingNotificationHandle *string `gorm:"column:pending_notification_handle"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for the UserPlant entity.
func (UserPlant) TableName() string {
	return "user_plants"
}

// EffectiveInterval resolves the watering cadence: the plant's own
// interval when set, else the species catalog default, else
// constant.DefaultIntervalDays. The chain is total; every caller gets a
// value >= 1.
func (p *UserPlant) EffectiveInterval() int {
	if p.IntervalDays >= 1 {
		return p.IntervalDays
	}
	if p.Species != nil && p.Species.WateringIntervalDays != nil && *p.Species.WateringIntervalDays >= 1 {
		return *p.Species.WateringIntervalDays
	}
	return constant.DefaultIntervalDays
}

// DisplayName returns the name to address the plant by in notifications:
// nickname first, then the species common name, then its catalog name.
func (p *UserPlant) DisplayName() string {
	if p.Nickname != "" {
		return p.Nickname
	}
	if p.Species != nil {
		if p.Species.CommonName != "" {
			return p.Species.CommonName
		}
		if p.Species.Name != "" {
			return p.Species.Name
		}
	}
	return "your plant"
}
