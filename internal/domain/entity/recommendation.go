package entity

import "time"

// Recommendation is one persisted output row of a recommendation run.
type Recommendation struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	UserID        string    `gorm:"column:user_id;index"`
	SourceModel   string    `gorm:"column:source_model"`
	LocationLabel string    `gorm:"column:location_label"`
	PlantName     string    `gorm:"column:plant_name"`
	SpeciesID     *uint     `gorm:"column:species_id"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

// TableName specifies the table name for the Recommendation entity.
func (Recommendation) TableName() string {
	return "recommendations"
}
