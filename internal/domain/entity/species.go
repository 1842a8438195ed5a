package entity

// Species is one catalog row, populated from the seed file or from the
// plant-data API on first lookup. Name is the normalized (lowercased,
// trimmed) lookup key.
type Species struct {
	ID                uint   `gorm:"primaryKey;autoIncrement"`
	Name              string `gorm:"column:name;uniqueIndex"`
	PerenualID        *int   `gorm:"column:perenual_id"`
	CommonName        string `gorm:"column:common_name"`
	ScientificName    string `gorm:"column:scientific_name"`
	WateringBenchmark string `gorm:"column:watering_benchmark"`
	// WateringIntervalDays is the catalog default cadence derived from the
	// API's watering text. Nil when the source gave nothing usable.
	WateringIntervalDays *int   `gorm:"column:watering_interval_days"`
	Sunlight             string `gorm:"column:sunlight"`
	MaintenanceCategory  string `gorm:"column:maintenance_category"`
	PoisonousToHumans    bool   `gorm:"column:poisonous_to_humans"`
	PoisonousToPets      bool   `gorm:"column:poisonous_to_pets"`
	DefaultImageURL      string `gorm:"column:default_image_url"`
	CareNotes            string `gorm:"column:care_notes;type:text"`
}

// TableName specifies the table name for the Species entity.
func (Species) TableName() string {
	return "species"
}
