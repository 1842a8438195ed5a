package entity

import (
	"time"

	"heyday/internal/domain/constant"
)

// DeviceToken is one push destination registered by a user's device. A
// user may hold several; the dispatcher fans out to every active one.
type DeviceToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"column:user_id;index"`
	Token     string    `gorm:"column:token;uniqueIndex"`
	Platform  string    `gorm:"column:platform"`
	Active    bool      `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName specifies the table name for the DeviceToken entity.
func (DeviceToken) TableName() string {
	return "device_tokens"
}

// GetPlatform returns the platform as a constant.Platform type.
func (d *DeviceToken) GetPlatform() constant.Platform {
	return constant.Platform(d.Platform)
}

// SetPlatform sets the platform.
func (d *DeviceToken) SetPlatform(p constant.Platform) {
	d.Platform = p.String()
}
