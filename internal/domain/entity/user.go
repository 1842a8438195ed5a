package entity

import (
	"fmt"
	"strings"
)

// UserProfile holds the per-user context the recommendation prompt is
// built from. Identity itself lives with the external auth provider;
// this row only carries what the product stores.
type UserProfile struct {
	UserID      string `gorm:"column:user_id;primaryKey"`
	City        string `gorm:"column:city"`
	Region      string `gorm:"column:region"`
	Country     string `gorm:"column:country"`
	ClimateZone string `gorm:"column:climate_zone"`
	Notes       string `gorm:"column:notes;type:text"`
}

// TableName specifies the table name for the UserProfile entity.
func (UserProfile) TableName() string {
	return "user_profiles"
}

// UnspecifiedLocation is the label used when a user has stored no
// location parts at all.
const UnspecifiedLocation = "unspecified location"

// LocationLabel joins the stored location parts into the label used in
// prompts, e.g. "Portland, Oregon, USA (temperate; balcony only)".
// Climate zone and notes ride along as a parenthesized suffix.
func (u *UserProfile) LocationLabel() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{u.City, u.Region, u.Country} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	label := strings.Join(parts, ", ")

	extras := make([]string, 0, 2)
	for _, e := range []string{u.ClimateZone, u.Notes} {
		if strings.TrimSpace(e) != "" {
			extras = append(extras, strings.TrimSpace(e))
		}
	}
	if len(extras) > 0 {
		if label == "" {
			label = UnspecifiedLocation
		}
		return fmt.Sprintf("%s (%s)", label, strings.Join(extras, "; "))
	}
	if label == "" {
		return UnspecifiedLocation
	}
	return label
}
