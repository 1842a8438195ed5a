package dto

import "heyday/internal/domain/entity"

// UpsertProfileRequest is the DTO for writing the user's location context.
type UpsertProfileRequest struct {
	City        string `json:"city"`
	Region      string `json:"region"`
	Country     string `json:"country"`
	ClimateZone string `json:"climate_zone"`
	Notes       string `json:"notes"`
}

// ProfileResponse is the DTO for sending the stored profile to the client.
type ProfileResponse struct {
	City          string `json:"city,omitempty"`
	Region        string `json:"region,omitempty"`
	Country       string `json:"country,omitempty"`
	ClimateZone   string `json:"climate_zone,omitempty"`
	Notes         string `json:"notes,omitempty"`
	LocationLabel string `json:"location_label"`
}

// ToProfileResponse converts an entity.UserProfile to a ProfileResponse DTO.
func ToProfileResponse(p *entity.UserProfile) ProfileResponse {
	return ProfileResponse{
		City:          p.City,
		Region:        p.Region,
		Country:       p.Country,
		ClimateZone:   p.ClimateZone,
		Notes:         p.Notes,
		LocationLabel: p.LocationLabel(),
	}
}
