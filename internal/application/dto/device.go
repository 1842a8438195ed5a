package dto

import "heyday/internal/domain/entity"

// RegisterDeviceRequest is the DTO for registering a push token.
type RegisterDeviceRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

// DeviceResponse is the DTO for sending device registration state to the client.
type DeviceResponse struct {
	ID       uint   `json:"id"`
	Token    string `json:"token"`
	Platform string `json:"platform"`
	Active   bool   `json:"active"`
}

// ToDeviceResponse converts an entity.DeviceToken to a DeviceResponse DTO.
func ToDeviceResponse(d *entity.DeviceToken) DeviceResponse {
	return DeviceResponse{
		ID:       d.ID,
		Token:    d.Token,
		Platform: d.Platform,
		Active:   d.Active,
	}
}
