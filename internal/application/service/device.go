package service

import (
	"context"

	"heyday/internal/application/dto"
)

// DeviceService defines the interface for push destination registration.
type DeviceService interface {
	// RegisterDevice stores or reactivates a push token for the user.
	RegisterDevice(ctx context.Context, userID string, req dto.RegisterDeviceRequest) (dto.DeviceResponse, error)
	// DeactivateDevice stops deliveries to the token. Unknown tokens are
	// a no-op.
	DeactivateDevice(ctx context.Context, userID, token string) error
}
