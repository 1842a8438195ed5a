package service

import (
	"context"
	"fmt"
	"strings"

	"heyday/internal/application/dto"
	"heyday/internal/domain/constant"
	"heyday/internal/domain/entity"
	"heyday/internal/domain/repository"
	appErrors "heyday/internal/pkg/errors"
	"heyday/internal/pkg/logger"
)

type deviceService struct {
	deviceRepo repository.DeviceTokenRepository
	log        logger.Logger
}

// NewDeviceService creates a new instance of DeviceService implementation.
func NewDeviceService(deviceRepo repository.DeviceTokenRepository, log logger.Logger) DeviceService {
	return &deviceService{
		deviceRepo: deviceRepo,
		log:        log,
	}
}

// RegisterDevice stores or reactivates a push token for the user.
func (s *deviceService) RegisterDevice(ctx context.Context, userID string, req dto.RegisterDeviceRequest) (dto.DeviceResponse, error) {
	token := strings.TrimSpace(req.Token)
	if token == "" {
		return dto.DeviceResponse{}, fmt.Errorf("%w: token is required", appErrors.ErrInvalidArgument)
	}
	platform := constant.Platform(strings.ToLower(strings.TrimSpace(req.Platform)))
	if !platform.Valid() {
		return dto.DeviceResponse{}, fmt.Errorf("%w: unknown platform %q", appErrors.ErrInvalidArgument, req.Platform)
	}

	device := &entity.DeviceToken{
		UserID: userID,
		Token:  token,
		Active: true,
	}
	device.SetPlatform(platform)

	if err := s.deviceRepo.Register(ctx, device); err != nil {
		s.log.Error(fmt.Sprintf("Failed to register device for user %s", userID), err)
		return dto.DeviceResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	s.log.Info(fmt.Sprintf("Registered %s device for user %s", platform, userID))
	return dto.ToDeviceResponse(device), nil
}

// DeactivateDevice stops deliveries to the token.
func (s *deviceService) DeactivateDevice(ctx context.Context, userID, token string) error {
	if err := s.deviceRepo.Deactivate(ctx, token); err != nil {
		s.log.Error(fmt.Sprintf("Failed to deactivate device for user %s", userID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Deactivated a device for user %s", userID))
	return nil
}
