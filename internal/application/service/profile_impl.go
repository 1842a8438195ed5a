package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"heyday/internal/application/dto"
	"heyday/internal/domain/entity"
	"heyday/internal/domain/repository"
	appErrors "heyday/internal/pkg/errors"
	"heyday/internal/pkg/logger"
)

type profileService struct {
	profileRepo repository.UserProfileRepository
	log         logger.Logger
}

// NewProfileService creates a new instance of ProfileService implementation.
func NewProfileService(profileRepo repository.UserProfileRepository, log logger.Logger) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		log:         log,
	}
}

// GetProfile retrieves the stored profile.
func (s *profileService) GetProfile(ctx context.Context, userID string) (dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, appErrors.ErrProfileNotFound) {
			return dto.ProfileResponse{}, err
		}
		s.log.Error(fmt.Sprintf("Failed to load profile for user %s", userID), err)
		return dto.ProfileResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.ToProfileResponse(profile), nil
}

// UpsertProfile writes the profile row for the user.
func (s *profileService) UpsertProfile(ctx context.Context, userID string, req dto.UpsertProfileRequest) (dto.ProfileResponse, error) {
	profile := &entity.UserProfile{
		UserID:      userID,
		City:        strings.TrimSpace(req.City),
		Region:      strings.TrimSpace(req.Region),
		Country:     strings.TrimSpace(req.Country),
		ClimateZone: strings.TrimSpace(req.ClimateZone),
		Notes:       strings.TrimSpace(req.Notes),
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		s.log.Error(fmt.Sprintf("Failed to save profile for user %s", userID), err)
		return dto.ProfileResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	s.log.Info(fmt.Sprintf("Saved profile for user %s", userID))
	return dto.ToProfileResponse(profile), nil
}
