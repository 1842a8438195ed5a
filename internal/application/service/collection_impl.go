package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"heyday/internal/application/dto"
	"heyday/internal/domain/entity"
	"heyday/internal/domain/repository"
	appErrors "heyday/internal/pkg/errors"
	"heyday/internal/pkg/logger"
)

type collectionService struct {
	plantRepo repository.PlantRepository
	catalog   CatalogService
	platform  PlatformScheduler
	log       logger.Logger
}

// NewCollectionService creates a new instance of CollectionService implementation.
func NewCollectionService(
	plantRepo repository.PlantRepository,
	catalog CatalogService,
	platform PlatformScheduler,
	log logger.Logger,
) CollectionService {
	return &collectionService{
		plantRepo: plantRepo,
		catalog:   catalog,
		platform:  platform,
		log:       log,
	}
}

// AddPlant creates a plant with a default schedule and no watering history.
func (s *collectionService) AddPlant(ctx context.Context, userID string, req dto.AddPlantRequest) (dto.PlantResponse, error) {
	if req.IntervalDays < 0 {
		return dto.PlantResponse{}, appErrors.ErrInvalidInterval
	}

	plant := &entity.UserPlant{
		ID:           uuid.NewString(),
		UserID:       userID,
		Nickname:     req.Nickname,
		ImageURL:     req.ImageURL,
		IntervalDays: req.IntervalDays,
	}

	if req.SpeciesName != "" {
		species, err := s.catalog.Enrich(ctx, req.SpeciesName)
		if err != nil {
			// Catalog trouble must not block adding the plant; it just
			// joins the collection without a species link.
			s.log.Error(fmt.Sprintf("Failed to enrich species %q while adding a plant for user %s", req.SpeciesName, userID), err)
		} else if species.ID != 0 {
			plant.SpeciesID = &species.ID
			plant.Species = species
		} else {
			plant.Species = species
		}
	}

	if err := s.plantRepo.Create(ctx, plant); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create plant for user %s", userID), err)
		return dto.PlantResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	s.log.Info(fmt.Sprintf("Added plant %s to user %s's collection.", plant.ID, userID))
	return dto.ToPlantResponse(plant), nil
}

// ListPlants retrieves the user's collection, oldest first.
func (s *collectionService) ListPlants(ctx context.Context, userID string) ([]dto.PlantResponse, error) {
	plants, err := s.plantRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to list plants for user %s", userID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.ToPlantResponseList(plants), nil
}

// GetPlant retrieves one plant, ownership-checked.
func (s *collectionService) GetPlant(ctx context.Context, userID, plantID string) (dto.PlantResponse, error) {
	plant, err := s.loadOwnedPlant(ctx, userID, plantID)
	if err != nil {
		return dto.PlantResponse{}, err
	}
	return dto.ToPlantResponse(plant), nil
}

// UpdatePlant edits the plant's display fields.
func (s *collectionService) UpdatePlant(ctx context.Context, userID, plantID string, req dto.UpdatePlantRequest) (dto.PlantResponse, error) {
	plant, err := s.loadOwnedPlant(ctx, userID, plantID)
	if err != nil {
		return dto.PlantResponse{}, err
	}

	if req.Nickname != nil {
		plant.Nickname = *req.Nickname
	}
	if req.ImageURL != nil {
		plant.ImageURL = *req.ImageURL
	}

	if err := s.plantRepo.Update(ctx, plant); err != nil {
		s.log.Error(fmt.Sprintf("Failed to update plant %s", plant.ID), err)
		return dto.PlantResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.ToPlantResponse(plant), nil
}

// RemovePlant cancels any pending reminder and deletes the plant.
func (s *collectionService) RemovePlant(ctx context.Context, userID, plantID string) error {
	plant, err := s.loadOwnedPlant(ctx, userID, plantID)
	if err != nil {
		return err
	}

	if plant.PendingNotificationHandle != nil {
		if err := s.platform.Cancel(ctx, *plant.PendingNotificationHandle); err != nil {
			s.log.Warn(fmt.Sprintf("Failed to cancel reminder while removing plant %s: %v", plant.ID, err))
		}
	}

	if err := s.plantRepo.Delete(ctx, plant.ID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete plant %s", plant.ID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	s.log.Info(fmt.Sprintf("Removed plant %s from user %s's collection.", plant.ID, userID))
	return nil
}

func (s *collectionService) loadOwnedPlant(ctx context.Context, userID, plantID string) (*entity.UserPlant, error) {
	plant, err := s.plantRepo.FindByID(ctx, plantID)
	if err != nil {
		if errors.Is(err, appErrors.ErrPlantNotFound) {
			return nil, err
		}
		s.log.Error(fmt.Sprintf("Failed to load plant %s", plantID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if plant.UserID != userID {
		return nil, appErrors.ErrForbidden
	}
	return plant, nil
}
