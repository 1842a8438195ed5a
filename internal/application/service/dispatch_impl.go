package service

import (
	"context"
	"fmt"
	"sort"

	"heyday/internal/domain/caldate"
	"heyday/internal/domain/entity"
	"heyday/internal/domain/notification"
	"heyday/internal/domain/repository"
	appErrors "heyday/internal/pkg/errors"
	"heyday/internal/pkg/logger"
)

type dispatchService struct {
	plantRepo  repository.PlantRepository
	deviceRepo repository.DeviceTokenRepository
	gateway    PushGateway
	log        logger.Logger
}

// NewDispatchService creates a new instance of DispatchService implementation.
func NewDispatchService(
	plantRepo repository.PlantRepository,
	deviceRepo repository.DeviceTokenRepository,
	gateway PushGateway,
	log logger.Logger,
) DispatchService {
	return &dispatchService{
		plantRepo:  plantRepo,
		deviceRepo: deviceRepo,
		gateway:    gateway,
		log:        log,
	}
}

// RunDueCycle scans for plants due on or before now, pushes one batch of
// reminders, and advances the matched schedules. A gateway failure ends
// the cycle without advancing anything, so no plant is silently advanced
// past a reminder that never went out.
func (s *dispatchService) RunDueCycle(ctx context.Context, now caldate.Date) (CycleReport, error) {
	var report CycleReport

	due, err := s.plantRepo.FindDue(ctx, now)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to query due plants at %s", now), err)
		return report, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	report.Matched = len(due)
	if len(due) == 0 {
		s.log.Info(fmt.Sprintf("Due cycle at %s: nothing due.", now))
		return report, nil
	}

	byUser := make(map[string][]*entity.UserPlant)
	for _, plant := range due {
		byUser[plant.UserID] = append(byUser[plant.UserID], plant)
	}
	userIDs := make([]string, 0, len(byUser))
	for userID := range byUser {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	var messages []notification.PushMessage
	notified := 0
	for _, userID := range userIDs {
		tokens, err := s.deviceRepo.FindActiveByUser(ctx, userID)
		if err != nil {
			s.log.Error(fmt.Sprintf("Failed to resolve push address for user %s; skipping their plants this cycle", userID), err)
			report.SkippedUsers++
			continue
		}
		if len(tokens) == 0 {
			s.log.Warn(fmt.Sprintf("User %s has no active push address; skipping %d due plants.", userID, len(byUser[userID])))
			report.SkippedUsers++
			continue
		}

		for _, plant := range byUser[userID] {
			for _, token := range tokens {
				messages = append(messages, notification.PushMessage{
					Token: token.Token,
					Title: "Time to water!",
					Body:  fmt.Sprintf("%s is ready for its next watering.", plant.DisplayName()),
					Data:  map[string]string{"plant_id": plant.ID},
				})
			}
			notified++
		}
	}

	if len(messages) > 0 {
		if err := s.gateway.SendBatch(ctx, messages); err != nil {
			s.log.Error(fmt.Sprintf("Push gateway rejected the batch of %d messages; ending cycle without advancing", len(messages)), err)
			return report, fmt.Errorf("%w: %v", appErrors.ErrPushGateway, err)
		}
		report.Notified = notified
	}

	// Advance every matched plant with a stored cadence, whether or not
	// its owner could be reached. This path records "we reminded you",
	// not "you watered it", so last_watered_on stays put. Plants without
	// a stored interval keep matching until the user waters them.
	for _, plant := range due {
		if plant.IntervalDays < 1 {
			continue
		}
		next := now.AddDays(plant.IntervalDays)
		if err := s.plantRepo.AdvanceNextWater(ctx, plant.ID, next); err != nil {
			s.log.Error(fmt.Sprintf("Failed to advance schedule for plant %s", plant.ID), err)
			continue
		}
		report.Advanced++
	}

	s.log.Info(fmt.Sprintf("Due cycle at %s: %d matched, %d notified, %d advanced, %d users skipped",
		now, report.Matched, report.Notified, report.Advanced, report.SkippedUsers))
	return report, nil
}
