package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"heyday/internal/application/dto"
	"heyday/internal/domain/caldate"
	"heyday/internal/domain/constant"
	"heyday/internal/domain/entity"
	"heyday/internal/domain/notification"
	"heyday/internal/domain/repository"
	appErrors "heyday/internal/pkg/errors"
	"heyday/internal/pkg/logger"
)

type wateringService struct {
	plantRepo repository.PlantRepository
	platform  PlatformScheduler
	loc       *time.Location
	now       func() time.Time
	log       logger.Logger
}

// NewWateringService creates a new instance of WateringService implementation.
// now is the clock used to resolve "today" in loc; pass time.Now outside tests.
func NewWateringService(
	plantRepo repository.PlantRepository,
	platform PlatformScheduler,
	loc *time.Location,
	now func() time.Time,
	log logger.Logger,
) WateringService {
	return &wateringService{
		plantRepo: plantRepo,
		platform:  platform,
		loc:       loc,
		now:       now,
		log:       log,
	}
}

// today returns the current calendar day in the service's timezone.
func (s *wateringService) today() caldate.Date {
	return caldate.FromTime(s.now().In(s.loc))
}

// WaterPlantNow logs a watering for today, recomputes the next watering
// date, and re-arms the plant's local reminder.
func (s *wateringService) WaterPlantNow(ctx context.Context, userID, plantID string) (dto.WaterResponse, error) {
	plant, err := s.loadOwnedPlant(ctx, userID, plantID)
	if err != nil {
		return dto.WaterResponse{}, err
	}

	// Resolve the cadence before touching anything; the fallback chain
	// is plant override, then species default, then seven days.
	interval := plant.EffectiveInterval()

	// Best-effort cancel of the previous reminder. Proceed regardless:
	// at worst one stale notification fires.
	if plant.PendingNotificationHandle != nil {
		s.cancelReminder(ctx, *plant.PendingNotificationHandle)
	}

	plant.LastWateredOn = s.today()
	plant.NextWaterOn = plant.LastWateredOn.AddDays(interval)

	// Durability boundary. If this write fails the operation fails as a
	// whole and no new reminder is armed.
	if err := s.plantRepo.UpdateSchedule(ctx, plant.ID, plant.LastWateredOn, plant.NextWaterOn); err != nil {
		s.log.Error(fmt.Sprintf("Failed to persist watering for plant %s", plant.ID), err)
		return dto.WaterResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	handle := s.scheduleReminder(ctx, plant)
	plant.PendingNotificationHandle = handle
	if err := s.plantRepo.UpdateHandle(ctx, plant.ID, handle); err != nil {
		// The timer just armed would be orphaned if its handle never
		// lands in the store, so take it back down.
		if handle != nil {
			s.cancelReminder(ctx, *handle)
		}
		s.log.Error(fmt.Sprintf("Failed to persist reminder handle for plant %s", plant.ID), err)
		return dto.WaterResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	s.log.Info(fmt.Sprintf("Watered plant %s for user %s: next watering on %s", plant.ID, userID, plant.NextWaterOn))
	return dto.WaterResponse{Plant: dto.ToPlantResponse(plant), Scheduled: handle != nil}, nil
}

// SetWateringInterval overrides the plant's watering cadence.
func (s *wateringService) SetWateringInterval(ctx context.Context, userID, plantID string, days int) (dto.PlantResponse, error) {
	if days < 0 {
		return dto.PlantResponse{}, appErrors.ErrInvalidInterval
	}

	plant, err := s.loadOwnedPlant(ctx, userID, plantID)
	if err != nil {
		return dto.PlantResponse{}, err
	}

	if err := s.plantRepo.UpdateInterval(ctx, plant.ID, days); err != nil {
		s.log.Error(fmt.Sprintf("Failed to update interval for plant %s", plant.ID), err)
		return dto.PlantResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	plant.IntervalDays = days

	// A cadence change only moves the schedule once a watering has been
	// logged; an unwatered plant has no next date to shift.
	if !plant.LastWateredOn.IsZero() {
		if plant.PendingNotificationHandle != nil {
			s.cancelReminder(ctx, *plant.PendingNotificationHandle)
		}

		plant.NextWaterOn = plant.LastWateredOn.AddDays(plant.EffectiveInterval())
		if err := s.plantRepo.UpdateSchedule(ctx, plant.ID, plant.LastWateredOn, plant.NextWaterOn); err != nil {
			s.log.Error(fmt.Sprintf("Failed to persist rescheduled watering for plant %s", plant.ID), err)
			return dto.PlantResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
		}

		handle := s.scheduleReminder(ctx, plant)
		plant.PendingNotificationHandle = handle
		if err := s.plantRepo.UpdateHandle(ctx, plant.ID, handle); err != nil {
			if handle != nil {
				s.cancelReminder(ctx, *handle)
			}
			s.log.Error(fmt.Sprintf("Failed to persist reminder handle for plant %s", plant.ID), err)
			return dto.PlantResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
		}
	}

	s.log.Info(fmt.Sprintf("Set watering interval for plant %s to %d days", plant.ID, days))
	return dto.ToPlantResponse(plant), nil
}

// ResyncAllReminders re-arms reminders for the user's future-dated
// plants. Existing handles are not cancelled first; the store simply
// takes the new handle (matching the app-launch behavior, which cannot
// know whether a previously stored handle survived a reinstall).
func (s *wateringService) ResyncAllReminders(ctx context.Context, userID string, plantIDs []string) (dto.ResyncResponse, error) {
	plants, err := s.resyncTargets(ctx, userID, plantIDs)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to list plants for user %s during resync", userID), err)
		return dto.ResyncResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	var res dto.ResyncResponse
	today := s.today()
	for _, plant := range plants {
		if plant.NextWaterOn.IsZero() || !plant.NextWaterOn.After(today) {
			res.Skipped++
			continue
		}

		handle := s.scheduleReminder(ctx, plant)
		if handle == nil {
			res.Failed++
			continue
		}
		if err := s.plantRepo.UpdateHandle(ctx, plant.ID, handle); err != nil {
			s.log.Error(fmt.Sprintf("Failed to persist resynced handle for plant %s", plant.ID), err)
			s.cancelReminder(ctx, *handle)
			res.Failed++
			continue
		}
		res.Scheduled++
	}

	s.log.Info(fmt.Sprintf("Resynced reminders for user %s: %d scheduled, %d skipped, %d failed",
		userID, res.Scheduled, res.Skipped, res.Failed))
	return res, nil
}

// PermissionGranted reports the notification capability flag.
func (s *wateringService) PermissionGranted(ctx context.Context) bool {
	return s.platform.RequestPermission(ctx)
}

// resyncTargets resolves the plants a resync pass covers: the listed
// plants when the client names them, otherwise everything the user
// owns. Listed plants belonging to someone else are dropped, the same
// way the repository drops IDs that no longer exist.
func (s *wateringService) resyncTargets(ctx context.Context, userID string, plantIDs []string) ([]*entity.UserPlant, error) {
	if len(plantIDs) == 0 {
		return s.plantRepo.FindByUserID(ctx, userID)
	}

	plants, err := s.plantRepo.FindByIDs(ctx, plantIDs)
	if err != nil {
		return nil, err
	}
	owned := plants[:0]
	for _, plant := range plants {
		if plant.UserID == userID {
			owned = append(owned, plant)
		}
	}
	return owned, nil
}

// loadOwnedPlant fetches a plant and checks it belongs to userID.
func (s *wateringService) loadOwnedPlant(ctx context.Context, userID, plantID string) (*entity.UserPlant, error) {
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

// scheduleReminder arms a one-shot reminder for the plant's next
// watering date at 09:00 local and returns its handle. It returns nil
// without scheduling when permission is denied, when the next date is
// unset, today, or past, or when the platform call fails; a reminder
// announces a future due date and is never a hard dependency.
func (s *wateringService) scheduleReminder(ctx context.Context, plant *entity.UserPlant) *string {
	if !s.platform.RequestPermission(ctx) {
		s.log.Debug(fmt.Sprintf("Notification permission denied; not scheduling for plant %s.", plant.ID))
		return nil
	}
	if plant.NextWaterOn.IsZero() || !plant.NextWaterOn.After(s.today()) {
		return nil
	}

	fireAt := plant.NextWaterOn.At(constant.ReminderHour, constant.ReminderMinute, s.loc)
	handle, err := s.platform.Schedule(ctx, fireAt, notification.ReminderPayload{
		PlantID: plant.ID,
		Title:   "Time to water!",
		Body:    fmt.Sprintf("%s is ready for its next watering.", plant.DisplayName()),
	})
	if err != nil {
		s.log.Warn(fmt.Sprintf("Failed to schedule reminder for plant %s: %v", plant.ID, err))
		return nil
	}
	return &handle
}

// cancelReminder is best-effort; a missing or expired handle is not a
// correctness violation on its own.
func (s *wateringService) cancelReminder(ctx context.Context, handle string) {
	if err := s.platform.Cancel(ctx, handle); err != nil {
		s.log.Warn(fmt.Sprintf("Failed to cancel reminder handle %s: %v", handle, err))
	}
}
