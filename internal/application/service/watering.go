package service

import (
	"context"
	"time"

	"heyday/internal/application/dto"
	"heyday/internal/domain/notification"
)

// PlatformScheduler is the device-local notification scheduler the
// watering lifecycle arms its reminders on. Schedule registers a
// one-shot timer and returns an opaque handle; Cancel is best-effort.
type PlatformScheduler interface {
	// RequestPermission reports whether reminder scheduling is permitted.
	RequestPermission(ctx context.Context) bool
	// Schedule registers a one-shot timer firing at fireAt. It never
	// deduplicates; callers cancel any prior handle themselves.
	Schedule(ctx context.Context, fireAt time.Time, payload notification.ReminderPayload) (string, error)
	// Cancel removes the timer behind handle. Unknown handles are not
	// an error.
	Cancel(ctx context.Context, handle string) error
}

// WateringService defines the interface for the watering-schedule lifecycle.
type WateringService interface {
	// WaterPlantNow logs a watering for today, recomputes the next
	// watering date, and re-arms the plant's local reminder.
	WaterPlantNow(ctx context.Context, userID, plantID string) (dto.WaterResponse, error)
	// SetWateringInterval overrides the plant's watering cadence.
	// days == 0 clears the override so the species default applies.
	SetWateringInterval(ctx context.Context, userID, plantID string, days int) (dto.PlantResponse, error)
	// ResyncAllReminders re-arms reminders for the user's future-dated
	// plants. A non-empty plantIDs narrows the pass to those plants;
	// IDs the user does not own are dropped. Invoked when the app comes
	// to the foreground.
	ResyncAllReminders(ctx context.Context, userID string, plantIDs []string) (dto.ResyncResponse, error)
	// PermissionGranted reports the notification capability flag.
	PermissionGranted(ctx context.Context) bool
}
