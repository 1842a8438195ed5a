// Package localtimer arms one-shot watering reminders on a cron runner.
// It plays the role of the device-local notification scheduler: callers
// get back an opaque handle they can cancel, and the payload is handed
// to a delivery callback when the timer fires.
package localtimer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"heyday/internal/domain/notification"
	"heyday/internal/infrastructure/scheduler"
	appErrors "heyday/internal/pkg/errors"
	"heyday/internal/pkg/logger"
)

// DeliverFunc receives the payload of a reminder whose timer fired.
type DeliverFunc func(payload notification.ReminderPayload)

// Timer schedules one-shot reminder notifications.
type Timer struct {
	cronScheduler *scheduler.Scheduler
	deliver       DeliverFunc
	granted       bool
	log           logger.Logger

	mu      sync.Mutex
	entries map[string]cron.EntryID // handle -> cron entry
}

// New creates a Timer. granted is the notification capability flag;
// when false, RequestPermission reports denied and callers are expected
// to skip scheduling.
func New(cronScheduler *scheduler.Scheduler, deliver DeliverFunc, granted bool, log logger.Logger) *Timer {
	return &Timer{
		cronScheduler: cronScheduler,
		deliver:       deliver,
		granted:       granted,
		log:           log,
		entries:       make(map[string]cron.EntryID),
	}
}

// RequestPermission reports whether reminder scheduling is permitted.
func (t *Timer) RequestPermission(ctx context.Context) bool {
	return t.granted
}

// formatCronSpec generates a cron spec string for a specific time.
func formatCronSpec(at time.Time) string {
	// Seconds Minutes Hours DayOfMonth Month DayOfWeek
	return fmt.Sprintf("%d %d %d %d %d *", at.Second(), at.Minute(), at.Hour(), at.Day(), at.Month())
}

// Schedule registers a one-shot timer firing at fireAt and returns its
// handle. It never deduplicates; callers cancel any prior handle first.
func (t *Timer) Schedule(ctx context.Context, fireAt time.Time, payload notification.ReminderPayload) (string, error) {
	handle := uuid.NewString()

	jobFunc := func() {
		// The cron expression recurs yearly, so the entry must remove
		// itself after the first fire.
		if entryID, ok := t.release(handle); ok {
			t.cronScheduler.RemoveJob(entryID)
		}
		t.log.Info(fmt.Sprintf("Reminder fired for plant %s (handle %s)", payload.PlantID, handle))
		t.deliver(payload)
	}

	entryID, err := t.cronScheduler.AddJob(formatCronSpec(fireAt), jobFunc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", appErrors.ErrScheduling, err)
	}

	t.mu.Lock()
	t.entries[handle] = entryID
	t.mu.Unlock()

	t.log.Info(fmt.Sprintf("Scheduled reminder for plant %s at %v (handle %s)", payload.PlantID, fireAt, handle))
	return handle, nil
}

// Cancel removes the timer behind handle. Unknown handles are not an
// error; the runner discards an entry on its own once it has fired.
func (t *Timer) Cancel(ctx context.Context, handle string) error {
	entryID, ok := t.release(handle)
	if !ok {
		t.log.Debug(fmt.Sprintf("No live timer for handle %s to cancel.", handle))
		return nil
	}
	t.cronScheduler.RemoveJob(entryID)
	t.log.Info(fmt.Sprintf("Cancelled reminder timer (handle %s)", handle))
	return nil
}

// Outstanding returns the number of live handles.
func (t *Timer) Outstanding() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// release removes handle from the registry and returns its entry.
func (t *Timer) release(handle string) (cron.EntryID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	entryID, ok := t.entries[handle]
	if ok {
		delete(t.entries, handle)
	}
	return entryID, ok
}
