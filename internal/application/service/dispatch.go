package service

import (
	"context"

	"heyday/internal/domain/caldate"
	"heyday/internal/domain/notification"
)

// PushGateway delivers a batch of remote push notifications in one
// outbound call. An error means the whole batch failed.
type PushGateway interface {
	SendBatch(ctx context.Context, messages []notification.PushMessage) error
}

// CycleReport summarizes one due cycle of the batch dispatcher.
type CycleReport struct {
	Matched      int // plants whose next_water_on was due
	Notified     int // due plants included in the delivered batch
	SkippedUsers int // owners with no resolvable push address
	Advanced     int // plants whose next_water_on moved forward
}

// DispatchService defines the interface for the server-side batch
// reminder dispatcher.
type DispatchService interface {
	// RunDueCycle scans for plants due on or before now, pushes one
	// batch of reminders, and advances the matched schedules.
	RunDueCycle(ctx context.Context, now caldate.Date) (CycleReport, error)
}
