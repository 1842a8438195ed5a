package constant

// Watering schedule defaults shared by the in-app scheduler and the
// batch dispatcher.
const (
	// DefaultIntervalDays is the watering cadence used when neither the
	// plant nor its catalog species carries one.
	DefaultIntervalDays = 7

	// ReminderHour and ReminderMinute fix the local wall-clock time a
	// watering reminder fires on its due date.
	ReminderHour   = 9
	ReminderMinute = 0
)
