// Package caldate provides a calendar-day value type with no time-of-day
// or timezone component. Watering schedules are tracked in whole days, so
// arithmetic and comparisons on Date are exact regardless of DST or the
// zone the server runs in.
package caldate

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Layout is the wire and storage format for a Date.
const Layout = "2006-01-02"

// Date is a single calendar day. The zero Date means "unset".
type Date struct {
	t time.Time // midnight UTC of the day
}

// New returns the Date for the given calendar day.
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime returns the calendar day that t falls on, in t's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return New(y, m, d)
}

// Today returns the current calendar day in loc.
func Today(loc *time.Location) Date {
	return FromTime(time.Now().In(loc))
}

// Parse reads a Date from its "2006-01-02" form.
func Parse(s string) (Date, error) {
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("caldate: parse %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// IsZero reports whether d is the unset Date.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Year returns the calendar year.
func (d Date) Year() int { return d.t.Year() }

// Month returns the calendar month.
func (d Date) Month() time.Month { return d.t.Month() }

// Day returns the day of the month.
func (d Date) Day() int { return d.t.Day() }

// AddDays returns the Date n days after d. n may be negative.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// Sub returns the number of whole days from o to d.
func (d Date) Sub(o Date) int {
	return int(d.t.Sub(o.t) / (24 * time.Hour))
}

// At returns the instant at the given wall-clock time on day d in loc.
func (d Date) At(hour, min int, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, loc)
}

// Equal reports whether d and o are the same calendar day.
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

// Before reports whether d falls before o.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// After reports whether d falls after o.
func (d Date) After(o Date) bool { return d.t.After(o.t) }

// String renders d as "2006-01-02", or "" for the unset Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(Layout)
}

// MarshalJSON renders d as a "2006-01-02" string, or null when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.t.Format(Layout) + `"`), nil
}

// UnmarshalJSON reads a "2006-01-02" string. JSON null leaves d untouched.
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("caldate: unmarshal %s: not a JSON string", b)
	}
	parsed, err := Parse(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer. The unset Date stores as NULL.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.t, nil
}

// Scan implements sql.Scanner for DATE columns and their text forms.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = FromTime(v)
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	default:
		return fmt.Errorf("caldate: cannot scan %T", src)
	}
}

func (d *Date) scanText(s string) error {
	if s == "" {
		*d = Date{}
		return nil
	}
	if len(s) > len(Layout) {
		// Some drivers hand back a full timestamp for DATE columns.
		t, err := time.Parse(time.RFC3339, s)
		if err == nil {
			*d = FromTime(t.UTC())
			return nil
		}
		s = s[:len(Layout)]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
