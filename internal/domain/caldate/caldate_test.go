package caldate_test

import (
	"encoding/json"
	"testing"
	"time"

	"heyday/internal/domain/caldate"
)

func TestParse(t *testing.T) {
	t.Run("it should parse a calendar day", func(t *testing.T) {
		d, err := caldate.Parse("2025-03-09")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Year() != 2025 || d.Month() != time.March || d.Day() != 9 {
			t.Errorf("unmatch: (actual, expected) = (%s, 2025-03-09)", d)
		}
	})

	t.Run("it should reject malformed input", func(t *testing.T) {
		for _, s := range []string{"", "2025-3-9", "09-03-2025", "2025-03-09T00:00:00Z", "not a date"} {
			if _, err := caldate.Parse(s); err == nil {
				t.Errorf("no error for %q", s)
			}
		}
	})
}

func TestAddDays(t *testing.T) {
	t.Run("it should cross month boundaries", func(t *testing.T) {
		d := caldate.New(2025, time.January, 30).AddDays(3)
		if !d.Equal(caldate.New(2025, time.February, 2)) {
			t.Errorf("unmatch: (actual, expected) = (%s, 2025-02-02)", d)
		}
	})

	t.Run("it should cross year boundaries backwards", func(t *testing.T) {
		d := caldate.New(2025, time.January, 1).AddDays(-1)
		if !d.Equal(caldate.New(2024, time.December, 31)) {
			t.Errorf("unmatch: (actual, expected) = (%s, 2024-12-31)", d)
		}
	})

	t.Run("it should count whole days over DST transitions", func(t *testing.T) {
		// 2025-03-09 is a spring-forward day in US zones. Calendar math
		// must still move exactly 7 days.
		d := caldate.New(2025, time.March, 5).AddDays(7)
		if !d.Equal(caldate.New(2025, time.March, 12)) {
			t.Errorf("unmatch: (actual, expected) = (%s, 2025-03-12)", d)
		}
		if got := caldate.New(2025, time.March, 12).Sub(caldate.New(2025, time.March, 5)); got != 7 {
			t.Errorf("unmatch: (actual, expected) = (%d, 7)", got)
		}
	})
}

func TestAt(t *testing.T) {
	t.Run("it should pin the wall clock in the given zone", func(t *testing.T) {
		loc, err := time.LoadLocation("America/New_York")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		at := caldate.New(2025, time.March, 9).At(9, 0, loc)
		if at.Hour() != 9 || at.Minute() != 0 {
			t.Errorf("unmatch: (actual, expected) = (%02d:%02d, 09:00)", at.Hour(), at.Minute())
		}
		if at.Location() != loc {
			t.Errorf("unmatch location: (actual, expected) = (%v, %v)", at.Location(), loc)
		}
	})
}

func TestOrdering(t *testing.T) {
	a := caldate.New(2025, time.June, 1)
	b := caldate.New(2025, time.June, 2)

	if !a.Before(b) || b.Before(a) {
		t.Error("Before is wrong")
	}
	if !b.After(a) || a.After(b) {
		t.Error("After is wrong")
	}
	if !a.Equal(caldate.New(2025, time.June, 1)) {
		t.Error("Equal is wrong")
	}
}

func TestToday(t *testing.T) {
	t.Run("it should follow the location's calendar", func(t *testing.T) {
		loc := time.UTC
		before := caldate.FromTime(time.Now().In(loc))
		got := caldate.Today(loc)
		after := caldate.FromTime(time.Now().In(loc))
		if !got.Equal(before) && !got.Equal(after) {
			t.Errorf("unmatch: (actual, expected) = (%s, %s or %s)", got, before, after)
		}
	})
}

func TestJSON(t *testing.T) {
	type doc struct {
		On caldate.Date `json:"on"`
	}

	t.Run("it should marshal as a date string", func(t *testing.T) {
		b, err := json.Marshal(doc{On: caldate.New(2025, time.April, 7)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(b) != `{"on":"2025-04-07"}` {
			t.Errorf("unmatch: (actual, expected) = (%s, {\"on\":\"2025-04-07\"})", b)
		}
	})

	t.Run("it should marshal the unset date as null", func(t *testing.T) {
		b, err := json.Marshal(doc{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(b) != `{"on":null}` {
			t.Errorf("unmatch: (actual, expected) = (%s, {\"on\":null})", b)
		}
	})

	t.Run("it should unmarshal a date string", func(t *testing.T) {
		var got doc
		if err := json.Unmarshal([]byte(`{"on":"2025-04-07"}`), &got); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.On.Equal(caldate.New(2025, time.April, 7)) {
			t.Errorf("unmatch: (actual, expected) = (%s, 2025-04-07)", got.On)
		}
	})

	t.Run("it should leave the value untouched on null", func(t *testing.T) {
		got := doc{On: caldate.New(2025, time.April, 7)}
		if err := json.Unmarshal([]byte(`{"on":null}`), &got); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.On.Equal(caldate.New(2025, time.April, 7)) {
			t.Errorf("unmatch: (actual, expected) = (%s, 2025-04-07)", got.On)
		}
	})

	t.Run("it should reject non-string JSON", func(t *testing.T) {
		var got doc
		if err := json.Unmarshal([]byte(`{"on":20250407}`), &got); err == nil {
			t.Error("no error")
		}
	})
}

func TestSQL(t *testing.T) {
	t.Run("it should store the unset date as NULL", func(t *testing.T) {
		v, err := caldate.Date{}.Value()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != nil {
			t.Errorf("unmatch: (actual, expected) = (%v, nil)", v)
		}
	})

	t.Run("it should round-trip through driver values", func(t *testing.T) {
		want := caldate.New(2025, time.May, 20)
		v, err := want.Value()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var got caldate.Date
		if err := got.Scan(v); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(want) {
			t.Errorf("unmatch: (actual, expected) = (%s, %s)", got, want)
		}
	})

	t.Run("it should scan text forms", func(t *testing.T) {
		want := caldate.New(2025, time.May, 20)
		for _, src := range []any{
			"2025-05-20",
			[]byte("2025-05-20"),
			"2025-05-20T00:00:00Z",
			time.Date(2025, time.May, 20, 23, 30, 0, 0, time.UTC),
		} {
			var got caldate.Date
			if err := got.Scan(src); err != nil {
				t.Fatalf("unexpected error for %v: %v", src, err)
			}
			if !got.Equal(want) {
				t.Errorf("unmatch for %v: (actual, expected) = (%s, %s)", src, got, want)
			}
		}
	})

	t.Run("it should scan NULL as the unset date", func(t *testing.T) {
		got := caldate.New(2025, time.May, 20)
		if err := got.Scan(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.IsZero() {
			t.Errorf("unmatch: (actual, expected) = (%s, unset)", got)
		}
	})
}
