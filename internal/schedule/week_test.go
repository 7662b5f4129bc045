package schedule

import (
	"testing"
	"time"
)

func TestWeekDates(t *testing.T) {
	// A Thursday, so the week's Sunday is in the past.
	today := time.Date(2025, time.August, 21, 14, 30, 0, 0, time.UTC)

	t.Run("returns seven consecutive days starting on Sunday", func(t *testing.T) {
		for _, offset := range []int{-3, -1, 0, 1, 5} {
			dates := WeekDates(today, offset)
			if len(dates) != 7 {
				t.Fatalf("offset %d: expected 7 dates, got %d", offset, len(dates))
			}
			if dates[0].Weekday() != time.Sunday {
				t.Fatalf("offset %d: expected week to start on Sunday, got %s", offset, dates[0].Weekday())
			}
			for i := 1; i < 7; i++ {
				if !dates[i].Equal(dates[i-1].AddDate(0, 0, 1)) {
					t.Fatalf("offset %d: dates[%d] is not one day after dates[%d]", offset, i, i-1)
				}
			}
		}
	})

	t.Run("consecutive offsets are seven days apart", func(t *testing.T) {
		for _, offset := range []int{-2, 0, 3} {
			this := WeekDates(today, offset)
			next := WeekDates(today, offset+1)
			if !next[0].Equal(this[0].AddDate(0, 0, 7)) {
				t.Fatalf("offset %d: next week's Sunday is not 7 days later", offset)
			}
		}
	})

	t.Run("dates are normalized to midnight", func(t *testing.T) {
		for _, d := range WeekDates(today, 0) {
			h, m, s := d.Clock()
			if h != 0 || m != 0 || s != 0 {
				t.Fatalf("expected midnight, got %s", d)
			}
		}
	})

	t.Run("a Sunday anchors its own week", func(t *testing.T) {
		sunday := time.Date(2025, time.August, 17, 9, 0, 0, 0, time.UTC)
		dates := WeekDates(sunday, 0)
		if got := dates[0].Format("2006-01-02"); got != "2025-08-17" {
			t.Fatalf("expected week to start on 2025-08-17, got %s", got)
		}
	})
}

func TestDayNavigation(t *testing.T) {
	day := time.Date(2025, time.August, 31, 18, 0, 0, 0, time.UTC)

	next := NextDay(day)
	if got := next.Format("2006-01-02"); got != "2025-09-01" {
		t.Fatalf("expected next day 2025-09-01, got %s", got)
	}

	prev := PreviousDay(day)
	if got := prev.Format("2006-01-02"); got != "2025-08-30" {
		t.Fatalf("expected previous day 2025-08-30, got %s", got)
	}

	window := DayWindow(day)
	if len(window) != 1 || window[0].String() != "2025-08-31" {
		t.Fatalf("unexpected day window: %v", window)
	}
}
