package schedule

import (
	"time"

	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
)

// WeekDates returns the 7 dates, Sunday through Saturday, of the week
// containing today + offset weeks. Dates are normalized to midnight in
// today's location.
func WeekDates(today time.Time, offset int) []time.Time {
	base := today.AddDate(0, 0, offset*7)
	sunday := base.AddDate(0, 0, -int(base.Weekday()))

	y, m, d := sunday.Date()
	sunday = time.Date(y, m, d, 0, 0, 0, 0, today.Location())

	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = sunday.AddDate(0, 0, i)
	}
	return dates
}

// WeekWindow is WeekDates serialized to day keys, the form the grid and the
// summary consume.
func WeekWindow(today time.Time, offset int) []domain.DayKey {
	return keysOf(WeekDates(today, offset))
}

// DayWindow is the single-day view: one column for the selected day.
func DayWindow(day time.Time) []domain.DayKey {
	return []domain.DayKey{domain.DayKeyOf(day)}
}

// NextDay and PreviousDay move the day view one day at a time.
func NextDay(day time.Time) time.Time {
	return normalize(day.AddDate(0, 0, 1))
}

func PreviousDay(day time.Time) time.Time {
	return normalize(day.AddDate(0, 0, -1))
}

func normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func keysOf(dates []time.Time) []domain.DayKey {
	keys := make([]domain.DayKey, len(dates))
	for i, d := range dates {
		keys[i] = domain.DayKeyOf(d)
	}
	return keys
}
