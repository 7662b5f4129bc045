package schedule

import (
	"testing"
	"time"

	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
	"github.com/google/uuid"
)

func TestSummarize(t *testing.T) {
	today := time.Date(2025, time.August, 21, 8, 0, 0, 0, time.UTC)
	days := WeekWindow(today, 0)

	morning := &domain.Shift{ID: uuid.New(), Name: "Morning"}
	evening := &domain.Shift{ID: uuid.New(), Name: "Evening"}

	record := func(shift *domain.Shift, day domain.DayKey, d domain.Decision) *domain.AvailabilityRecord {
		return &domain.AvailabilityRecord{
			ID:         uuid.New(),
			EmployeeID: uuid.New(),
			ShiftID:    shift.ID,
			Day:        day,
			Decision:   d,
		}
	}

	records := []*domain.AvailabilityRecord{
		record(morning, days[1], domain.DecisionPending),
		record(morning, days[1], domain.DecisionAccepted),
		record(morning, days[1], domain.DecisionAccepted),
		record(morning, days[4], domain.DecisionRejected),
		record(evening, days[1], domain.DecisionPending),
		// Outside the window; must not be counted.
		record(evening, domain.DayKey("2025-07-01"), domain.DecisionPending),
	}

	summary := Summarize([]*domain.Shift{morning, evening}, records, days)

	if len(summary.Rows) != 2 || len(summary.Rows[0].Counts) != 7 {
		t.Fatalf("unexpected summary shape")
	}

	mondayMorning := summary.Rows[0].Counts[1]
	if mondayMorning.Pending != 1 || mondayMorning.Accepted != 2 || mondayMorning.Rejected != 0 {
		t.Fatalf("unexpected morning counts: %+v", mondayMorning)
	}

	thursdayMorning := summary.Rows[0].Counts[4]
	if thursdayMorning.Rejected != 1 {
		t.Fatalf("unexpected thursday counts: %+v", thursdayMorning)
	}

	mondayEvening := summary.Rows[1].Counts[1]
	if mondayEvening.Pending != 1 {
		t.Fatalf("unexpected evening counts: %+v", mondayEvening)
	}

	total := 0
	for _, row := range summary.Rows {
		for _, c := range row.Counts {
			total += c.Pending + c.Accepted + c.Rejected
		}
	}
	if total != 5 {
		t.Fatalf("expected 5 records counted inside the window, got %d", total)
	}
}
