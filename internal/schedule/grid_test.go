package schedule

import (
	"testing"
	"time"

	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
	"github.com/google/uuid"
)

func TestBuildTable(t *testing.T) {
	today := time.Date(2025, time.August, 21, 8, 0, 0, 0, time.UTC)
	days := WeekWindow(today, 0) // 2025-08-17 .. 2025-08-23
	monday := days[1]

	jane := employee("Jane", "Doe", domain.ScoreCardGreat)
	morning := &domain.Shift{
		ID:        uuid.New(),
		Name:      "Morning",
		StartTime: "08:00:00",
		EndTime:   "16:00:00",
		Color:     "#ffcc00",
	}

	t.Run("a cell without a record renders unassigned", func(t *testing.T) {
		table := BuildTable([]*domain.Employee{jane}, []*domain.Shift{morning}, nil, days)

		if len(table.Rows) != 1 || len(table.Rows[0].Cells) != 7 {
			t.Fatalf("unexpected table shape")
		}
		cell := table.Rows[0].Cells[1]
		if cell.State != CellUnassigned {
			t.Fatalf("expected unassigned cell, got %s", cell.State)
		}
		if cell.Color != unassignedColor || cell.State.Marker() != "" {
			t.Fatalf("unassigned cell must render neutral, got color %s marker %q", cell.Color, cell.State.Marker())
		}
	})

	t.Run("a fresh assignment renders pending in the shift color", func(t *testing.T) {
		rec := &domain.AvailabilityRecord{
			ID:         uuid.New(),
			EmployeeID: jane.ID,
			ShiftID:    morning.ID,
			Day:        monday,
			Decision:   domain.DecisionPending,
		}

		table := BuildTable([]*domain.Employee{jane}, []*domain.Shift{morning}, []*domain.AvailabilityRecord{rec}, days)

		cell := table.Rows[0].Cells[1]
		if cell.State != CellPending {
			t.Fatalf("expected pending cell, got %s", cell.State)
		}
		if cell.Color != "#ffcc00" {
			t.Fatalf("expected shift color #ffcc00, got %s", cell.Color)
		}
		if cell.State.Marker() != "?" {
			t.Fatalf("expected the pending marker, got %q", cell.State.Marker())
		}
		if cell.Shift != morning {
			t.Fatalf("cell did not resolve its shift")
		}
	})

	t.Run("reviewed records carry their markers", func(t *testing.T) {
		accepted := &domain.AvailabilityRecord{
			EmployeeID: jane.ID, ShiftID: morning.ID, Day: days[2],
			Decision: domain.DecisionAccepted,
		}
		rejected := &domain.AvailabilityRecord{
			EmployeeID: jane.ID, ShiftID: morning.ID, Day: days[3],
			Decision: domain.DecisionRejected,
		}

		table := BuildTable([]*domain.Employee{jane}, []*domain.Shift{morning},
			[]*domain.AvailabilityRecord{accepted, rejected}, days)

		if got := table.Rows[0].Cells[2]; got.State != CellAccepted || got.State.Marker() != "✓" {
			t.Fatalf("expected accepted cell with checkmark, got %s %q", got.State, got.State.Marker())
		}
		if got := table.Rows[0].Cells[3]; got.State != CellRejected || got.State.Marker() != "✗" {
			t.Fatalf("expected rejected cell, got %s %q", got.State, got.State.Marker())
		}
	})

	t.Run("records outside the window are ignored", func(t *testing.T) {
		rec := &domain.AvailabilityRecord{
			EmployeeID: jane.ID, ShiftID: morning.ID,
			Day:      domain.DayKey("2025-09-30"),
			Decision: domain.DecisionPending,
		}

		table := BuildTable([]*domain.Employee{jane}, []*domain.Shift{morning}, []*domain.AvailabilityRecord{rec}, days)
		for i, cell := range table.Rows[0].Cells {
			if cell.State != CellUnassigned {
				t.Fatalf("cell %d should be unassigned", i)
			}
		}
	})

	t.Run("rows follow scorecard order", func(t *testing.T) {
		poor := employee("Paul", "Tremblay", domain.ScoreCardPoor)
		table := BuildTable([]*domain.Employee{poor, jane}, nil, nil, days)
		if table.Rows[0].Employee != jane {
			t.Fatalf("expected the Great driver first")
		}
	})
}
