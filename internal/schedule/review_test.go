package schedule

import (
	"testing"

	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
	"github.com/google/uuid"
)

func pendingRecord() *domain.AvailabilityRecord {
	return &domain.AvailabilityRecord{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		ShiftID:    uuid.New(),
		Day:        domain.DayKey("2025-08-18"),
		Decision:   domain.DecisionPending,
	}
}

func TestBuffer_Counters(t *testing.T) {
	t.Run("accept then reject on the same cell is a net toggle", func(t *testing.T) {
		b := NewBuffer()
		rec := pendingRecord()

		b.Accept(rec)
		b.Reject(rec)

		if b.AcceptedCount() != 0 || b.RejectedCount() != 1 {
			t.Fatalf("expected counters {0,1}, got {%d,%d}", b.AcceptedCount(), b.RejectedCount())
		}
		if len(b.Changes()) != 1 {
			t.Fatalf("expected a single buffered change, got %d", len(b.Changes()))
		}
	})

	t.Run("edits on distinct cells count independently", func(t *testing.T) {
		b := NewBuffer()
		first := pendingRecord()
		second := pendingRecord()

		b.Accept(first)
		b.Accept(second)
		b.Reject(first)

		if b.AcceptedCount() != 1 || b.RejectedCount() != 1 {
			t.Fatalf("expected counters {1,1}, got {%d,%d}", b.AcceptedCount(), b.RejectedCount())
		}
	})

	t.Run("repeated clicks are idempotent", func(t *testing.T) {
		b := NewBuffer()
		rec := pendingRecord()

		b.Accept(rec)
		b.Accept(rec)
		b.Accept(rec)

		if b.AcceptedCount() != 1 {
			t.Fatalf("expected acceptedCount 1, got %d", b.AcceptedCount())
		}
	})

	t.Run("already persisted decisions are not counted", func(t *testing.T) {
		b := NewBuffer()
		rec := pendingRecord()
		rec.Decision = domain.DecisionAccepted

		b.Accept(rec)

		if b.AcceptedCount() != 0 || !b.Empty() {
			t.Fatalf("accepting an already accepted record must not buffer a change")
		}
	})

	t.Run("toggling a persisted decision does buffer", func(t *testing.T) {
		b := NewBuffer()
		rec := pendingRecord()
		rec.Decision = domain.DecisionAccepted

		b.Reject(rec)

		if b.RejectedCount() != 1 {
			t.Fatalf("expected rejectedCount 1, got %d", b.RejectedCount())
		}
	})
}

func TestBuffer_Forget(t *testing.T) {
	b := NewBuffer()
	rec := pendingRecord()

	b.Accept(rec)
	b.Forget(rec)

	if !b.Empty() || b.AcceptedCount() != 0 {
		t.Fatalf("expected an empty buffer after Forget")
	}
}

func TestBuffer_Changes(t *testing.T) {
	b := NewBuffer()

	early := pendingRecord()
	early.Day = domain.DayKey("2025-08-17")
	late := pendingRecord()
	late.Day = domain.DayKey("2025-08-20")

	b.Reject(late)
	b.Accept(early)

	changes := b.Changes()
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(changes))
	}
	if changes[0].Day != early.Day {
		t.Fatalf("expected changes ordered by day, got %s first", changes[0].Day)
	}
	if changes[0].Status != domain.DecisionAccepted || changes[1].Status != domain.DecisionRejected {
		t.Fatalf("unexpected change statuses: %v", changes)
	}
}

func TestBuffer_ApplyOutcomes(t *testing.T) {
	b := NewBuffer()
	applied := pendingRecord()
	failed := pendingRecord()

	b.Accept(applied)
	b.Reject(failed)

	b.ApplyOutcomes([]domain.DecisionOutcome{
		{EmployeeID: applied.EmployeeID, Day: applied.Day, Applied: true},
		{EmployeeID: failed.EmployeeID, Day: failed.Day, Applied: false, Reason: "record not found"},
	})

	if b.AcceptedCount() != 0 {
		t.Fatalf("applied edit should have been cleared, acceptedCount = %d", b.AcceptedCount())
	}
	if b.RejectedCount() != 1 {
		t.Fatalf("failed edit must stay buffered, rejectedCount = %d", b.RejectedCount())
	}

	changes := b.Changes()
	if len(changes) != 1 || changes[0].EmployeeID != failed.EmployeeID {
		t.Fatalf("expected the failed edit to remain for re-submission")
	}
}

func TestBuffer_Reset(t *testing.T) {
	b := NewBuffer()
	b.Accept(pendingRecord())
	b.Reject(pendingRecord())

	b.Reset()

	if !b.Empty() || b.AcceptedCount() != 0 || b.RejectedCount() != 0 {
		t.Fatalf("expected a clean buffer after Reset")
	}
}
