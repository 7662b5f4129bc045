package schedule

import (
	"slices"
	"strings"

	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
)

// Buffer accumulates accept/reject edits made in the grid since the last
// successful publish. It is an optimistic local store: the counters reflect
// buffered toggles, never the server's ground truth, and a record fetched
// as already accepted or rejected is not counted until it is toggled again.
type Buffer struct {
	commands map[cellKey]*domain.DecisionUpdate
	accepted int
	rejected int
}

func NewBuffer() *Buffer {
	return &Buffer{
		commands: make(map[cellKey]*domain.DecisionUpdate),
	}
}

// Accept buffers an "accepted" decision for the record's cell. A previously
// buffered rejection of the same cell is converted, so the counters track
// net toggles rather than click counts.
func (b *Buffer) Accept(rec *domain.AvailabilityRecord) {
	b.set(rec, domain.DecisionAccepted)
}

// Reject buffers a "rejected" decision, symmetric to Accept.
func (b *Buffer) Reject(rec *domain.AvailabilityRecord) {
	b.set(rec, domain.DecisionRejected)
}

func (b *Buffer) set(rec *domain.AvailabilityRecord, decision domain.Decision) {
	key := cellKey{employee: rec.EmployeeID, day: rec.Day}

	prev, buffered := b.commands[key]
	switch {
	case buffered && prev.Status == decision:
		return
	case buffered:
		// Toggle of an already buffered edit.
		b.count(prev.Status, -1)
	case rec.Decision == decision:
		// The server already holds this decision; nothing to publish.
		return
	}

	b.commands[key] = &domain.DecisionUpdate{
		EmployeeID: rec.EmployeeID,
		Day:        rec.Day,
		ShiftID:    rec.ShiftID,
		Status:     decision,
	}
	b.count(decision, 1)
}

// Forget drops any buffered edit for the cell. Used when the record is
// deleted: deletion goes straight to the backend and never rides a publish.
func (b *Buffer) Forget(rec *domain.AvailabilityRecord) {
	key := cellKey{employee: rec.EmployeeID, day: rec.Day}
	if prev, ok := b.commands[key]; ok {
		b.count(prev.Status, -1)
		delete(b.commands, key)
	}
}

func (b *Buffer) count(decision domain.Decision, delta int) {
	switch decision {
	case domain.DecisionAccepted:
		b.accepted += delta
	case domain.DecisionRejected:
		b.rejected += delta
	}
}

func (b *Buffer) AcceptedCount() int { return b.accepted }
func (b *Buffer) RejectedCount() int { return b.rejected }

func (b *Buffer) Empty() bool { return len(b.commands) == 0 }

// Changes returns the buffered edits in a deterministic order (by day, then
// employee) ready to be published as one batch.
func (b *Buffer) Changes() []domain.DecisionUpdate {
	changes := make([]domain.DecisionUpdate, 0, len(b.commands))
	for _, cmd := range b.commands {
		changes = append(changes, *cmd)
	}
	slices.SortFunc(changes, func(a, c domain.DecisionUpdate) int {
		if a.Day != c.Day {
			return strings.Compare(string(a.Day), string(c.Day))
		}
		return strings.Compare(a.EmployeeID.String(), c.EmployeeID.String())
	})
	return changes
}

// ApplyOutcomes reconciles the buffer with the per-item results of a
// publish: applied edits are cleared, failed ones stay buffered for
// re-submission.
func (b *Buffer) ApplyOutcomes(outcomes []domain.DecisionOutcome) {
	for _, out := range outcomes {
		if !out.Applied {
			continue
		}
		key := cellKey{employee: out.EmployeeID, day: out.Day}
		if cmd, ok := b.commands[key]; ok {
			b.count(cmd.Status, -1)
			delete(b.commands, key)
		}
	}
}

// Reset clears the buffer and both counters.
func (b *Buffer) Reset() {
	b.commands = make(map[cellKey]*domain.DecisionUpdate)
	b.accepted = 0
	b.rejected = 0
}
