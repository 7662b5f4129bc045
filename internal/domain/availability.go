package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Decision string

const (
	DecisionPending  Decision = "pending"
	DecisionAccepted Decision = "accepted"
	DecisionRejected Decision = "rejected"
)

// AvailabilityRecord ("disponibilité") is an employee's shift slot for one
// day, together with the dispatcher's review decision. At most one record
// exists per (employee, day) within a tenant.
type AvailabilityRecord struct {
	ID         uuid.UUID `json:"id"`
	EmployeeID uuid.UUID `json:"employeeId"`
	ShiftID    uuid.UUID `json:"shiftId"`
	Day        DayKey    `json:"selectedDay"`
	Decision   Decision  `json:"decisions"`
	DSPCode    string    `json:"dsp_code"`
	CreatedAt  time.Time `json:"createdAt"`
	Version    int32     `json:"-"`
}

// ValidDecisionTransition reports whether moving a record from one decision
// to another is allowed. Pending can move to accepted or rejected, and an
// already reviewed record can be toggled between the two, but nothing ever
// moves back to pending.
func ValidDecisionTransition(from, to Decision) error {
	switch to {
	case DecisionAccepted, DecisionRejected:
		return nil
	case DecisionPending:
		return fmt.Errorf("a record cannot return to %q from %q", DecisionPending, from)
	default:
		return fmt.Errorf("unknown decision %q", to)
	}
}
