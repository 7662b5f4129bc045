package domain

import "github.com/google/uuid"

// DecisionUpdate is one item of a bulk publish. Items address records by
// (employee, day), matching the grid cell the dispatcher toggled.
type DecisionUpdate struct {
	EmployeeID uuid.UUID `json:"employeeId"`
	Day        DayKey    `json:"selectedDay"`
	ShiftID    uuid.UUID `json:"shiftId"`
	Status     Decision  `json:"status"`
}

// DecisionOutcome reports what happened to one DecisionUpdate. Bulk publish
// is best-effort per item, so callers must inspect every outcome: only the
// applied subset may be dropped from their local buffer.
type DecisionOutcome struct {
	EmployeeID uuid.UUID `json:"employeeId"`
	Day        DayKey    `json:"selectedDay"`
	Applied    bool      `json:"applied"`
	Reason     string    `json:"reason,omitempty"`
}
