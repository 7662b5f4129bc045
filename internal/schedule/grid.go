package schedule

import (
	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
	"github.com/google/uuid"
)

type CellState string

const (
	CellUnassigned CellState = "unassigned"
	CellPending    CellState = "pending"
	CellAccepted   CellState = "accepted"
	CellRejected   CellState = "rejected"
)

// Marker is the glyph the grid shows on top of the shift color.
func (s CellState) Marker() string {
	switch s {
	case CellPending:
		return "?"
	case CellAccepted:
		return "✓"
	case CellRejected:
		return "✗"
	default:
		return ""
	}
}

// unassignedColor is the neutral background of cells without a record.
const unassignedColor = "#f5f5f5"

// Cell is the effective state of one (employee, day) slot. Record and Shift
// are nil for unassigned cells.
type Cell struct {
	Record *domain.AvailabilityRecord `json:"record,omitempty"`
	Shift  *domain.Shift              `json:"shift,omitempty"`
	State  CellState                  `json:"state"`
	Color  string                     `json:"color"`
}

type Row struct {
	Employee *domain.Employee `json:"employee"`
	Cells    []Cell           `json:"cells"`
}

// Table is the availability grid for one window: one row per employee in
// scorecard order, one cell per window day.
type Table struct {
	Days []domain.DayKey `json:"days"`
	Rows []Row           `json:"rows"`
}

type cellKey struct {
	employee uuid.UUID
	day      domain.DayKey
}

// BuildTable joins employees, shifts and availability records over the
// window days. Records outside the window are ignored; when the backend
// ever holds more than one record for a cell, the first fetched wins.
func BuildTable(employees []*domain.Employee, shifts []*domain.Shift, records []*domain.AvailabilityRecord, days []domain.DayKey) *Table {
	shiftsByID := make(map[uuid.UUID]*domain.Shift, len(shifts))
	for _, s := range shifts {
		shiftsByID[s.ID] = s
	}

	recordsByCell := make(map[cellKey]*domain.AvailabilityRecord, len(records))
	for _, rec := range records {
		key := cellKey{employee: rec.EmployeeID, day: rec.Day}
		if _, exists := recordsByCell[key]; !exists {
			recordsByCell[key] = rec
		}
	}

	table := &Table{
		Days: days,
		Rows: make([]Row, 0, len(employees)),
	}

	for _, e := range SortEmployees(employees) {
		row := Row{
			Employee: e,
			Cells:    make([]Cell, len(days)),
		}
		for i, day := range days {
			row.Cells[i] = buildCell(recordsByCell[cellKey{employee: e.ID, day: day}], shiftsByID)
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

func buildCell(rec *domain.AvailabilityRecord, shiftsByID map[uuid.UUID]*domain.Shift) Cell {
	if rec == nil {
		return Cell{State: CellUnassigned, Color: unassignedColor}
	}

	cell := Cell{
		Record: rec,
		Shift:  shiftsByID[rec.ShiftID],
		Color:  unassignedColor,
	}
	if cell.Shift != nil {
		cell.Color = cell.Shift.Color
	}

	switch rec.Decision {
	case domain.DecisionAccepted:
		cell.State = CellAccepted
	case domain.DecisionRejected:
		cell.State = CellRejected
	default:
		cell.State = CellPending
	}
	return cell
}
