package schedule

import (
	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
	"github.com/google/uuid"
)

type DayCounts struct {
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

type SummaryRow struct {
	Shift *domain.Shift `json:"shift"`
	// Counts is aligned with Summary.Days.
	Counts []DayCounts `json:"counts"`
}

// Summary cross-tabulates availability records for a window: one row per
// shift type, one column per day, each cell counting records by decision.
type Summary struct {
	Days []domain.DayKey `json:"days"`
	Rows []SummaryRow    `json:"rows"`
}

// Summarize recomputes the cross-tab from scratch. It is cheap enough to
// derive on demand every time the report is requested.
func Summarize(shifts []*domain.Shift, records []*domain.AvailabilityRecord, days []domain.DayKey) *Summary {
	dayIndex := make(map[domain.DayKey]int, len(days))
	for i, d := range days {
		dayIndex[d] = i
	}

	rowIndex := make(map[uuid.UUID]int, len(shifts))
	summary := &Summary{
		Days: days,
		Rows: make([]SummaryRow, len(shifts)),
	}
	for i, s := range shifts {
		rowIndex[s.ID] = i
		summary.Rows[i] = SummaryRow{
			Shift:  s,
			Counts: make([]DayCounts, len(days)),
		}
	}

	for _, rec := range records {
		row, ok := rowIndex[rec.ShiftID]
		if !ok {
			continue
		}
		col, ok := dayIndex[rec.Day]
		if !ok {
			continue
		}

		counts := &summary.Rows[row].Counts[col]
		switch rec.Decision {
		case domain.DecisionAccepted:
			counts.Accepted++
		case domain.DecisionRejected:
			counts.Rejected++
		default:
			counts.Pending++
		}
	}

	return summary
}
