package handler

import (
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/dsp-hub/workforce-manager/backend/internal/schedule"
)

func (h *Handler) weeklySummary(r *http.Request) (*schedule.Summary, error) {
	dspCode := h.dspCode(r)

	days, err := h.window(r)
	if err != nil {
		return nil, err
	}

	shifts, err := h.getShifts(dspCode)
	if err != nil {
		return nil, err
	}

	records, err := h.repository.GetAvailabilityByDSPBetween(dspCode, days[0], days[len(days)-1])
	if err != nil {
		return nil, err
	}

	return schedule.Summarize(shifts, records, days), nil
}

func (h *Handler) GetWeeklySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.weeklySummary(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, h.localize(r, "weekly summary", "résumé hebdomadaire"), summary)
}

// ExportWeeklySummary renders the summary as a spreadsheet: one row per
// shift, one column per day, each cell holding pending/accepted/rejected
// counts.
func (h *Handler) ExportWeeklySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.weeklySummary(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Summary"
	f.SetSheetName("Sheet1", sheet)

	if err := f.SetCellValue(sheet, "A1", h.localize(r, "Shift", "Quart")); err != nil {
		h.internalServerError(w, r, err)
		return
	}
	for i, day := range summary.Days {
		cell, err := excelize.CoordinatesToCellName(i+2, 1)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if err := f.SetCellValue(sheet, cell, day.String()); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	for rowIdx, row := range summary.Rows {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if err := f.SetCellValue(sheet, cell, row.Shift.Name); err != nil {
			h.internalServerError(w, r, err)
			return
		}

		for colIdx, counts := range row.Counts {
			cell, err := excelize.CoordinatesToCellName(colIdx+2, rowIdx+2)
			if err != nil {
				h.internalServerError(w, r, err)
				return
			}
			value := fmt.Sprintf("P:%d A:%d R:%d", counts.Pending, counts.Accepted, counts.Rejected)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				h.internalServerError(w, r, err)
				return
			}
		}
	}

	filename := fmt.Sprintf("availability-summary-%s.xlsx", h.dspCode(r))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := f.Write(w); err != nil {
		h.logInternalServerError(r, err)
	}
}
