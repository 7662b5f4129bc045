package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
	"github.com/dsp-hub/workforce-manager/backend/internal/schedule"
)

// window reads the requested view: a week_offset (default 0, the current
// week) or a single day for the day view.
func (h *Handler) window(r *http.Request) ([]domain.DayKey, error) {
	if dayParam := r.URL.Query().Get("day"); dayParam != "" {
		day, err := domain.ParseDayKey(dayParam)
		if err != nil {
			return nil, err
		}
		t, _ := day.Time()
		return schedule.DayWindow(t), nil
	}

	offset := 0
	if offsetParam := r.URL.Query().Get("week_offset"); offsetParam != "" {
		parsed, err := strconv.Atoi(offsetParam)
		if err != nil {
			return nil, err
		}
		offset = parsed
	}
	return schedule.WeekWindow(time.Now(), offset), nil
}

func (h *Handler) GetAllAvailability(w http.ResponseWriter, r *http.Request) {
	dspCode := h.dspCode(r)

	var records []*domain.AvailabilityRecord
	var err error

	// Without view parameters the full record set is returned, matching
	// the original list endpoint.
	if r.URL.Query().Get("day") == "" && r.URL.Query().Get("week_offset") == "" {
		records, err = h.repository.GetAllAvailabilityByDSP(dspCode)
	} else {
		var days []domain.DayKey
		days, err = h.window(r)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		records, err = h.repository.GetAvailabilityByDSPBetween(dspCode, days[0], days[len(days)-1])
	}
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, h.localize(r, "availability records", "disponibilités"), records)
}

func (h *Handler) GetAvailabilityGrid(w http.ResponseWriter, r *http.Request) {
	dspCode := h.dspCode(r)

	days, err := h.window(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	employees, err := h.getEmployees(dspCode)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if search := r.URL.Query().Get("search"); search != "" {
		employees = schedule.FilterEmployees(employees, search)
	}

	shifts, err := h.getShifts(dspCode)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	records, err := h.repository.GetAvailabilityByDSPBetween(dspCode, days[0], days[len(days)-1])
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	table := schedule.BuildTable(employees, shifts, records, days)

	h.successResponse(w, r, h.localize(r, "availability grid", "grille des disponibilités"), table)
}

func (h *Handler) CreateAvailability(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID    uuid.UUID       `json:"employeeId" validate:"required"`
		SelectedDay   string          `json:"selectedDay" validate:"required"`
		ShiftID       uuid.UUID       `json:"shiftId" validate:"required"`
		Decisions     domain.Decision `json:"decisions" validate:"omitempty,oneof=pending"`
		ExpoPushToken string          `json:"expoPushToken"`
		DSPCode       string          `json:"dsp_code" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.DSPCode != h.dspCode(r) {
		h.errorResponse(w, r, h.localize(r, "dsp_code does not match your session", "le dsp_code ne correspond pas à votre session"))
		return
	}

	day, err := domain.ParseDayKey(req.SelectedDay)
	if err != nil {
		h.errorResponse(w, r, h.localize(r, "selectedDay must be YYYY-MM-DD", "selectedDay doit être au format AAAA-MM-JJ"))
		return
	}

	employee, err := h.repository.GetEmployeeByID(req.EmployeeID, req.DSPCode)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, h.localize(r, "employee not found", "employé introuvable"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	shift, err := h.repository.GetShiftByID(req.ShiftID, req.DSPCode)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, h.localize(r, "shift not found", "quart introuvable"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// New assignments always start pending; accept/reject only happens
	// through a publish.
	record := &domain.AvailabilityRecord{
		EmployeeID: employee.ID,
		ShiftID:    shift.ID,
		Day:        day,
		Decision:   domain.DecisionPending,
		DSPCode:    req.DSPCode,
	}

	if err := h.repository.CreateAvailabilityRecord(record); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "availability_records_employee_id_day_dsp_code_key":
				h.errorResponse(w, r, h.localize(r, "this employee already has a shift that day", "cet employé a déjà un quart ce jour-là"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// The driver is told about the new slot out-of-band. The client may
	// send a fresher push token than the one on file.
	pushToken := req.ExpoPushToken
	if pushToken == "" {
		pushToken = employee.ExpoPushToken
	}
	if pushToken != "" {
		message := domain.QueueMessage{
			Type: "shift_assigned",
			To:   pushToken,
			Data: domain.ShiftAssignedPushData{
				EmployeeName: employee.Name + " " + employee.FamilyName,
				ShiftName:    shift.Name,
				Day:          record.Day,
				DSPCode:      record.DSPCode,
			},
		}
		if err := h.publishNotification(message); err != nil {
			// The record exists; a lost push must not fail the create.
			h.logInternalServerError(r, err)
		}
	}

	h.successResponse(w, r, h.localize(r, "availability created", "disponibilité créée"), record)
}

func (h *Handler) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
	recordID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.errorResponse(w, r, h.localize(r, "invalid record ID", "ID de disponibilité invalide"))
		return
	}

	record, err := h.repository.GetAvailabilityRecordByID(recordID, h.dspCode(r))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, h.localize(r, "record not found", "disponibilité introuvable"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.DeleteAvailabilityRecord(record.ID, record.DSPCode); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// deleted concurrently between the fetch and the delete
			h.errorResponse(w, r, h.localize(r, "record not found", "disponibilité introuvable"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// The deleted record is echoed back so the client can clear the cell
	// without refetching the window.
	h.successResponse(w, r, h.localize(r, "availability deleted", "disponibilité supprimée"), record)
}

func (h *Handler) PublishDecisions(w http.ResponseWriter, r *http.Request) {
	dspCode := h.dspCode(r)

	var req struct {
		Decisions []domain.DecisionUpdate `json:"decisions" validate:"required,dive"`
		DSPCode   string                  `json:"dsp_code" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.DSPCode != dspCode {
		h.errorResponse(w, r, h.localize(r, "dsp_code does not match your session", "le dsp_code ne correspond pas à votre session"))
		return
	}

	// Publishing an empty buffer is a no-op, not an error.
	if len(req.Decisions) == 0 {
		h.successResponse(w, r, h.localize(r, "nothing to publish", "rien à publier"), []domain.DecisionOutcome{})
		return
	}

	for _, upd := range req.Decisions {
		if upd.Status != domain.DecisionAccepted && upd.Status != domain.DecisionRejected {
			h.errorResponse(w, r, h.localize(r, "decisions may only be published as accepted or rejected", "les décisions publiées doivent être acceptées ou refusées"))
			return
		}
	}

	outcomes, err := h.repository.BulkUpdateDecisions(dspCode, req.Decisions)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.notifyPublished(r, dspCode, req.Decisions, outcomes)

	applied := 0
	for _, out := range outcomes {
		if out.Applied {
			applied++
		}
	}

	h.successResponse(w, r, h.localize(r, "decisions published", "décisions publiées"), struct {
		Outcomes []domain.DecisionOutcome `json:"outcomes"`
		Applied  int                      `json:"applied"`
		Failed   int                      `json:"failed"`
	}{
		Outcomes: outcomes,
		Applied:  applied,
		Failed:   len(outcomes) - applied,
	})
}

// notifyPublished fans out one push per applied decision and mails a
// publish report to the dispatcher. Notification failures are logged only.
func (h *Handler) notifyPublished(r *http.Request, dspCode string, updates []domain.DecisionUpdate, outcomes []domain.DecisionOutcome) {
	employees, err := h.getEmployees(dspCode)
	if err != nil {
		h.logInternalServerError(r, err)
		return
	}
	employeesByID := make(map[uuid.UUID]*domain.Employee, len(employees))
	for _, e := range employees {
		employeesByID[e.ID] = e
	}

	shifts, err := h.getShifts(dspCode)
	if err != nil {
		h.logInternalServerError(r, err)
		return
	}
	shiftsByID := make(map[uuid.UUID]*domain.Shift, len(shifts))
	for _, s := range shifts {
		shiftsByID[s.ID] = s
	}

	accepted, rejected, failed := 0, 0, 0
	for i, out := range outcomes {
		if !out.Applied {
			failed++
			continue
		}

		upd := updates[i]
		if upd.Status == domain.DecisionAccepted {
			accepted++
		} else {
			rejected++
		}

		employee := employeesByID[upd.EmployeeID]
		if employee == nil || employee.ExpoPushToken == "" {
			continue
		}
		shiftName := ""
		if shift := shiftsByID[upd.ShiftID]; shift != nil {
			shiftName = shift.Name
		}

		message := domain.QueueMessage{
			Type: "decision_published",
			To:   employee.ExpoPushToken,
			Data: domain.DecisionPushData{
				EmployeeName: employee.Name + " " + employee.FamilyName,
				ShiftName:    shiftName,
				Day:          upd.Day,
				Decision:     upd.Status,
				DSPCode:      dspCode,
			},
		}
		if err := h.publishNotification(message); err != nil {
			h.logInternalServerError(r, err)
		}
	}

	subString, _ := r.Context().Value(SubCtxKey).(string)
	sub, err := strconv.ParseInt(subString, 10, 64)
	if err != nil {
		return
	}
	publisher, err := h.repository.GetUserByID(sub)
	if err != nil {
		h.logInternalServerError(r, err)
		return
	}

	report := domain.QueueMessage{
		Type: "publish_report",
		To:   publisher.Email,
		Data: domain.PublishReportMailData{
			FullName: publisher.FullName,
			DSPCode:  dspCode,
			Accepted: accepted,
			Rejected: rejected,
			Failed:   failed,
		},
	}
	if err := h.publishNotification(report); err != nil {
		h.logInternalServerError(r, err)
	}
}
