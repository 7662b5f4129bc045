package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
	"github.com/dsp-hub/workforce-manager/backend/internal/utils"
)

func (h *Handler) GetAllShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.getShifts(h.dspCode(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, h.localize(r, "shifts of the station", "quarts de la station"), shifts)
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name" validate:"required"`
		StartTime string `json:"startTime" validate:"required"`
		EndTime   string `json:"endTime" validate:"required"`
		Color     string `json:"color" validate:"required,hexcolor"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift := &domain.Shift{
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Color:     req.Color,
		DSPCode:   h.dspCode(r),
	}

	if err := utils.ValidateShiftTimes(shift); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateShift(shift); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "shifts_name_dsp_code_key":
				h.errorResponse(w, r, h.localize(r, "a shift with this name already exists", "un quart portant ce nom existe déjà"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidateShifts(shift.DSPCode)

	h.successResponse(w, r, h.localize(r, "shift created", "quart créé"), shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	var req struct {
		Name      *string `json:"name"`
		StartTime *string `json:"startTime"`
		EndTime   *string `json:"endTime"`
		Color     *string `json:"color" validate:"omitempty,hexcolor"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		shift.Name = *req.Name
	}
	if req.StartTime != nil {
		shift.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		shift.EndTime = *req.EndTime
	}
	if req.Color != nil {
		shift.Color = *req.Color
	}

	if err := utils.ValidateShiftTimes(shift); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateShift(shift); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// version conflict: someone else updated the shift first
			h.errorResponse(w, r, h.localize(r, "please retry", "veuillez réessayer"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidateShifts(shift.DSPCode)

	h.successResponse(w, r, h.localize(r, "shift updated", "quart mis à jour"), shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := h.repository.DeleteShift(shift.ID, shift.DSPCode); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "availability_records_shift_id_fkey":
				h.errorResponse(w, r, h.localize(r, "shift still has availability records", "le quart a encore des disponibilités"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidateShifts(shift.DSPCode)

	h.successResponse(w, r, h.localize(r, "shift deleted", "quart supprimé"), nil)
}
