package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
)

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.getEmployees(h.dspCode(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, h.localize(r, "employees of the station", "employés de la station"), employees)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	h.successResponse(w, r, h.localize(r, "employee found", "employé trouvé"), employee)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string           `json:"name" validate:"required"`
		FamilyName    string           `json:"familyName" validate:"required"`
		ScoreCard     domain.ScoreCard `json:"scoreCard" validate:"omitempty,oneof=Fantastic Great Fair Poor 'New DA'"`
		ExpoPushToken string           `json:"expoPushToken"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.ScoreCard == "" {
		req.ScoreCard = domain.ScoreCardNewDA
	}

	employee := &domain.Employee{
		Name:          req.Name,
		FamilyName:    req.FamilyName,
		ScoreCard:     req.ScoreCard,
		ExpoPushToken: req.ExpoPushToken,
		DSPCode:       h.dspCode(r),
	}

	if err := h.repository.CreateEmployee(employee); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateEmployees(employee.DSPCode)

	h.successResponse(w, r, h.localize(r, "employee created", "employé créé"), employee)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	var req struct {
		Name          *string           `json:"name"`
		FamilyName    *string           `json:"familyName"`
		ScoreCard     *domain.ScoreCard `json:"scoreCard" validate:"omitempty,oneof=Fantastic Great Fair Poor 'New DA'"`
		ExpoPushToken *string           `json:"expoPushToken"`
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
		employee.Name = *req.Name
	}
	if req.FamilyName != nil {
		employee.FamilyName = *req.FamilyName
	}
	if req.ScoreCard != nil {
		employee.ScoreCard = *req.ScoreCard
	}
	if req.ExpoPushToken != nil {
		employee.ExpoPushToken = *req.ExpoPushToken
	}

	if err := h.repository.UpdateEmployee(employee); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// version conflict: someone else updated the employee first
			h.errorResponse(w, r, h.localize(r, "please retry", "veuillez réessayer"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidateEmployees(employee.DSPCode)

	h.successResponse(w, r, h.localize(r, "employee updated", "employé mis à jour"), employee)
}
