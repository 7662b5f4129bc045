package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
	"github.com/dsp-hub/workforce-manager/backend/internal/utils"
)

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string          `json:"username" validate:"required"`
		FullName string          `json:"fullName" validate:"required"`
		Email    string          `json:"email" validate:"required,email"`
		Role     domain.Role     `json:"role" validate:"required,oneof=dispatcher manager owner"`
		Language domain.Language `json:"language" validate:"omitempty,oneof=en fr"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Language == "" {
		req.Language = domain.LanguageEnglish
	}

	// New accounts get a generated password sent by email.
	password := utils.GenerateRandomPassword(h.config.NewUser.PasswordLength)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user := &domain.User{
		Username:     req.Username,
		PasswordHash: string(passwordHash),
		FullName:     req.FullName,
		Email:        req.Email,
		Role:         req.Role,
		Language:     req.Language,
		DSPCode:      h.dspCode(r),
	}

	if err := h.repository.CreateUser(user); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "users_username_key":
				h.errorResponse(w, r, h.localize(r, "username already exists", "ce nom d'utilisateur existe déjà"))
			case "users_email_key":
				h.errorResponse(w, r, h.localize(r, "email already exists", "ce courriel existe déjà"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	message := domain.QueueMessage{
		Type: "create_user",
		To:   user.Email,
		Data: domain.CreateUserMailData{
			FullName: user.FullName,
			Username: user.Username,
			Password: password,
		},
	}
	if err := h.publishNotification(message); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, h.localize(r, "account created", "compte créé"), user)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	if sub := r.Context().Value(SubCtxKey).(string); sub == strconv.FormatInt(user.ID, 10) {
		h.errorResponse(w, r, h.localize(r, "you cannot delete your own account", "vous ne pouvez pas supprimer votre propre compte"))
		return
	}

	if err := h.repository.DeleteUser(user.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, h.localize(r, "account deleted", "compte supprimé"), nil)
}

func (h *Handler) GetAllUserInfo(w http.ResponseWriter, r *http.Request) {
	users, err := h.repository.GetAllUsersByDSP(h.dspCode(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, h.localize(r, "accounts of the station", "comptes de la station"), users)
}
