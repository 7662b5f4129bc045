package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dsp-hub/workforce-manager/backend/internal/config"
	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
	"github.com/dsp-hub/workforce-manager/backend/internal/repository"
)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 5
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 3600

	h, err := NewHandler(cfg, repository.NewRepository(cfg, db), nil, nil)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	return h, mock
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) Response {
	t.Helper()

	var resp Response
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func signedCookie(t *testing.T, h *Handler, sub string, role domain.Role, dspCode string) *http.Cookie {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		Role:     string(role),
		DSPCode:  dspCode,
		Language: string(domain.LanguageEnglish),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   sub,
		},
	})
	ss, err := token.SignedString([]byte(h.config.JWT.Secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return &http.Cookie{Name: "__dsp_workforce_token", Value: ss}
}

func TestUpdateEmployeeVersionConflict(t *testing.T) {
	h, mock := newTestHandler(t)

	employee := &domain.Employee{
		ID:         uuid.New(),
		Name:       "Jane",
		FamilyName: "Doe",
		ScoreCard:  domain.ScoreCardGreat,
		DSPCode:    "YVR7",
		Version:    1,
	}
	mock.ExpectQuery("UPDATE employees").WillReturnError(sql.ErrNoRows)

	r := httptest.NewRequest(http.MethodPatch, "/api/employee/"+employee.ID.String(), strings.NewReader(`{"name":"Janet"}`))
	r = r.WithContext(context.WithValue(r.Context(), EmployeeCtx, employee))
	rr := httptest.NewRecorder()

	h.UpdateEmployee(rr, r)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	resp := decodeResponse(t, rr)
	if resp.Success {
		t.Fatal("expected a business error, got success")
	}
	if resp.Message != "please retry" {
		t.Errorf("message = %q, want %q", resp.Message, "please retry")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateShiftVersionConflict(t *testing.T) {
	h, mock := newTestHandler(t)

	shift := &domain.Shift{
		ID:        uuid.New(),
		Name:      "Morning",
		StartTime: "08:00:00",
		EndTime:   "12:00:00",
		Color:     "#ffcc00",
		DSPCode:   "YVR7",
		Version:   2,
	}
	mock.ExpectQuery("UPDATE shifts").WillReturnError(sql.ErrNoRows)

	r := httptest.NewRequest(http.MethodPatch, "/api/shifts/shifts/"+shift.ID.String(), strings.NewReader(`{"name":"Early Morning"}`))
	r = r.WithContext(context.WithValue(r.Context(), ShiftCtx, shift))
	rr := httptest.NewRecorder()

	h.UpdateShift(rr, r)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	resp := decodeResponse(t, rr)
	if resp.Success {
		t.Fatal("expected a business error, got success")
	}
	if resp.Message != "please retry" {
		t.Errorf("message = %q, want %q", resp.Message, "please retry")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteUserRoute(t *testing.T) {
	h, mock := newTestHandler(t)
	h.RegisterRoutes()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"username", "password_hash", "full_name", "email", "role", "language", "dsp_code", "is_active", "created_at", "version"}).
		AddRow("jdoe", "hash", "John Doe", "jdoe@example.test", "dispatcher", "en", "YVR7", true, now, 1)
	mock.ExpectQuery("SELECT username, password_hash").WillReturnRows(rows)
	mock.ExpectExec("DELETE FROM users").WillReturnResult(sqlmock.NewResult(0, 1))

	r := httptest.NewRequest(http.MethodDelete, "/users/5?dsp_code=YVR7", nil)
	r.AddCookie(signedCookie(t, h, "1", domain.RoleOwner, "YVR7"))
	rr := httptest.NewRecorder()

	h.Mux.ServeHTTP(rr, r)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	resp := decodeResponse(t, rr)
	if !resp.Success {
		t.Fatalf("expected success, got %q", resp.Message)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteUserOwnAccount(t *testing.T) {
	h, mock := newTestHandler(t)

	user := &domain.User{ID: 1, Username: "owner", DSPCode: "YVR7"}

	r := httptest.NewRequest(http.MethodDelete, "/users/1", nil)
	ctx := context.WithValue(r.Context(), UserInfoCtx, user)
	ctx = context.WithValue(ctx, SubCtxKey, "1")
	r = r.WithContext(ctx)
	rr := httptest.NewRecorder()

	h.DeleteUser(rr, r)

	resp := decodeResponse(t, rr)
	if resp.Success {
		t.Fatal("expected a business error, got success")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteUserRequiresOwner(t *testing.T) {
	h, mock := newTestHandler(t)
	h.RegisterRoutes()

	r := httptest.NewRequest(http.MethodDelete, "/users/5?dsp_code=YVR7", nil)
	r.AddCookie(signedCookie(t, h, "1", domain.RoleDispatcher, "YVR7"))
	rr := httptest.NewRecorder()

	h.Mux.ServeHTTP(rr, r)

	resp := decodeResponse(t, rr)
	if resp.Success {
		t.Fatal("expected a permission error, got success")
	}
	if resp.Message != "insufficient permissions" {
		t.Errorf("message = %q, want %q", resp.Message, "insufficient permissions")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRequireUpdateEmailTaken(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery("SELECT EXISTS").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	r := httptest.NewRequest(http.MethodPost, "/my-info/email/require", strings.NewReader(`{"newEmail":"taken@example.test"}`))
	r = r.WithContext(context.WithValue(r.Context(), MyInfoCtx, &domain.User{ID: 1, Username: "jdoe", FullName: "John Doe"}))
	rr := httptest.NewRecorder()

	h.RequireUpdateEmail(rr, r)

	resp := decodeResponse(t, rr)
	if resp.Success {
		t.Fatal("expected a business error, got success")
	}
	if resp.Message != "email already in use" {
		t.Errorf("message = %q, want %q", resp.Message, "email already in use")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func deleteAvailabilityRequest(id uuid.UUID) *http.Request {
	r := httptest.NewRequest(http.MethodDelete, "/api/disponibilites/disponibilites/"+id.String(), nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id.String())
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, DSPCodeCtxKey, "YVR7")
	return r.WithContext(ctx)
}

func TestDeleteAvailabilityNotFound(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery("SELECT employee_id, shift_id, day").WillReturnError(sql.ErrNoRows)

	rr := httptest.NewRecorder()
	h.DeleteAvailability(rr, deleteAvailabilityRequest(uuid.New()))

	resp := decodeResponse(t, rr)
	if resp.Success {
		t.Fatal("expected a business error, got success")
	}
	if resp.Message != "record not found" {
		t.Errorf("message = %q, want %q", resp.Message, "record not found")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteAvailabilityEchoesRecord(t *testing.T) {
	h, mock := newTestHandler(t)

	recordID := uuid.New()
	day := time.Date(2025, 8, 24, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"employee_id", "shift_id", "day", "decision", "created_at", "version"}).
		AddRow(uuid.New().String(), uuid.New().String(), day, "pending", time.Now(), 1)
	mock.ExpectQuery("SELECT employee_id, shift_id, day").WillReturnRows(rows)
	mock.ExpectExec("DELETE FROM availability_records").WillReturnResult(sqlmock.NewResult(0, 1))

	rr := httptest.NewRecorder()
	h.DeleteAvailability(rr, deleteAvailabilityRequest(recordID))

	resp := decodeResponse(t, rr)
	if !resp.Success {
		t.Fatalf("expected success, got %q", resp.Message)
	}

	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("data = %T, want an availability record", resp.Data)
	}
	if got := data["id"]; got != recordID.String() {
		t.Errorf("id = %v, want %s", got, recordID)
	}
	if got := data["selectedDay"]; got != "2025-08-24" {
		t.Errorf("selectedDay = %v, want 2025-08-24", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
