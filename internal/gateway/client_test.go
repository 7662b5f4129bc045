package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
)

func respond(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "ok",
		"data":    data,
	}); err != nil {
		t.Fatalf("failed to encode response: %v", err)
	}
}

func TestClient_ListEmployees(t *testing.T) {
	t.Run("sends the tenant code on every request", func(t *testing.T) {
		var gotDSP string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotDSP = r.URL.Query().Get("dsp_code")
			respond(t, w, []*domain.Employee{})
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "YVR7")
		if _, err := c.ListEmployees(context.Background()); err != nil {
			t.Fatalf("ListEmployees returned error: %v", err)
		}
		if gotDSP != "YVR7" {
			t.Fatalf("expected dsp_code YVR7, got %q", gotDSP)
		}
	})

	t.Run("treats 404 as an empty list", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "YVR7")
		employees, err := c.ListEmployees(context.Background())
		if err != nil {
			t.Fatalf("a 404 list must not be an error, got %v", err)
		}
		if len(employees) != 0 {
			t.Fatalf("expected empty list, got %d employees", len(employees))
		}
	})

	t.Run("surfaces business failures as errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"message": "not signed in",
			})
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "YVR7")
		if _, err := c.ListEmployees(context.Background()); err == nil {
			t.Fatalf("expected an error for success=false")
		}
	})
}

func TestClient_CreateAvailability(t *testing.T) {
	employeeID := uuid.New()
	shiftID := uuid.New()

	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/disponibilites/disponibilites/create" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		respond(t, w, &domain.AvailabilityRecord{
			ID:         uuid.New(),
			EmployeeID: employeeID,
			ShiftID:    shiftID,
			Day:        domain.DayKey("2025-08-18"),
			Decision:   domain.DecisionPending,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "YVR7")
	record, err := c.CreateAvailability(context.Background(), CreateAvailabilityRequest{
		EmployeeID:    employeeID,
		SelectedDay:   domain.DayKey("2025-08-18"),
		ShiftID:       shiftID,
		ExpoPushToken: "ExponentPushToken[abc123]",
	})
	if err != nil {
		t.Fatalf("CreateAvailability returned error: %v", err)
	}

	if gotBody["decisions"] != string(domain.DecisionPending) {
		t.Fatalf("create must always send decisions=pending, got %v", gotBody["decisions"])
	}
	if gotBody["dsp_code"] != "YVR7" {
		t.Fatalf("create must carry the tenant code in the body, got %v", gotBody["dsp_code"])
	}
	if gotBody["expoPushToken"] != "ExponentPushToken[abc123]" {
		t.Fatalf("create must forward the push token, got %v", gotBody["expoPushToken"])
	}
	if record.Decision != domain.DecisionPending {
		t.Fatalf("expected a pending record, got %s", record.Decision)
	}
}

func TestClient_PublishDecisions(t *testing.T) {
	t.Run("an empty batch issues no request", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatalf("no request expected for an empty batch")
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "YVR7")
		outcomes, err := c.PublishDecisions(context.Background(), nil)
		if err != nil {
			t.Fatalf("PublishDecisions returned error: %v", err)
		}
		if len(outcomes) != 0 {
			t.Fatalf("expected no outcomes, got %d", len(outcomes))
		}
	})

	t.Run("returns per-item outcomes", func(t *testing.T) {
		applied := domain.DecisionOutcome{EmployeeID: uuid.New(), Day: domain.DayKey("2025-08-18"), Applied: true}
		failed := domain.DecisionOutcome{EmployeeID: uuid.New(), Day: domain.DayKey("2025-08-19"), Reason: "record not found"}

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/disponibilites/updateDisponibilites" {
				t.Fatalf("unexpected path %s", r.URL.Path)
			}
			respond(t, w, map[string]any{
				"outcomes": []domain.DecisionOutcome{applied, failed},
				"applied":  1,
				"failed":   1,
			})
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "YVR7")
		outcomes, err := c.PublishDecisions(context.Background(), []domain.DecisionUpdate{
			{EmployeeID: applied.EmployeeID, Day: applied.Day, Status: domain.DecisionAccepted},
			{EmployeeID: failed.EmployeeID, Day: failed.Day, Status: domain.DecisionRejected},
		})
		if err != nil {
			t.Fatalf("PublishDecisions returned error: %v", err)
		}
		if len(outcomes) != 2 {
			t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
		}
		if !outcomes[0].Applied || outcomes[1].Applied {
			t.Fatalf("unexpected outcomes: %+v", outcomes)
		}
	})
}

func TestClient_DeleteAvailability(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Fatalf("expected DELETE, got %s", r.Method)
		}
		if r.URL.Path != "/api/disponibilites/disponibilites/"+id.String() {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "YVR7")
	if err := c.DeleteAvailability(context.Background(), id); err != nil {
		t.Fatalf("DeleteAvailability returned error: %v", err)
	}
}
