// Package gateway is the Go client for the workforce API: thin call
// wrappers over the REST surface, with the tenant's dsp_code carried
// explicitly on every request.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
)

type Client struct {
	BaseURL string
	DSPCode string
	// Token is the session cookie value; empty for unauthenticated use.
	Token string
	HTTP  *http.Client
}

func NewClient(baseURL, dspCode string) *Client {
	return &Client{
		BaseURL: baseURL,
		DSPCode: dspCode,
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	endpoint, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return err
	}
	q := endpoint.Query()
	q.Set("dsp_code", c.DSPCode)
	endpoint.RawQuery = q.Encode()

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.AddCookie(&http.Cookie{Name: "__dsp_workforce_token", Value: c.Token})
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// The backend answers 404 for "no data behind this query"; lists
	// treat this as empty, not as a failure.
	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return err
	}
	if !env.Success {
		return fmt.Errorf("%s %s: %s", method, path, env.Message)
	}
	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

var errNotFound = fmt.Errorf("not found")

func (c *Client) ListEmployees(ctx context.Context) ([]*domain.Employee, error) {
	employees := make([]*domain.Employee, 0)
	if err := c.do(ctx, http.MethodGet, "/api/employee", nil, &employees); err != nil {
		if err == errNotFound {
			return []*domain.Employee{}, nil
		}
		return nil, err
	}
	return employees, nil
}

func (c *Client) ListShifts(ctx context.Context) ([]*domain.Shift, error) {
	shifts := make([]*domain.Shift, 0)
	if err := c.do(ctx, http.MethodGet, "/api/shifts/shifts", nil, &shifts); err != nil {
		if err == errNotFound {
			return []*domain.Shift{}, nil
		}
		return nil, err
	}
	return shifts, nil
}

func (c *Client) ListAvailability(ctx context.Context) ([]*domain.AvailabilityRecord, error) {
	records := make([]*domain.AvailabilityRecord, 0)
	if err := c.do(ctx, http.MethodGet, "/api/disponibilites/disponibilites", nil, &records); err != nil {
		if err == errNotFound {
			return []*domain.AvailabilityRecord{}, nil
		}
		return nil, err
	}
	return records, nil
}

type CreateAvailabilityRequest struct {
	EmployeeID    uuid.UUID       `json:"employeeId"`
	SelectedDay   domain.DayKey   `json:"selectedDay"`
	ShiftID       uuid.UUID       `json:"shiftId"`
	Decisions     domain.Decision `json:"decisions"`
	ExpoPushToken string          `json:"expoPushToken"`
	DSPCode       string          `json:"dsp_code"`
}

// CreateAvailability assigns a shift to an empty cell. The record is
// persisted immediately as pending.
func (c *Client) CreateAvailability(ctx context.Context, req CreateAvailabilityRequest) (*domain.AvailabilityRecord, error) {
	req.Decisions = domain.DecisionPending
	req.DSPCode = c.DSPCode

	record := &domain.AvailabilityRecord{}
	if err := c.do(ctx, http.MethodPost, "/api/disponibilites/disponibilites/create", req, record); err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteAvailability removes a record right away; deletes never ride a
// publish batch.
func (c *Client) DeleteAvailability(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/disponibilites/disponibilites/"+id.String(), nil, nil)
}

type publishResult struct {
	Outcomes []domain.DecisionOutcome `json:"outcomes"`
	Applied  int                      `json:"applied"`
	Failed   int                      `json:"failed"`
}

// PublishDecisions sends buffered accept/reject edits as one batch and
// returns the per-item outcomes. An empty batch issues no request at all.
func (c *Client) PublishDecisions(ctx context.Context, decisions []domain.DecisionUpdate) ([]domain.DecisionOutcome, error) {
	if len(decisions) == 0 {
		return []domain.DecisionOutcome{}, nil
	}

	body := struct {
		Decisions []domain.DecisionUpdate `json:"decisions"`
		DSPCode   string                  `json:"dsp_code"`
	}{
		Decisions: decisions,
		DSPCode:   c.DSPCode,
	}

	var result publishResult
	if err := c.do(ctx, http.MethodPost, "/api/disponibilites/updateDisponibilites", body, &result); err != nil {
		return nil, err
	}
	return result.Outcomes, nil
}
