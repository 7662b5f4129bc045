package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
)

// Employee and shift lists are read by every grid load, so they are cached
// per tenant with a short TTL and explicitly invalidated on mutation. A
// cache failure is never fatal: the database remains the source of truth.

func employeesCacheKey(dspCode string) string {
	return fmt.Sprintf("ref_employees_%s", dspCode)
}

func shiftsCacheKey(dspCode string) string {
	return fmt.Sprintf("ref_shifts_%s", dspCode)
}

func (h *Handler) referenceTTL() time.Duration {
	return time.Duration(h.config.Redis.ReferenceTTL) * time.Second
}

func (h *Handler) cacheCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
}

func (h *Handler) getEmployees(dspCode string) ([]*domain.Employee, error) {
	ctx, cancel := h.cacheCtx()
	defer cancel()

	if cached, err := h.redisClient.Get(ctx, employeesCacheKey(dspCode)).Result(); err == nil {
		employees := make([]*domain.Employee, 0)
		if err := json.Unmarshal([]byte(cached), &employees); err == nil {
			return employees, nil
		}
	} else if err != redis.Nil {
		slog.Warn("employee cache read failed", "dsp_code", dspCode, "error", err)
	}

	employees, err := h.repository.GetAllEmployeesByDSP(dspCode)
	if err != nil {
		return nil, err
	}

	if body, err := json.Marshal(employees); err == nil {
		if err := h.redisClient.Set(ctx, employeesCacheKey(dspCode), body, h.referenceTTL()).Err(); err != nil {
			slog.Warn("employee cache write failed", "dsp_code", dspCode, "error", err)
		}
	}

	return employees, nil
}

func (h *Handler) getShifts(dspCode string) ([]*domain.Shift, error) {
	ctx, cancel := h.cacheCtx()
	defer cancel()

	if cached, err := h.redisClient.Get(ctx, shiftsCacheKey(dspCode)).Result(); err == nil {
		shifts := make([]*domain.Shift, 0)
		if err := json.Unmarshal([]byte(cached), &shifts); err == nil {
			return shifts, nil
		}
	} else if err != redis.Nil {
		slog.Warn("shift cache read failed", "dsp_code", dspCode, "error", err)
	}

	shifts, err := h.repository.GetAllShiftsByDSP(dspCode)
	if err != nil {
		return nil, err
	}

	if body, err := json.Marshal(shifts); err == nil {
		if err := h.redisClient.Set(ctx, shiftsCacheKey(dspCode), body, h.referenceTTL()).Err(); err != nil {
			slog.Warn("shift cache write failed", "dsp_code", dspCode, "error", err)
		}
	}

	return shifts, nil
}

func (h *Handler) invalidateEmployees(dspCode string) {
	ctx, cancel := h.cacheCtx()
	defer cancel()

	if err := h.redisClient.Del(ctx, employeesCacheKey(dspCode)).Err(); err != nil {
		slog.Warn("employee cache invalidation failed", "dsp_code", dspCode, "error", err)
	}
}

func (h *Handler) invalidateShifts(dspCode string) {
	ctx, cancel := h.cacheCtx()
	defer cancel()

	if err := h.redisClient.Del(ctx, shiftsCacheKey(dspCode)).Err(); err != nil {
		slog.Warn("shift cache invalidation failed", "dsp_code", dspCode, "error", err)
	}
}
