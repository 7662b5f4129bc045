package repository

import (
	"context"
	"time"

	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
	"github.com/google/uuid"
)

func (r *Repository) GetAllShiftsByDSP(dspCode string) ([]*domain.Shift, error) {
	query := `
		SELECT id, name, start_time, end_time, color, created_at, version
		FROM shifts
		WHERE dsp_code = $1
		ORDER BY start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, dspCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		s := &domain.Shift{DSPCode: dspCode}
		dst := []any{&s.ID, &s.Name, &s.StartTime, &s.EndTime, &s.Color, &s.CreatedAt, &s.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) GetShiftByID(id uuid.UUID, dspCode string) (*domain.Shift, error) {
	query := `
		SELECT name, start_time, end_time, color, created_at, version
		FROM shifts
		WHERE id = $1 AND dsp_code = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	s := &domain.Shift{
		ID:      id,
		DSPCode: dspCode,
	}

	dst := []any{&s.Name, &s.StartTime, &s.EndTime, &s.Color, &s.CreatedAt, &s.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id, dspCode).Scan(dst...); err != nil {
		return nil, err
	}

	return s, nil
}

func (r *Repository) CreateShift(s *domain.Shift) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	query := `
		INSERT INTO shifts (id, name, start_time, end_time, color, dsp_code)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, version
	`

	args := []any{s.ID, s.Name, s.StartTime, s.EndTime, s.Color, s.DSPCode}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&s.CreatedAt, &s.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateShift(s *domain.Shift) error {
	query := `
		UPDATE shifts
		SET
			name = $1,
			start_time = $2,
			end_time = $3,
			color = $4,
			version = version + 1
		WHERE id = $5 AND dsp_code = $6 AND version = $7
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{s.Name, s.StartTime, s.EndTime, s.Color, s.ID, s.DSPCode, s.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&s.CreatedAt, &s.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShift(id uuid.UUID, dspCode string) error {
	query := `
		DELETE FROM shifts WHERE id = $1 AND dsp_code = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id, dspCode)
	if err != nil {
		return err
	}

	return nil
}
