package repository

import (
	"context"
	"time"

	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
	"github.com/google/uuid"
)

func (r *Repository) GetAllEmployeesByDSP(dspCode string) ([]*domain.Employee, error) {
	query := `
		SELECT id, name, family_name, score_card, expo_push_token, created_at, version
		FROM employees
		WHERE dsp_code = $1
		ORDER BY created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, dspCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		e := &domain.Employee{DSPCode: dspCode}
		dst := []any{&e.ID, &e.Name, &e.FamilyName, &e.ScoreCard, &e.ExpoPushToken, &e.CreatedAt, &e.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *Repository) GetEmployeeByID(id uuid.UUID, dspCode string) (*domain.Employee, error) {
	query := `
		SELECT name, family_name, score_card, expo_push_token, created_at, version
		FROM employees
		WHERE id = $1 AND dsp_code = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	e := &domain.Employee{
		ID:      id,
		DSPCode: dspCode,
	}

	dst := []any{&e.Name, &e.FamilyName, &e.ScoreCard, &e.ExpoPushToken, &e.CreatedAt, &e.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id, dspCode).Scan(dst...); err != nil {
		return nil, err
	}

	return e, nil
}

func (r *Repository) CreateEmployee(e *domain.Employee) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	query := `
		INSERT INTO employees (id, name, family_name, score_card, expo_push_token, dsp_code)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, version
	`

	args := []any{e.ID, e.Name, e.FamilyName, e.ScoreCard, e.ExpoPushToken, e.DSPCode}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&e.CreatedAt, &e.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateEmployee(e *domain.Employee) error {
	query := `
		UPDATE employees
		SET
			name = $1,
			family_name = $2,
			score_card = $3,
			expo_push_token = $4,
			version = version + 1
		WHERE id = $5 AND dsp_code = $6 AND version = $7
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{e.Name, e.FamilyName, e.ScoreCard, e.ExpoPushToken, e.ID, e.DSPCode, e.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&e.CreatedAt, &e.Version); err != nil {
		return err
	}

	return nil
}
