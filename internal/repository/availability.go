package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
	"github.com/google/uuid"
)

func scanAvailabilityRows(rows *sql.Rows, dspCode string) ([]*domain.AvailabilityRecord, error) {
	records := make([]*domain.AvailabilityRecord, 0)
	for rows.Next() {
		rec := &domain.AvailabilityRecord{DSPCode: dspCode}
		var day time.Time
		dst := []any{&rec.ID, &rec.EmployeeID, &rec.ShiftID, &day, &rec.Decision, &rec.CreatedAt, &rec.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		rec.Day = domain.DayKeyOf(day)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *Repository) GetAllAvailabilityByDSP(dspCode string) ([]*domain.AvailabilityRecord, error) {
	query := `
		SELECT id, employee_id, shift_id, day, decision, created_at, version
		FROM availability_records
		WHERE dsp_code = $1
		ORDER BY day, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, dspCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAvailabilityRows(rows, dspCode)
}

func (r *Repository) GetAvailabilityByDSPBetween(dspCode string, from, to domain.DayKey) ([]*domain.AvailabilityRecord, error) {
	query := `
		SELECT id, employee_id, shift_id, day, decision, created_at, version
		FROM availability_records
		WHERE dsp_code = $1 AND day >= $2 AND day <= $3
		ORDER BY day, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, dspCode, from.String(), to.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAvailabilityRows(rows, dspCode)
}

func (r *Repository) GetAvailabilityRecordByID(id uuid.UUID, dspCode string) (*domain.AvailabilityRecord, error) {
	query := `
		SELECT employee_id, shift_id, day, decision, created_at, version
		FROM availability_records
		WHERE id = $1 AND dsp_code = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rec := &domain.AvailabilityRecord{
		ID:      id,
		DSPCode: dspCode,
	}

	var day time.Time
	dst := []any{&rec.EmployeeID, &rec.ShiftID, &day, &rec.Decision, &rec.CreatedAt, &rec.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id, dspCode).Scan(dst...); err != nil {
		return nil, err
	}
	rec.Day = domain.DayKeyOf(day)

	return rec, nil
}

func (r *Repository) CreateAvailabilityRecord(rec *domain.AvailabilityRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	query := `
		INSERT INTO availability_records (id, employee_id, shift_id, day, decision, dsp_code)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, version
	`

	args := []any{rec.ID, rec.EmployeeID, rec.ShiftID, rec.Day.String(), rec.Decision, rec.DSPCode}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&rec.CreatedAt, &rec.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteAvailabilityRecord(id uuid.UUID, dspCode string) error {
	query := `
		DELETE FROM availability_records WHERE id = $1 AND dsp_code = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, id, dspCode)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// BulkUpdateDecisions applies a publish batch best-effort: every item is
// applied in its own transaction and gets its own outcome, so one bad item
// never rolls back the rest of the batch. The decision state machine is
// enforced here: nothing ever moves back to pending.
func (r *Repository) BulkUpdateDecisions(dspCode string, updates []domain.DecisionUpdate) ([]domain.DecisionOutcome, error) {
	outcomes := make([]domain.DecisionOutcome, 0, len(updates))

	for _, upd := range updates {
		outcome := domain.DecisionOutcome{
			EmployeeID: upd.EmployeeID,
			Day:        upd.Day,
		}

		if err := r.applyDecisionUpdate(dspCode, upd); err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				outcome.Reason = "record not found"
			default:
				outcome.Reason = err.Error()
			}
		} else {
			outcome.Applied = true
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

func (r *Repository) applyDecisionUpdate(dspCode string, upd domain.DecisionUpdate) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		SELECT id, decision
		FROM availability_records
		WHERE employee_id = $1 AND day = $2 AND dsp_code = $3
		FOR UPDATE
	`

	var id uuid.UUID
	var current domain.Decision
	if err := tx.QueryRowContext(ctx, query, upd.EmployeeID, upd.Day.String(), dspCode).Scan(&id, &current); err != nil {
		return err
	}

	if err := domain.ValidDecisionTransition(current, upd.Status); err != nil {
		return err
	}

	query = `
		UPDATE availability_records
		SET decision = $1, version = version + 1
		WHERE id = $2
	`
	res, err := tx.ExecContext(ctx, query, upd.Status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("record %s disappeared during update", id)
	}

	return tx.Commit()
}
