package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const columns = `id, booker_id, provider_id, date, canceled_at, created_at`

// uniqueViolation is the Postgres SQLSTATE raised by the active slot index.
const uniqueViolation = "23505"

// InsertAppointment stores a new active appointment. A unique violation on the
// active slot index is reported as Conflict rather than as an error, so the
// database stays the final arbiter of slot exclusivity.
func (a *Accessor) InsertAppointment(ctx context.Context, appt Appointment) (InsertOutcome, error) {
	query := `INSERT INTO appointments (` + columns + `) VALUES ($1, $2, $3, $4, NULL, $5)`
	_, err := a.db.ExecContext(ctx, query, appt.ID, appt.BookerID, appt.ProviderID, appt.Date.UTC(), appt.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return Conflict, nil
		}
		return 0, fmt.Errorf("exec context: %w", err)
	}
	return Created, nil
}

func (a *Accessor) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	query := `SELECT ` + columns + ` FROM appointments WHERE id = $1`
	appt, err := scanAppointment(a.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan: %w", err)
	}
	return &appt, nil
}

// FindActiveAt returns the active appointment holding the provider's slot at
// date, or nil when the slot is free.
func (a *Accessor) FindActiveAt(ctx context.Context, providerID uuid.UUID, date time.Time) (*Appointment, error) {
	query := `SELECT ` + columns + ` FROM appointments WHERE provider_id = $1 AND date = $2 AND canceled_at IS NULL`
	appt, err := scanAppointment(a.db.QueryRowContext(ctx, query, providerID, date.UTC()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan: %w", err)
	}
	return &appt, nil
}

// MarkCanceled sets canceled_at only if the record is still active. It returns
// nil without an error when another writer canceled it first.
func (a *Accessor) MarkCanceled(ctx context.Context, id uuid.UUID, at time.Time) (*Appointment, error) {
	query := `UPDATE appointments SET canceled_at = $2 WHERE id = $1 AND canceled_at IS NULL RETURNING ` + columns
	appt, err := scanAppointment(a.db.QueryRowContext(ctx, query, id, at.UTC()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan: %w", err)
	}
	return &appt, nil
}

// ListActiveByBooker pages through a booker's active appointments, earliest first.
func (a *Accessor) ListActiveByBooker(ctx context.Context, bookerID uuid.UUID, limit, offset int) ([]Appointment, error) {
	query := `SELECT ` + columns + ` FROM appointments WHERE booker_id = $1 AND canceled_at IS NULL ORDER BY date ASC LIMIT $2 OFFSET $3`
	rows, err := a.db.QueryContext(ctx, query, bookerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	appts := []Appointment{}
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		appts = append(appts, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return appts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAppointment(s scanner) (Appointment, error) {
	var (
		appt       Appointment
		canceledAt sql.NullTime
	)
	if err := s.Scan(&appt.ID, &appt.BookerID, &appt.ProviderID, &appt.Date, &canceledAt, &appt.CreatedAt); err != nil {
		return Appointment{}, err
	}
	appt.Date = appt.Date.UTC()
	appt.CreatedAt = appt.CreatedAt.UTC()
	if canceledAt.Valid {
		t := canceledAt.Time.UTC()
		appt.CanceledAt = &t
	}
	return appt, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
