package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UnknownOlympus/shiftbook/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

// GetShiftsBetween returns the shifts whose day lies in the inclusive range
// [from, to], joined with the employee nickname and ordered by start time.
func (r *Repository) GetShiftsBetween(ctx context.Context, from, to time.Time) ([]models.ShiftEntry, error) {
	rows, err := r.db.Query(ctx, GetShiftsBetweenSQL, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying shifts between %s and %s: %w",
			from.Format(time.DateOnly), to.Format(time.DateOnly), err)
	}

	return collectShiftEntries(rows)
}

// GetShiftsByDay returns the shifts of a single day ordered by start time and employee ID.
func (r *Repository) GetShiftsByDay(ctx context.Context, day time.Time) ([]models.ShiftEntry, error) {
	rows, err := r.db.Query(ctx, GetShiftsByDaySQL, day)
	if err != nil {
		return nil, fmt.Errorf("error querying shifts of %s: %w", day.Format(time.DateOnly), err)
	}

	return collectShiftEntries(rows)
}

// CreateShift inserts a shift. It returns ErrShiftExists when the employee
// already works on that day; existing shifts are never overwritten.
func (r *Repository) CreateShift(ctx context.Context, shift models.Shift) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO shifts (day, employee_id, start_time, end_time) VALUES ($1, $2, $3, $4)",
		shift.Day,
		shift.EmployeeID,
		toPgTime(shift.Start),
		toPgTime(shift.End),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s on %s", ErrShiftExists, shift.EmployeeID, shift.Day.Format(time.DateOnly))
		}
		return fmt.Errorf("failed to insert shift: %w", err)
	}

	return nil
}

// DeleteShift removes the shift identified by day and employee. Deleting a
// shift that does not exist is not an error.
func (r *Repository) DeleteShift(ctx context.Context, day time.Time, employeeID string) error {
	_, err := r.db.Exec(ctx, "DELETE FROM shifts WHERE day = $1 AND employee_id = $2", day, employeeID)
	if err != nil {
		return fmt.Errorf("failed to delete shift of %s on %s: %w", employeeID, day.Format(time.DateOnly), err)
	}

	return nil
}

func collectShiftEntries(rows pgx.Rows) ([]models.ShiftEntry, error) {
	defer rows.Close()

	var entries []models.ShiftEntry
	for rows.Next() {
		var (
			entry      models.ShiftEntry
			start, end pgtype.Time
		)
		if err := rows.Scan(&entry.Day, &entry.EmployeeID, &entry.Nickname, &start, &end); err != nil {
			return nil, fmt.Errorf("error scanning shift row: %w", err)
		}
		entry.Start = fromPgTime(start)
		entry.End = fromPgTime(end)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift rows: %w", err)
	}

	return entries, nil
}

func toPgTime(c models.ClockTime) pgtype.Time {
	return pgtype.Time{Microseconds: c.SinceMidnight().Microseconds(), Valid: true}
}

func fromPgTime(t pgtype.Time) models.ClockTime {
	return models.ClockFromDuration(time.Duration(t.Microseconds) * time.Microsecond)
}
