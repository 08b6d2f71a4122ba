package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/UnknownOlympus/shiftbook/internal/models"
	"github.com/jackc/pgx/v5"
)

// ListEmployees returns the whole directory ordered by employee ID.
func (r *Repository) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, err := r.db.Query(ctx, "SELECT employee_id, nickname FROM employees ORDER BY employee_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		var employee models.Employee
		if err = rows.Scan(&employee.ID, &employee.Nickname); err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employees = append(employees, employee)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return employees, nil
}

// GetEmployee looks up a single employee. It returns ErrEmployeeNotFound
// when the ID does not exist.
func (r *Repository) GetEmployee(ctx context.Context, employeeID string) (models.Employee, error) {
	var employee models.Employee

	err := r.db.QueryRow(ctx, "SELECT employee_id, nickname FROM employees WHERE employee_id = $1", employeeID).
		Scan(&employee.ID, &employee.Nickname)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Employee{}, fmt.Errorf("%w: %s", ErrEmployeeNotFound, employeeID)
		}
		return models.Employee{}, fmt.Errorf("failed to get employee %s: %w", employeeID, err)
	}

	return employee, nil
}

// CreateEmployee adds an employee with the next free identifier, which is the
// highest existing numeric ID plus one, zero padded to six digits.
//
// The table is locked for the duration of the transaction so that two
// concurrent callers cannot compute the same identifier.
func (r *Repository) CreateEmployee(ctx context.Context, nickname string) (models.Employee, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return models.Employee{}, ErrEmptyNickname
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err = tx.Exec(ctx, "LOCK TABLE employees IN SHARE ROW EXCLUSIVE MODE"); err != nil {
		return models.Employee{}, fmt.Errorf("failed to lock employees: %w", err)
	}

	var maxID int
	err = tx.QueryRow(ctx, "SELECT COALESCE(MAX(CAST(employee_id AS INTEGER)), 0) FROM employees").Scan(&maxID)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to get max employee id: %w", err)
	}

	employee := models.Employee{ID: models.FormatEmployeeID(maxID + 1), Nickname: nickname}
	_, err = tx.Exec(ctx,
		"INSERT INTO employees (employee_id, nickname) VALUES ($1, $2)",
		employee.ID,
		employee.Nickname,
	)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to insert employee: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Employee{}, fmt.Errorf("failed to commit employee: %w", err)
	}

	return employee, nil
}

// RenameEmployee replaces the nickname of an existing employee.
func (r *Repository) RenameEmployee(ctx context.Context, employeeID, nickname string) (models.Employee, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return models.Employee{}, ErrEmptyNickname
	}

	var employee models.Employee
	err := r.db.QueryRow(ctx,
		"UPDATE employees SET nickname = $2 WHERE employee_id = $1 RETURNING employee_id, nickname",
		employeeID,
		nickname,
	).Scan(&employee.ID, &employee.Nickname)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Employee{}, fmt.Errorf("%w: %s", ErrEmployeeNotFound, employeeID)
		}
		return models.Employee{}, fmt.Errorf("failed to rename employee %s: %w", employeeID, err)
	}

	return employee, nil
}

// DeleteEmployee removes the employee and every shift assigned to them in
// a single transaction. Nothing is deleted when the employee does not exist.
func (r *Repository) DeleteEmployee(ctx context.Context, employeeID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err = tx.Exec(ctx, "DELETE FROM shifts WHERE employee_id = $1", employeeID); err != nil {
		return fmt.Errorf("failed to delete shifts of employee %s: %w", employeeID, err)
	}

	cmdTag, err := tx.Exec(ctx, "DELETE FROM employees WHERE employee_id = $1", employeeID)
	if err != nil {
		return fmt.Errorf("failed to delete employee %s: %w", employeeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrEmployeeNotFound, employeeID)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit employee deletion: %w", err)
	}

	return nil
}
