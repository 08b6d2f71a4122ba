package repository

import (
	"context"
	"fmt"
)

// Migrate creates the employees and shifts tables when they do not exist yet.
func Migrate(ctx context.Context, db Database) error {
	for _, stmt := range []string{CreateEmployeesTableSQL, CreateShiftsTableSQL} {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return nil
}
