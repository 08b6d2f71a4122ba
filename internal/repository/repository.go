package repository

import (
	"context"
	"errors"
	"time"

	"github.com/UnknownOlympus/shiftbook/internal/models"
)

var (
	// ErrEmployeeNotFound is returned when no employee has the requested ID.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrEmptyNickname is returned when a nickname is blank.
	ErrEmptyNickname = errors.New("nickname must not be empty")
	// ErrShiftExists is returned when the employee already has a shift on that day.
	ErrShiftExists = errors.New("shift already exists for this employee and day")
)

type Repository struct {
	db Database
}

// Interface defines the persistence operations of the shift book: the employee
// directory and the shift calendar. Handlers depend on it instead of the
// concrete Repository so they can be tested without a database.
type Interface interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployee(ctx context.Context, employeeID string) (models.Employee, error)
	CreateEmployee(ctx context.Context, nickname string) (models.Employee, error)
	RenameEmployee(ctx context.Context, employeeID, nickname string) (models.Employee, error)
	DeleteEmployee(ctx context.Context, employeeID string) error

	GetShiftsBetween(ctx context.Context, from, to time.Time) ([]models.ShiftEntry, error)
	GetShiftsByDay(ctx context.Context, day time.Time) ([]models.ShiftEntry, error)
	CreateShift(ctx context.Context, shift models.Shift) error
	DeleteShift(ctx context.Context, day time.Time, employeeID string) error
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database) *Repository {
	return &Repository{db: db}
}
