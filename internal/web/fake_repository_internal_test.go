package web

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/UnknownOlympus/shiftbook/internal/models"
	"github.com/UnknownOlympus/shiftbook/internal/repository"
)

var errStoreDown = errors.New("store unavailable")

type shiftKey struct {
	day        string
	employeeID string
}

// fakeRepository keeps employees and shifts in memory with the same
// semantics as the PostgreSQL repository.
type fakeRepository struct {
	mu        sync.Mutex
	employees map[string]models.Employee
	shifts    map[shiftKey]models.Shift
	fail      bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		employees: make(map[string]models.Employee),
		shifts:    make(map[shiftKey]models.Shift),
	}
}

func (f *fakeRepository) ListEmployees(_ context.Context) ([]models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errStoreDown
	}

	employees := make([]models.Employee, 0, len(f.employees))
	for _, e := range f.employees {
		employees = append(employees, e)
	}
	slices.SortFunc(employees, func(a, b models.Employee) int { return cmp.Compare(a.ID, b.ID) })
	return employees, nil
}

func (f *fakeRepository) GetEmployee(_ context.Context, employeeID string) (models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return models.Employee{}, errStoreDown
	}

	e, ok := f.employees[employeeID]
	if !ok {
		return models.Employee{}, repository.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeRepository) CreateEmployee(_ context.Context, nickname string) (models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return models.Employee{}, errStoreDown
	}

	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return models.Employee{}, repository.ErrEmptyNickname
	}

	maxID := 0
	for id := range f.employees {
		if n, err := strconv.Atoi(id); err == nil && n > maxID {
			maxID = n
		}
	}
	e := models.Employee{ID: models.FormatEmployeeID(maxID + 1), Nickname: nickname}
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeRepository) RenameEmployee(_ context.Context, employeeID, nickname string) (models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return models.Employee{}, errStoreDown
	}

	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return models.Employee{}, repository.ErrEmptyNickname
	}
	e, ok := f.employees[employeeID]
	if !ok {
		return models.Employee{}, repository.ErrEmployeeNotFound
	}
	e.Nickname = nickname
	f.employees[employeeID] = e
	return e, nil
}

func (f *fakeRepository) DeleteEmployee(_ context.Context, employeeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errStoreDown
	}

	if _, ok := f.employees[employeeID]; !ok {
		return repository.ErrEmployeeNotFound
	}
	for key := range f.shifts {
		if key.employeeID == employeeID {
			delete(f.shifts, key)
		}
	}
	delete(f.employees, employeeID)
	return nil
}

func (f *fakeRepository) GetShiftsBetween(_ context.Context, from, to time.Time) ([]models.ShiftEntry, error) {
	return f.entries(func(day time.Time) bool {
		return !day.Before(from) && !day.After(to)
	})
}

func (f *fakeRepository) GetShiftsByDay(_ context.Context, day time.Time) ([]models.ShiftEntry, error) {
	return f.entries(func(d time.Time) bool { return d.Equal(day) })
}

func (f *fakeRepository) entries(match func(time.Time) bool) ([]models.ShiftEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errStoreDown
	}

	var entries []models.ShiftEntry
	for _, s := range f.shifts {
		e, ok := f.employees[s.EmployeeID]
		if !ok || !match(s.Day) {
			continue
		}
		entries = append(entries, models.ShiftEntry{
			Day:        s.Day,
			EmployeeID: s.EmployeeID,
			Nickname:   e.Nickname,
			Start:      s.Start,
			End:        s.End,
		})
	}
	slices.SortFunc(entries, func(a, b models.ShiftEntry) int {
		return cmp.Or(
			cmp.Compare(a.Start.SinceMidnight(), b.Start.SinceMidnight()),
			cmp.Compare(a.EmployeeID, b.EmployeeID),
		)
	})
	return entries, nil
}

func (f *fakeRepository) CreateShift(_ context.Context, shift models.Shift) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errStoreDown
	}

	key := shiftKey{day: shift.Day.Format(time.DateOnly), employeeID: shift.EmployeeID}
	if _, ok := f.shifts[key]; ok {
		return repository.ErrShiftExists
	}
	f.shifts[key] = shift
	return nil
}

func (f *fakeRepository) DeleteShift(_ context.Context, day time.Time, employeeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errStoreDown
	}

	delete(f.shifts, shiftKey{day: day.Format(time.DateOnly), employeeID: employeeID})
	return nil
}

func (f *fakeRepository) shiftCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.shifts)
}
