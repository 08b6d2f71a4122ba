package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/shiftbook/internal/calendar"
	"github.com/UnknownOlympus/shiftbook/internal/models"
)

type dayCell struct {
	Day     time.Time
	Token   string
	InMonth bool
	IsToday bool
	Shifts  []models.ShiftEntry
}

type monthlyView struct {
	Year     int
	Month    int
	Token    string
	Prev     string
	Next     string
	Weekdays []string
	Weeks    [][]dayCell
	Shifts   []models.ShiftEntry // whole month, in start time order
}

// weekdayKeys are the column headers of the month grid, Sunday first.
var weekdayKeys = []string{
	"weekday.0", "weekday.1", "weekday.2", "weekday.3", "weekday.4", "weekday.5", "weekday.6",
}

type dailyView struct {
	Day    time.Time
	Year   int
	Month  int
	Date   int
	Token  string
	Prev   string
	Next   string
	Shifts []models.ShiftEntry
}

type addShiftForm struct {
	Year      int
	Month     int
	Date      int
	Token     string
	Employees []models.Employee
}

func (s *Server) showMonthlyShift(w http.ResponseWriter, r *http.Request) {
	today := s.today()
	month := calendar.MonthOrCurrent(r.PathValue("period"), today)

	done := s.observeQuery("shifts_between")
	entries, err := s.repo.GetShiftsBetween(r.Context(), month.First(), month.Last())
	done()
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to get shifts of %s: %w", month, err))
		return
	}

	byDay := make(map[string][]models.ShiftEntry)
	for _, entry := range entries {
		token := calendar.DayToken(entry.Day)
		byDay[token] = append(byDay[token], entry)
	}

	grid := month.Grid()
	weeks := make([][]dayCell, 0, len(grid))
	for _, week := range grid {
		cells := make([]dayCell, 0, len(week))
		for _, day := range week {
			token := calendar.DayToken(day)
			cells = append(cells, dayCell{
				Day:     day,
				Token:   token,
				InMonth: day.Month() == month.Month,
				IsToday: day.Equal(today),
				Shifts:  byDay[token],
			})
		}
		weeks = append(weeks, cells)
	}

	s.render(w, r, http.StatusOK, "monthly_shift", "page.monthly_shift", monthlyView{
		Year:     month.Year,
		Month:    int(month.Month),
		Token:    month.Token(),
		Prev:     month.Prev().Token(),
		Next:     month.Next().Token(),
		Weekdays: weekdayKeys,
		Weeks:    weeks,
		Shifts:   entries,
	})
}

func (s *Server) showDailyShift(w http.ResponseWriter, r *http.Request) {
	day := calendar.DayOrToday(r.PathValue("date"), s.today())

	done := s.observeQuery("shifts_by_day")
	entries, err := s.repo.GetShiftsByDay(r.Context(), day)
	done()
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to get shifts of %s: %w", calendar.DayToken(day), err))
		return
	}

	s.render(w, r, http.StatusOK, "daily_shift", "page.daily_shift", dailyView{
		Day:    day,
		Year:   day.Year(),
		Month:  int(day.Month()),
		Date:   day.Day(),
		Token:  calendar.DayToken(day),
		Prev:   calendar.DayToken(calendar.PrevDay(day)),
		Next:   calendar.DayToken(calendar.NextDay(day)),
		Shifts: entries,
	})
}

func (s *Server) addDailyShift(w http.ResponseWriter, r *http.Request) {
	day := calendar.DayOrToday(r.PathValue("date"), s.today())

	done := s.observeQuery("list_employees")
	employees, err := s.repo.ListEmployees(r.Context())
	done()
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to list employees: %w", err))
		return
	}

	s.render(w, r, http.StatusOK, "add_daily_shift", "page.add_daily_shift", addShiftForm{
		Year:      day.Year(),
		Month:     int(day.Month()),
		Date:      day.Day(),
		Token:     calendar.DayToken(day),
		Employees: employees,
	})
}

func (s *Server) addDailyShiftCommit(w http.ResponseWriter, r *http.Request) {
	shift, err := parseShiftForm(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	done := s.observeQuery("create_shift")
	err = s.repo.CreateShift(r.Context(), shift)
	done()
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to create shift: %w", err))
		return
	}

	s.metrics.ShiftsCreated.Inc()
	http.Redirect(w, r, "/show_daily_shift/"+calendar.DayToken(shift.Day), http.StatusFound)
}

func (s *Server) delDailyShift(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.failure(w, r, fmt.Errorf("%w: %w", errBadForm, err))
		return
	}
	day, err := calendar.ParseDay(r.PostForm.Get("date"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	employeeID := strings.TrimSpace(r.PostForm.Get("employee_id"))
	if employeeID == "" {
		s.failure(w, r, fmt.Errorf("%w: employee_id is required", errBadForm))
		return
	}

	done := s.observeQuery("delete_shift")
	err = s.repo.DeleteShift(r.Context(), day, employeeID)
	done()
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to delete shift: %w", err))
		return
	}

	http.Redirect(w, r, "/show_daily_shift/"+calendar.DayToken(day), http.StatusFound)
}

// parseShiftForm validates the add-shift form. Unlike navigation, a bad
// date here is rejected instead of replaced by today.
func parseShiftForm(r *http.Request) (models.Shift, error) {
	if err := r.ParseForm(); err != nil {
		return models.Shift{}, fmt.Errorf("%w: %w", errBadForm, err)
	}

	day, err := calendar.ParseDay(r.PostForm.Get("date"))
	if err != nil {
		return models.Shift{}, err
	}

	employeeID := strings.TrimSpace(r.PostForm.Get("employee"))
	if employeeID == "" {
		return models.Shift{}, fmt.Errorf("%w: employee is required", errBadForm)
	}

	start, err := parseClock(r, "start_time_hour", "start_time_minute")
	if err != nil {
		return models.Shift{}, err
	}
	end, err := parseClock(r, "end_time_hour", "end_time_minute")
	if err != nil {
		return models.Shift{}, err
	}

	return models.Shift{Day: day, EmployeeID: employeeID, Start: start, End: end}, nil
}

func parseClock(r *http.Request, hourField, minuteField string) (models.ClockTime, error) {
	hour, err := strconv.Atoi(strings.TrimSpace(r.PostForm.Get(hourField)))
	if err != nil {
		return models.ClockTime{}, fmt.Errorf("%w: %s: %w", errBadForm, hourField, err)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(r.PostForm.Get(minuteField)))
	if err != nil {
		return models.ClockTime{}, fmt.Errorf("%w: %s: %w", errBadForm, minuteField, err)
	}
	return models.NewClockTime(hour, minute)
}
