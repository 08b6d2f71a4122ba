// Package calendar holds the date arithmetic behind the monthly and daily
// shift views: period tokens, month ranges, neighbours and the month grid.
//
// Dates are represented as time.Time values at midnight UTC, which is how
// PostgreSQL DATE columns are scanned by pgx.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

const (
	monthLayout = "200601"
	dayLayout   = "20060102"
	daysInWeek  = 7
)

var (
	// ErrInvalidMonth is returned when a YYYYMM token is malformed or out of range.
	ErrInvalidMonth = errors.New("invalid month token")
	// ErrInvalidDay is returned when a YYYYMMDD token is not a real calendar date.
	ErrInvalidDay = errors.New("invalid day token")
)

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t, read in t's own location.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a compact YYYYMM token.
func ParseMonth(token string) (Month, error) {
	if len(token) != len(monthLayout) || !isDigits(token) {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, token)
	}
	year, _ := strconv.Atoi(token[:4])
	month, _ := strconv.Atoi(token[4:])
	if year < 1 || month < 1 || month > 12 {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, token)
	}

	return Month{Year: year, Month: time.Month(month)}, nil
}

// MonthOrCurrent parses token and falls back to the month of now when the
// token is missing or malformed.
func MonthOrCurrent(token string, now time.Time) Month {
	m, err := ParseMonth(token)
	if err != nil {
		return MonthOf(now)
	}
	return m
}

// First returns the first day of the month.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Last returns the last day of the month: one month after the first day, minus one day.
func (m Month) Last() time.Time {
	return m.First().AddDate(0, 1, -1)
}

// Prev returns the previous month, rolling over year boundaries.
func (m Month) Prev() Month {
	return MonthOf(m.First().AddDate(0, -1, 0))
}

// Next returns the following month, rolling over year boundaries.
func (m Month) Next() Month {
	return MonthOf(m.First().AddDate(0, 1, 0))
}

// Token renders the month as YYYYMM.
func (m Month) Token() string {
	return m.First().Format(monthLayout)
}

func (m Month) String() string {
	return m.First().Format("2006-01")
}

// Grid returns the weeks covering the month. Every week holds seven dates
// and starts on Sunday; days of the adjacent months pad the first and last week.
func (m Month) Grid() [][]time.Time {
	start := m.First()
	start = start.AddDate(0, 0, -int(start.Weekday()))
	end := m.Last()
	end = end.AddDate(0, 0, int(time.Saturday-end.Weekday()))

	var weeks [][]time.Time
	for day := start; !day.After(end); {
		week := make([]time.Time, 0, daysInWeek)
		for range daysInWeek {
			week = append(week, day)
			day = day.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}

	return weeks
}

// ParseDay parses a compact YYYYMMDD token. Dates that do not exist, such
// as February 30th, are rejected.
func ParseDay(token string) (time.Time, error) {
	if len(token) != len(dayLayout) || !isDigits(token) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDay, token)
	}
	day, err := time.Parse(dayLayout, token)
	if err != nil || day.Year() < 1 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDay, token)
	}

	return day, nil
}

// DayOrToday parses token and falls back to the date of now when the token
// is missing or malformed.
func DayOrToday(token string, now time.Time) time.Time {
	day, err := ParseDay(token)
	if err != nil {
		return Today(now)
	}
	return day
}

// Today returns the calendar date of now, read in now's location, as midnight UTC.
func Today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// PrevDay returns the day before day.
func PrevDay(day time.Time) time.Time {
	return day.AddDate(0, 0, -1)
}

// NextDay returns the day after day.
func NextDay(day time.Time) time.Time {
	return day.AddDate(0, 0, 1)
}

// DayToken renders day as YYYYMMDD.
func DayToken(day time.Time) string {
	return day.Format(dayLayout)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
