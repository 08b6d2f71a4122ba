package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidClock is returned when an hour or minute is out of range.
var ErrInvalidClock = errors.New("invalid time of day")

// ClockTime is a time of day with minute precision. Seconds are always zero.
type ClockTime struct {
	Hour   int
	Minute int
}

// NewClockTime builds a ClockTime, rejecting hours outside [0,23] and minutes outside [0,59].
func NewClockTime(hour, minute int) (ClockTime, error) {
	if hour < 0 || hour > 23 {
		return ClockTime{}, fmt.Errorf("%w: hour %d must be in 0..23", ErrInvalidClock, hour)
	}
	if minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("%w: minute %d must be in 0..59", ErrInvalidClock, minute)
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

// ClockFromDuration converts an offset since midnight into a ClockTime.
func ClockFromDuration(d time.Duration) ClockTime {
	minutes := int(d / time.Minute)
	return ClockTime{Hour: minutes / 60, Minute: minutes % 60} //nolint:mnd // minutes per hour
}

// SinceMidnight returns the offset of the clock time from midnight.
func (c ClockTime) SinceMidnight() time.Duration {
	return time.Duration(c.Hour)*time.Hour + time.Duration(c.Minute)*time.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Shift is a single work assignment. Day and EmployeeID form its key.
type Shift struct {
	Day        time.Time // Calendar day, time component is ignored
	EmployeeID string    // Owning employee
	Start      ClockTime // Start of the shift
	End        ClockTime // End of the shift, not required to be after Start
}

// ShiftEntry is a shift joined with the owning employee's nickname,
// as shown in the monthly and daily views.
type ShiftEntry struct {
	Day        time.Time
	EmployeeID string
	Nickname   string
	Start      ClockTime
	End        ClockTime
}
