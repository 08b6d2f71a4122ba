package models_test

import (
	"testing"
	"time"

	"github.com/UnknownOlympus/shiftbook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClockTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		hour    int
		minute  int
		wantErr bool
	}{
		{name: "midnight", hour: 0, minute: 0},
		{name: "last minute", hour: 23, minute: 59},
		{name: "hour too large", hour: 24, minute: 0, wantErr: true},
		{name: "negative hour", hour: -1, minute: 0, wantErr: true},
		{name: "minute too large", hour: 9, minute: 60, wantErr: true},
		{name: "negative minute", hour: 9, minute: -5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			clock, err := models.NewClockTime(tt.hour, tt.minute)
			if tt.wantErr {
				require.ErrorIs(t, err, models.ErrInvalidClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hour, clock.Hour)
			assert.Equal(t, tt.minute, clock.Minute)
		})
	}
}

func TestClockTimeConversions(t *testing.T) {
	t.Parallel()

	clock := models.ClockTime{Hour: 17, Minute: 5}
	assert.Equal(t, "17:05", clock.String())
	assert.Equal(t, 17*time.Hour+5*time.Minute, clock.SinceMidnight())
	assert.Equal(t, clock, models.ClockFromDuration(clock.SinceMidnight()))
}

func TestFormatEmployeeID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "000001", models.FormatEmployeeID(1))
	assert.Equal(t, "000008", models.FormatEmployeeID(8))
	assert.Equal(t, "123456", models.FormatEmployeeID(123456))
}
