package timeutil

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
)

func TestWeekdayOf(t *testing.T) {
	tests := []struct {
		date    string
		weekday int
	}{
		{"2026-01-05", 0}, // Monday
		{"2026-01-06", 1},
		{"2026-01-09", 4},
		{"2026-01-10", 5},
		{"2026-01-11", 6}, // Sunday
	}

	for _, tt := range tests {
		d, err := ParseDate(tt.date)
		require.NoError(t, err)
		assert.Equal(t, tt.weekday, WeekdayOf(d), tt.date)
	}
}

func TestParseClock(t *testing.T) {
	d, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9*time.Hour+30*time.Minute, d)

	d, err = ParseClock("17:00:30")
	require.NoError(t, err)
	assert.Equal(t, 17*time.Hour+30*time.Second, d)

	_, err = ParseClock("9am")
	assert.Error(t, err)
}

func TestParseDateRange(t *testing.T) {
	_, _, err := ParseDateRange("2026-01-07", "2026-01-01")
	var rangeErr *domain.InvalidRangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, "2026-01-07", rangeErr.Start)

	s, e, err := ParseDateRange("2026-01-01", "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, s, e)
}

func TestDaysInRange(t *testing.T) {
	s, e, err := ParseDateRange("2026-01-01", "2026-01-07")
	require.NoError(t, err)

	days := DaysInRange(s, e)
	require.Len(t, days, 7)
	assert.Equal(t, "2026-01-01", FormatDate(days[0]))
	assert.Equal(t, "2026-01-07", FormatDate(days[6]))

	days = DaysInRange(s, s)
	assert.Len(t, days, 1)
}

func TestOverlapsIsHalfOpen(t *testing.T) {
	day, _ := ParseDate("2026-01-05")
	nine := At(day, 9*time.Hour)
	noon := At(day, 12*time.Hour)
	five := At(day, 17*time.Hour)

	// back-to-back windows do not overlap
	assert.False(t, Overlaps(nine, noon, noon, five))
	assert.False(t, Overlaps(noon, five, nine, noon))

	assert.True(t, Overlaps(nine, five, noon, five))
	assert.True(t, Overlaps(nine, noon, nine, noon))
	assert.False(t, Overlaps(nine, nine, nine, five)) // empty interval
}

func TestWeekBounds(t *testing.T) {
	d, _ := ParseDate("2026-01-07") // a Wednesday
	start, end := WeekBounds(d)
	assert.Equal(t, "2026-01-05", FormatDate(start))
	assert.Equal(t, "2026-01-12", FormatDate(end))

	d, _ = ParseDate("2026-01-05") // Monday maps to itself
	start, _ = WeekBounds(d)
	assert.Equal(t, "2026-01-05", FormatDate(start))
}
