package expander

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
	"github.com/vaktplan-dev/roster-manager/backend/internal/timeutil"
)

func ptr[T any](v T) *T { return &v }

func mondayRow() *domain.WeeklyTemplateRow {
	return &domain.WeeklyTemplateRow{
		ID:                 1,
		ScheduleID:         1,
		Weekday:            0,
		StartTime:          "09:00",
		EndTime:            "17:00",
		RequiredStaffCount: 2,
		LocationID:         ptr(int64(1)),
		RoleID:             ptr(int64(1)),
	}
}

func TestExpandSingleMondayRow(t *testing.T) {
	start, end, err := timeutil.ParseDateRange("2026-01-01", "2026-01-07")
	require.NoError(t, err)

	planned, err := Expand([]*domain.WeeklyTemplateRow{mondayRow()}, start, end)
	require.NoError(t, err)

	// 2026-01-05 is the only Monday in the range
	require.Len(t, planned, 1)
	assert.Equal(t, "2026-01-05T09:00:00Z", planned[0].StartAt.Format("2006-01-02T15:04:05Z"))
	assert.Equal(t, "2026-01-05T17:00:00Z", planned[0].EndAt.Format("2006-01-02T15:04:05Z"))
	assert.Equal(t, int32(2), planned[0].RequiredStaffCount)
	assert.Equal(t, int64(1), planned[0].LocationID)
	assert.Equal(t, int64(1), planned[0].RoleID)
}

func TestExpandIsDeterministic(t *testing.T) {
	rows := []*domain.WeeklyTemplateRow{
		mondayRow(),
		{ID: 2, Weekday: 0, StartTime: "17:00", EndTime: "22:00", RequiredStaffCount: 1, LocationID: ptr(int64(2)), RoleID: ptr(int64(1))},
		{ID: 3, Weekday: 3, StartTime: "08:00", EndTime: "12:00", RequiredStaffCount: 1, LocationID: ptr(int64(1)), RoleID: ptr(int64(2))},
	}
	start, end, err := timeutil.ParseDateRange("2026-01-01", "2026-01-14")
	require.NoError(t, err)

	first, err := Expand(rows, start, end)
	require.NoError(t, err)
	second, err := Expand(rows, start, end)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// two Mondays x two rows + two Thursdays x one row
	assert.Len(t, first, 6)
}

func TestExpandCoversEveryDayOnce(t *testing.T) {
	rows := make([]*domain.WeeklyTemplateRow, 0, 7)
	for wd := 0; wd < 7; wd++ {
		rows = append(rows, &domain.WeeklyTemplateRow{
			ID:                 int64(wd + 1),
			Weekday:            wd,
			StartTime:          "10:00",
			EndTime:            "14:00",
			RequiredStaffCount: 1,
			LocationID:         ptr(int64(1)),
			RoleID:             ptr(int64(1)),
		})
	}
	start, end, err := timeutil.ParseDateRange("2026-02-01", "2026-02-28")
	require.NoError(t, err)

	planned, err := Expand(rows, start, end)
	require.NoError(t, err)
	assert.Len(t, planned, 28)
}

func TestValidateRowsIncompleteTemplate(t *testing.T) {
	row := mondayRow()
	row.RoleID = nil

	err := ValidateRows([]*domain.WeeklyTemplateRow{row})
	var incomplete *domain.IncompleteTemplateError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, int64(1), incomplete.RowID)
	assert.Equal(t, 0, incomplete.Weekday)
	assert.Equal(t, "role", incomplete.Missing)

	row.LocationID = nil
	err = ValidateRows([]*domain.WeeklyTemplateRow{row})
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, "location and role", incomplete.Missing)
}

func TestValidateRowsRejectsOvernightWindow(t *testing.T) {
	row := mondayRow()
	row.StartTime = "22:00"
	row.EndTime = "06:00"

	err := ValidateRows([]*domain.WeeklyTemplateRow{row})
	var invalid *domain.InvalidTemplateRowError
	require.True(t, errors.As(err, &invalid))
	assert.Contains(t, invalid.Reason, "end time must be after start time")
}

func TestValidateRowsRejectsZeroLengthWindow(t *testing.T) {
	row := mondayRow()
	row.EndTime = row.StartTime

	err := ValidateRows([]*domain.WeeklyTemplateRow{row})
	var invalid *domain.InvalidTemplateRowError
	require.True(t, errors.As(err, &invalid))
}

func TestValidateRowsRejectsBadWeekday(t *testing.T) {
	row := mondayRow()
	row.Weekday = 7

	err := ValidateRows([]*domain.WeeklyTemplateRow{row})
	var invalid *domain.InvalidTemplateRowError
	require.True(t, errors.As(err, &invalid))
	assert.Contains(t, invalid.Reason, "weekday")
}
