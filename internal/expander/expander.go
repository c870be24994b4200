// Package expander projects a schedule's weekly template over a date range,
// producing the dated shifts the range should contain. It is pure: handlers
// load the template, call Expand, and hand the result to the repository,
// which swaps the generated shifts inside one transaction.
package expander

import (
	"time"

	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
	"github.com/vaktplan-dev/roster-manager/backend/internal/timeutil"
)

// PlannedShift is one shift the expander wants to exist. IDs are assigned
// by the store on insert.
type PlannedShift struct {
	StartAt            time.Time
	EndAt              time.Time
	RequiredStaffCount int32
	LocationID         int64
	RoleID             int64
	Notes              *string
}

// ValidateRows rejects a template that is not ready for expansion: rows
// with an unset location or role, weekdays outside 0..6, unparsable clock
// values, or windows that do not end after they start. Overnight windows
// (end at or before start) are not supported.
func ValidateRows(rows []*domain.WeeklyTemplateRow) error {
	for _, row := range rows {
		switch {
		case row.LocationID == nil && row.RoleID == nil:
			return &domain.IncompleteTemplateError{RowID: row.ID, Weekday: row.Weekday, Missing: "location and role"}
		case row.LocationID == nil:
			return &domain.IncompleteTemplateError{RowID: row.ID, Weekday: row.Weekday, Missing: "location"}
		case row.RoleID == nil:
			return &domain.IncompleteTemplateError{RowID: row.ID, Weekday: row.Weekday, Missing: "role"}
		}

		if row.Weekday < 0 || row.Weekday > 6 {
			return &domain.InvalidTemplateRowError{RowID: row.ID, Weekday: row.Weekday, Reason: "weekday must be between 0 and 6"}
		}
		if row.RequiredStaffCount < 1 {
			return &domain.InvalidTemplateRowError{RowID: row.ID, Weekday: row.Weekday, Reason: "required_staff_count must be at least 1"}
		}

		start, err := timeutil.ParseClock(row.StartTime)
		if err != nil {
			return &domain.InvalidTemplateRowError{RowID: row.ID, Weekday: row.Weekday, Reason: err.Error()}
		}
		end, err := timeutil.ParseClock(row.EndTime)
		if err != nil {
			return &domain.InvalidTemplateRowError{RowID: row.ID, Weekday: row.Weekday, Reason: err.Error()}
		}
		if end <= start {
			return &domain.InvalidTemplateRowError{RowID: row.ID, Weekday: row.Weekday, Reason: "end time must be after start time"}
		}
	}

	return nil
}

// Expand materializes one shift per (day in range, template row on that
// day's weekday). The range is inclusive on both ends. Output order is by
// day, then by the incoming row order, so identical inputs always expand
// identically.
func Expand(rows []*domain.WeeklyTemplateRow, startDate, endDate time.Time) ([]PlannedShift, error) {
	if err := ValidateRows(rows); err != nil {
		return nil, err
	}

	byWeekday := make(map[int][]*domain.WeeklyTemplateRow)
	for _, row := range rows {
		byWeekday[row.Weekday] = append(byWeekday[row.Weekday], row)
	}

	planned := make([]PlannedShift, 0)
	for _, day := range timeutil.DaysInRange(startDate, endDate) {
		for _, row := range byWeekday[timeutil.WeekdayOf(day)] {
			// ValidateRows already proved these parse
			startClock, _ := timeutil.ParseClock(row.StartTime)
			endClock, _ := timeutil.ParseClock(row.EndTime)

			planned = append(planned, PlannedShift{
				StartAt:            timeutil.At(day, startClock),
				EndAt:              timeutil.At(day, endClock),
				RequiredStaffCount: row.RequiredStaffCount,
				LocationID:         *row.LocationID,
				RoleID:             *row.RoleID,
				Notes:              row.Notes,
			})
		}
	}

	return planned, nil
}
