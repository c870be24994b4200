package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrScheduleBusy means another Generate or AutoAssign run holds the
	// schedule's run lock. Transient; the caller may retry.
	ErrScheduleBusy = errors.New("another run is already in progress for this schedule")

	// ErrScheduleLocked means a structural mutation was attempted on a
	// published schedule while the publish freeze is enabled.
	ErrScheduleLocked = errors.New("schedule is published and locked against changes")
)

// InvalidRangeError reports a date range whose start falls after its end.
type InvalidRangeError struct {
	Start string
	End   string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: start %s is after end %s", e.Start, e.End)
}

// IncompleteTemplateError names a template row that cannot be expanded or
// assigned because its location or role is still unset.
type IncompleteTemplateError struct {
	RowID   int64
	Weekday int
	Missing string // "location", "role" or "location and role"
}

func (e *IncompleteTemplateError) Error() string {
	return fmt.Sprintf("template row %d (weekday %d) is missing its %s", e.RowID, e.Weekday, e.Missing)
}

// InvalidTemplateRowError reports a malformed row, e.g. an end time at or
// before its start time. Overnight windows are not supported.
type InvalidTemplateRowError struct {
	RowID   int64
	Weekday int
	Reason  string
}

func (e *InvalidTemplateRowError) Error() string {
	return fmt.Sprintf("template row %d (weekday %d): %s", e.RowID, e.Weekday, e.Reason)
}
