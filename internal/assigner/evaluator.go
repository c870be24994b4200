package assigner

import (
	"time"

	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
	"github.com/vaktplan-dev/roster-manager/backend/internal/timeutil"
)

// Evaluate computes hard eligibility and the soft preference score for one
// (employee, shift) pair against the engine's current working state. Pure
// with respect to the snapshot; working state only changes when the greedy
// loop commits a pick.
func (e *Engine) Evaluate(emp *domain.Employee, shift *domain.Shift) Eligibility {
	for _, u := range e.snap.Unavailability[emp.ID] {
		if timeutil.Overlaps(shift.StartAt, shift.EndAt, u.StartAt, u.EndAt) {
			return Eligibility{Reason: ReasonUnavailable}
		}
	}

	blocked, score := e.preferenceVerdict(emp.ID, shift)
	if blocked {
		return Eligibility{Reason: ReasonHardBlocked}
	}

	for _, held := range e.held[emp.ID] {
		if held.ID == shift.ID {
			continue
		}
		if timeutil.Overlaps(shift.StartAt, shift.EndAt, held.StartAt, held.EndAt) {
			return Eligibility{Reason: ReasonAlreadyAssignedOverlapping}
		}
	}

	if e.exceedsWeeklyCap(emp.ID, shift) {
		return Eligibility{Reason: ReasonWeeklyCapExceeded}
	}

	return Eligibility{Eligible: true, Score: score}
}

// preferenceVerdict walks the employee's preferences for the shift's
// weekday. A matching do-not-schedule window blocks outright; otherwise the
// highest matching weight wins (several windows may overlap the shift, the
// most enthusiastic one counts).
func (e *Engine) preferenceVerdict(employeeID int64, shift *domain.Shift) (blocked bool, score int32) {
	weekday := timeutil.WeekdayOf(shift.StartAt)
	shiftDate := time.Date(shift.StartAt.Year(), shift.StartAt.Month(), shift.StartAt.Day(), 0, 0, 0, 0, time.UTC)

	for _, p := range e.snap.Preferences[employeeID] {
		if p.Weekday != weekday {
			continue
		}
		if !activeOn(p, shiftDate) {
			continue
		}

		startClock, err := timeutil.ParseClock(p.StartTime)
		if err != nil {
			continue
		}
		endClock, err := timeutil.ParseClock(p.EndTime)
		if err != nil {
			continue
		}

		prefStart := timeutil.At(shiftDate, startClock)
		prefEnd := timeutil.At(shiftDate, endClock)
		if !prefEnd.After(prefStart) {
			// overnight window, e.g. 22:00-06:00
			prefEnd = prefEnd.AddDate(0, 0, 1)
		}

		if !timeutil.Overlaps(shift.StartAt, shift.EndAt, prefStart, prefEnd) {
			continue
		}

		if p.DoNotSchedule {
			return true, 0
		}
		if p.Weight != nil && *p.Weight > score {
			score = *p.Weight
		}
	}

	return false, score
}

func activeOn(p *domain.Preference, date time.Time) bool {
	if p.ActiveStart != nil {
		if start, err := timeutil.ParseDate(*p.ActiveStart); err == nil && date.Before(start) {
			return false
		}
	}
	if p.ActiveEnd != nil {
		if end, err := timeutil.ParseDate(*p.ActiveEnd); err == nil && date.After(end) {
			return false
		}
	}
	return true
}

// exceedsWeeklyCap checks the shift's role cap against the hours the
// employee already holds on that role in the shift's ISO week.
func (e *Engine) exceedsWeeklyCap(employeeID int64, shift *domain.Shift) bool {
	role := e.snap.Roles[shift.RoleID]
	if role == nil || role.WeeklyHoursCap == nil {
		return false
	}

	weekStart, weekEnd := timeutil.WeekBounds(shift.StartAt)

	held := 0.0
	for _, s := range e.held[employeeID] {
		if s.RoleID != shift.RoleID || s.ID == shift.ID {
			continue
		}
		if timeutil.Overlaps(s.StartAt, s.EndAt, weekStart, weekEnd) {
			held += s.EndAt.Sub(s.StartAt).Hours()
		}
	}

	return held+shift.EndAt.Sub(shift.StartAt).Hours() > float64(*role.WeeklyHoursCap)+1e-6
}
