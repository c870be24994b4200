package assigner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
	"github.com/vaktplan-dev/roster-manager/backend/internal/timeutil"
)

func ptr[T any](v T) *T { return &v }

func date(s string) time.Time {
	d, err := timeutil.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func at(day string, hour int) time.Time {
	return timeutil.At(date(day), time.Duration(hour)*time.Hour)
}

// mondayShift is 2026-01-05 (a Monday) 09:00-17:00.
func mondayShift(id int64, staff int32) *domain.Shift {
	return &domain.Shift{
		ID:                 id,
		ScheduleID:         1,
		StartAt:            at("2026-01-05", 9),
		EndAt:              at("2026-01-05", 17),
		RequiredStaffCount: staff,
		LocationID:         1,
		RoleID:             1,
		Origin:             domain.ShiftOriginTemplate,
	}
}

func snapshot(shifts []*domain.Shift, employees ...*domain.Employee) *Snapshot {
	return &Snapshot{
		Shifts:         shifts,
		Employees:      employees,
		Roles:          map[int64]*domain.JobRole{1: {ID: 1, Name: "Barista"}},
		Preferences:    map[int64][]*domain.Preference{},
		Unavailability: map[int64][]*domain.Unavailability{},
	}
}

func employees(n int) []*domain.Employee {
	out := make([]*domain.Employee, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, &domain.Employee{ID: int64(i), OrganizationID: 1, DisplayName: "E"})
	}
	return out
}

func TestUnavailabilityIsAlwaysHard(t *testing.T) {
	snap := snapshot([]*domain.Shift{mondayShift(1, 1)}, employees(1)...)
	snap.Unavailability[1] = []*domain.Unavailability{
		{EmployeeID: 1, StartAt: at("2026-01-05", 12), EndAt: at("2026-01-05", 13)},
	}

	eng := New(snap)
	verdict := eng.Evaluate(snap.Employees[0], snap.Shifts[0])
	assert.False(t, verdict.Eligible)
	assert.Equal(t, ReasonUnavailable, verdict.Reason)

	res := eng.AutoAssign(date("2026-01-05"), date("2026-01-05"), PolicyFillMissing)
	assert.Empty(t, res.Created)
	assert.Equal(t, 1, res.Summary.SkippedNoCandidates)
}

func TestUnavailabilityTouchingEdgeDoesNotBlock(t *testing.T) {
	snap := snapshot([]*domain.Shift{mondayShift(1, 1)}, employees(1)...)
	// absence ends exactly when the shift starts
	snap.Unavailability[1] = []*domain.Unavailability{
		{EmployeeID: 1, StartAt: at("2026-01-05", 7), EndAt: at("2026-01-05", 9)},
	}

	eng := New(snap)
	verdict := eng.Evaluate(snap.Employees[0], snap.Shifts[0])
	assert.True(t, verdict.Eligible)
}

func TestDoNotScheduleBlocksMatchingWeekday(t *testing.T) {
	snap := snapshot([]*domain.Shift{mondayShift(1, 1)}, employees(1)...)
	snap.Preferences[1] = []*domain.Preference{
		{EmployeeID: 1, Weekday: 0, StartTime: "08:00", EndTime: "18:00", DoNotSchedule: true},
	}

	eng := New(snap)
	verdict := eng.Evaluate(snap.Employees[0], snap.Shifts[0])
	assert.False(t, verdict.Eligible)
	assert.Equal(t, ReasonHardBlocked, verdict.Reason)

	res := eng.AutoAssign(date("2026-01-05"), date("2026-01-05"), PolicyFillMissing)
	assert.Equal(t, 1, res.Summary.SkippedNoCandidates)
	assert.Zero(t, res.Summary.Assigned)
}

func TestDoNotScheduleIgnoresOtherWeekdays(t *testing.T) {
	snap := snapshot([]*domain.Shift{mondayShift(1, 1)}, employees(1)...)
	snap.Preferences[1] = []*domain.Preference{
		{EmployeeID: 1, Weekday: 2, StartTime: "08:00", EndTime: "18:00", DoNotSchedule: true},
	}

	eng := New(snap)
	assert.True(t, eng.Evaluate(snap.Employees[0], snap.Shifts[0]).Eligible)
}

func TestDoNotScheduleRespectsActiveWindow(t *testing.T) {
	snap := snapshot([]*domain.Shift{mondayShift(1, 1)}, employees(1)...)
	snap.Preferences[1] = []*domain.Preference{
		{
			EmployeeID: 1, Weekday: 0, StartTime: "08:00", EndTime: "18:00",
			DoNotSchedule: true,
			ActiveStart:   ptr("2026-02-01"), ActiveEnd: ptr("2026-02-28"),
		},
	}

	eng := New(snap)
	// shift is in January, block only active in February
	assert.True(t, eng.Evaluate(snap.Employees[0], snap.Shifts[0]).Eligible)
}

func TestDoubleBookingPrevented(t *testing.T) {
	overlapping := &domain.Shift{
		ID: 2, ScheduleID: 1,
		StartAt: at("2026-01-05", 12), EndAt: at("2026-01-05", 20),
		RequiredStaffCount: 1, LocationID: 1, RoleID: 1,
	}
	snap := snapshot([]*domain.Shift{mondayShift(1, 1), overlapping}, employees(1)...)
	snap.Assignments = []*domain.ShiftAssignment{{ShiftID: 1, EmployeeID: 1}}

	eng := New(snap)
	verdict := eng.Evaluate(snap.Employees[0], overlapping)
	assert.False(t, verdict.Eligible)
	assert.Equal(t, ReasonAlreadyAssignedOverlapping, verdict.Reason)
}

func TestBackToBackShiftsAllowed(t *testing.T) {
	next := &domain.Shift{
		ID: 2, ScheduleID: 1,
		StartAt: at("2026-01-05", 17), EndAt: at("2026-01-05", 21),
		RequiredStaffCount: 1, LocationID: 1, RoleID: 1,
	}
	snap := snapshot([]*domain.Shift{mondayShift(1, 1), next}, employees(1)...)
	snap.Assignments = []*domain.ShiftAssignment{{ShiftID: 1, EmployeeID: 1}}

	eng := New(snap)
	assert.True(t, eng.Evaluate(snap.Employees[0], next).Eligible)
}

func TestWeightRankingAndIDTieBreak(t *testing.T) {
	snap := snapshot([]*domain.Shift{mondayShift(1, 2)}, employees(3)...)
	snap.Preferences[3] = []*domain.Preference{
		{EmployeeID: 3, Weekday: 0, StartTime: "09:00", EndTime: "17:00", Weight: ptr(int32(5))},
	}

	eng := New(snap)
	res := eng.AutoAssign(date("2026-01-05"), date("2026-01-05"), PolicyFillMissing)

	require.Len(t, res.Created, 2)
	// highest weight first, then lowest id among the score-0 rest
	assert.Equal(t, int64(3), res.Created[0].EmployeeID)
	assert.Equal(t, int64(1), res.Created[1].EmployeeID)
	assert.Equal(t, 2, res.Summary.Assigned)
}

func TestMaxWeightWinsAcrossOverlappingPreferences(t *testing.T) {
	snap := snapshot([]*domain.Shift{mondayShift(1, 1)}, employees(1)...)
	snap.Preferences[1] = []*domain.Preference{
		{EmployeeID: 1, Weekday: 0, StartTime: "09:00", EndTime: "12:00", Weight: ptr(int32(2))},
		{EmployeeID: 1, Weekday: 0, StartTime: "10:00", EndTime: "17:00", Weight: ptr(int32(4))},
	}

	eng := New(snap)
	verdict := eng.Evaluate(snap.Employees[0], snap.Shifts[0])
	require.True(t, verdict.Eligible)
	assert.Equal(t, int32(4), verdict.Score)
}

func TestCapacityNeverExceeded(t *testing.T) {
	snap := snapshot([]*domain.Shift{mondayShift(1, 2)}, employees(5)...)

	eng := New(snap)
	res := eng.AutoAssign(date("2026-01-05"), date("2026-01-05"), PolicyFillMissing)

	assert.Len(t, res.Created, 2)
	assert.Equal(t, 2, res.Summary.Assigned)
}

func TestFillMissingTopsUpAndKeepsExisting(t *testing.T) {
	snap := snapshot([]*domain.Shift{mondayShift(1, 2)}, employees(3)...)
	snap.Assignments = []*domain.ShiftAssignment{{ShiftID: 1, EmployeeID: 2}}

	eng := New(snap)
	res := eng.AutoAssign(date("2026-01-05"), date("2026-01-05"), PolicyFillMissing)

	require.Len(t, res.Created, 1)
	assert.Equal(t, int64(1), res.Created[0].EmployeeID)
	assert.Empty(t, res.ClearedShiftIDs)
	assert.Equal(t, 1, res.Summary.Assigned)
}

func TestFillMissingSkipsFullShift(t *testing.T) {
	snap := snapshot([]*domain.Shift{mondayShift(1, 1)}, employees(2)...)
	snap.Assignments = []*domain.ShiftAssignment{{ShiftID: 1, EmployeeID: 2}}

	eng := New(snap)
	res := eng.AutoAssign(date("2026-01-05"), date("2026-01-05"), PolicyFillMissing)

	assert.Empty(t, res.Created)
	assert.Equal(t, 1, res.Summary.SkippedFull)
	assert.Zero(t, res.Summary.Assigned)
}

func TestReassignAllClearsAndRefills(t *testing.T) {
	snap := snapshot([]*domain.Shift{mondayShift(1, 1)}, employees(2)...)
	// employee 2 holds the slot, but employee 1 wins on id once cleared
	snap.Assignments = []*domain.ShiftAssignment{{ShiftID: 1, EmployeeID: 2}}

	eng := New(snap)
	res := eng.AutoAssign(date("2026-01-05"), date("2026-01-05"), PolicyReassignAll)

	assert.Equal(t, []int64{1}, res.ClearedShiftIDs)
	require.Len(t, res.Created, 1)
	assert.Equal(t, int64(1), res.Created[0].EmployeeID)
}

func TestPartialFillStillCountsPlacements(t *testing.T) {
	snap := snapshot([]*domain.Shift{mondayShift(1, 3)}, employees(2)...)

	eng := New(snap)
	res := eng.AutoAssign(date("2026-01-05"), date("2026-01-05"), PolicyFillMissing)

	assert.Equal(t, 2, res.Summary.Assigned)
	assert.Zero(t, res.Summary.SkippedNoCandidates)
	assert.Len(t, res.Created, 2)
}

func TestShiftsOutsideWindowUntouched(t *testing.T) {
	later := mondayShift(2, 1)
	later.StartAt = at("2026-01-12", 9)
	later.EndAt = at("2026-01-12", 17)

	snap := snapshot([]*domain.Shift{mondayShift(1, 1), later}, employees(2)...)

	eng := New(snap)
	res := eng.AutoAssign(date("2026-01-05"), date("2026-01-05"), PolicyReassignAll)

	require.Len(t, res.Created, 1)
	assert.Equal(t, int64(1), res.Created[0].ShiftID)
}

func TestWeeklyCapExcludesCandidate(t *testing.T) {
	first := mondayShift(1, 1)
	second := &domain.Shift{
		ID: 2, ScheduleID: 1,
		StartAt: at("2026-01-06", 9), EndAt: at("2026-01-06", 17),
		RequiredStaffCount: 1, LocationID: 1, RoleID: 1,
	}
	snap := snapshot([]*domain.Shift{first, second}, employees(1)...)
	snap.Roles[1].WeeklyHoursCap = ptr(int32(10)) // two 8h shifts exceed it
	snap.Assignments = []*domain.ShiftAssignment{{ShiftID: 1, EmployeeID: 1}}

	eng := New(snap)
	verdict := eng.Evaluate(snap.Employees[0], second)
	assert.False(t, verdict.Eligible)
	assert.Equal(t, ReasonWeeklyCapExceeded, verdict.Reason)
}

func TestDeterministicAcrossRuns(t *testing.T) {
	build := func() *Snapshot {
		shifts := []*domain.Shift{mondayShift(1, 2), mondayShift(2, 1)}
		shifts[1].StartAt = at("2026-01-06", 9)
		shifts[1].EndAt = at("2026-01-06", 17)
		snap := snapshot(shifts, employees(4)...)
		snap.Preferences[2] = []*domain.Preference{
			{EmployeeID: 2, Weekday: 0, StartTime: "09:00", EndTime: "17:00", Weight: ptr(int32(3))},
		}
		snap.Preferences[4] = []*domain.Preference{
			{EmployeeID: 4, Weekday: 1, StartTime: "09:00", EndTime: "17:00", Weight: ptr(int32(5))},
		}
		return snap
	}

	first := New(build()).AutoAssign(date("2026-01-05"), date("2026-01-06"), PolicyReassignAll)
	second := New(build()).AutoAssign(date("2026-01-05"), date("2026-01-06"), PolicyReassignAll)

	assert.Equal(t, first, second)
}

// A dry run and a real run are the same computation; only persistence
// differs. Running the engine twice over the same snapshot must yield the
// same summary the caller would have committed.
func TestDryRunParity(t *testing.T) {
	build := func() *Snapshot {
		snap := snapshot([]*domain.Shift{mondayShift(1, 2)}, employees(3)...)
		snap.Assignments = []*domain.ShiftAssignment{{ShiftID: 1, EmployeeID: 3}}
		return snap
	}

	preview := New(build()).AutoAssign(date("2026-01-05"), date("2026-01-05"), PolicyFillMissing)
	commit := New(build()).AutoAssign(date("2026-01-05"), date("2026-01-05"), PolicyFillMissing)

	assert.Equal(t, preview.Summary, commit.Summary)
	assert.Equal(t, preview.Created, commit.Created)
}
