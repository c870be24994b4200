package assigner

import (
	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
)

type Policy string

const (
	// PolicyReassignAll clears every assignment on the in-scope shifts and
	// refills from zero.
	PolicyReassignAll Policy = "reassign_all"
	// PolicyFillMissing keeps existing assignments and only tops up shifts
	// still under their required staff count.
	PolicyFillMissing Policy = "fill_missing"
)

// HardReason says why an employee can never take a shift. Checks run in the
// order the constants are declared; the first hit wins.
type HardReason string

const (
	ReasonUnavailable                HardReason = "unavailable"
	ReasonHardBlocked                HardReason = "hard_blocked"
	ReasonAlreadyAssignedOverlapping HardReason = "already_assigned_overlapping"
	ReasonWeeklyCapExceeded          HardReason = "weekly_cap_exceeded"
)

// Eligibility is the evaluator's verdict for one (employee, shift) pair.
// Score is only meaningful when Eligible is true: it is the highest weight
// among the employee's matching preferences, 0 when none match.
type Eligibility struct {
	Eligible bool
	Reason   HardReason
	Score    int32
}

// Snapshot is everything one run reads, loaded once up front so a
// long-running fill never sees reference data move under it. Shifts must
// cover the whole schedule (not just the requested window) so cross-window
// double-booking is still caught, sorted by start time then id.
type Snapshot struct {
	Shifts         []*domain.Shift
	Employees      []*domain.Employee
	Roles          map[int64]*domain.JobRole
	Preferences    map[int64][]*domain.Preference    // keyed by employee id
	Unavailability map[int64][]*domain.Unavailability // keyed by employee id
	Assignments    []*domain.ShiftAssignment
}

// Summary is the caller-facing tally of one run.
type Summary struct {
	Assigned            int `json:"assigned"`
	SkippedFull         int `json:"skipped_full"`
	SkippedNoCandidates int `json:"skipped_no_candidates"`
}

// Result carries the summary plus the mutations a non-dry run should
// persist: delete assignments on ClearedShiftIDs, then insert Created, in
// one transaction.
type Result struct {
	Summary         Summary
	ClearedShiftIDs []int64
	Created         []domain.ShiftAssignment
}
