// Package assigner fills shift staffing slots from the employee pool. The
// engine is deterministic and greedy: per shift it ranks the eligible
// candidates by preference score (employee id breaks ties) and assigns
// until the slot is full or candidates run out. It never persists anything
// itself; it returns the mutations for the caller to apply, which is also
// what makes dry runs free.
package assigner

import (
	"sort"
	"time"

	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
)

type Engine struct {
	snap *Snapshot

	// working state, mutated as the greedy loop commits picks
	held    map[int64][]*domain.Shift  // employee id -> shifts currently assigned
	onShift map[int64]map[int64]bool   // shift id -> employee ids assigned
	shifts  map[int64]*domain.Shift
}

func New(snap *Snapshot) *Engine {
	e := &Engine{
		snap:    snap,
		held:    make(map[int64][]*domain.Shift),
		onShift: make(map[int64]map[int64]bool),
		shifts:  make(map[int64]*domain.Shift, len(snap.Shifts)),
	}

	for _, s := range snap.Shifts {
		e.shifts[s.ID] = s
		e.onShift[s.ID] = make(map[int64]bool)
	}
	for _, a := range snap.Assignments {
		e.place(a.EmployeeID, a.ShiftID)
	}

	return e
}

func (e *Engine) place(employeeID, shiftID int64) {
	shift := e.shifts[shiftID]
	if shift == nil {
		return
	}
	e.held[employeeID] = append(e.held[employeeID], shift)
	e.onShift[shiftID][employeeID] = true
}

// AutoAssign runs one fill over the shifts whose start date falls inside
// [startDate, endDate]. The caller persists Result.ClearedShiftIDs /
// Result.Created afterwards (or discards them for a dry run).
func (e *Engine) AutoAssign(startDate, endDate time.Time, policy Policy) *Result {
	res := &Result{}

	inScope := make([]*domain.Shift, 0, len(e.snap.Shifts))
	for _, s := range e.snap.Shifts {
		day := time.Date(s.StartAt.Year(), s.StartAt.Month(), s.StartAt.Day(), 0, 0, 0, 0, time.UTC)
		if !day.Before(startDate) && !day.After(endDate) {
			inScope = append(inScope, s)
		}
	}
	sort.Slice(inScope, func(i, j int) bool {
		if !inScope[i].StartAt.Equal(inScope[j].StartAt) {
			return inScope[i].StartAt.Before(inScope[j].StartAt)
		}
		return inScope[i].ID < inScope[j].ID
	})

	if policy == PolicyReassignAll {
		for _, s := range inScope {
			for empID := range e.onShift[s.ID] {
				e.unplace(empID, s.ID)
			}
			res.ClearedShiftIDs = append(res.ClearedShiftIDs, s.ID)
		}
	}

	for _, shift := range inScope {
		needed := int(shift.RequiredStaffCount) - len(e.onShift[shift.ID])
		if needed <= 0 {
			res.Summary.SkippedFull++
			continue
		}

		placed := e.fillShift(shift, needed, res)
		res.Summary.Assigned += placed
		if placed == 0 {
			res.Summary.SkippedNoCandidates++
		}
	}

	return res
}

type candidate struct {
	employeeID int64
	score      int32
}

func (e *Engine) fillShift(shift *domain.Shift, needed int, res *Result) int {
	placed := 0
	for placed < needed {
		candidates := make([]candidate, 0, len(e.snap.Employees))
		for _, emp := range e.snap.Employees {
			if e.onShift[shift.ID][emp.ID] {
				continue
			}
			verdict := e.Evaluate(emp, shift)
			if !verdict.Eligible {
				continue
			}
			candidates = append(candidates, candidate{employeeID: emp.ID, score: verdict.Score})
		}

		if len(candidates) == 0 {
			break
		}

		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].score != candidates[j].score {
				return candidates[i].score > candidates[j].score
			}
			return candidates[i].employeeID < candidates[j].employeeID
		})

		pick := candidates[0]
		e.place(pick.employeeID, shift.ID)
		res.Created = append(res.Created, domain.ShiftAssignment{
			ShiftID:    shift.ID,
			EmployeeID: pick.employeeID,
		})
		placed++
	}

	return placed
}

func (e *Engine) unplace(employeeID, shiftID int64) {
	delete(e.onShift[shiftID], employeeID)
	kept := e.held[employeeID][:0]
	for _, s := range e.held[employeeID] {
		if s.ID != shiftID {
			kept = append(kept, s)
		}
	}
	e.held[employeeID] = kept
}

// ScopeShiftIDs returns the ids of the shifts a run over the given range
// would touch.
func (e *Engine) ScopeShiftIDs(startDate, endDate time.Time) []int64 {
	ids := make([]int64, 0)
	for _, s := range e.snap.Shifts {
		day := time.Date(s.StartAt.Year(), s.StartAt.Month(), s.StartAt.Day(), 0, 0, 0, 0, time.UTC)
		if !day.Before(startDate) && !day.After(endDate) {
			ids = append(ids, s.ID)
		}
	}
	return ids
}
