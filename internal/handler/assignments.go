package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vaktplan-dev/roster-manager/backend/internal/assigner"
	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
	"github.com/vaktplan-dev/roster-manager/backend/internal/timeutil"
)

// AutoAssign runs the assignment engine over a date window of one schedule.
// With dry_run the computed plan is returned without touching the database.
func (h *Handler) AutoAssign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScheduleID int64  `json:"schedule_id" validate:"required"`
		StartDate  string `json:"start_date"`
		EndDate    string `json:"end_date"`
		Policy     string `json:"policy" validate:"required,oneof=reassign_all fill_missing"`
		DryRun     bool   `json:"dry_run"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	s, err := h.repository.GetScheduleForOrg(req.ScheduleID, h.orgID(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "schedule not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if req.StartDate == "" {
		req.StartDate = s.RangeStart
	}
	if req.EndDate == "" {
		req.EndDate = s.RangeEnd
	}

	startDate, endDate, err := timeutil.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.acquireRunLock(s.ID); err != nil {
		h.domainError(w, r, err)
		return
	}
	defer h.releaseRunLock(s.ID)

	snap, err := h.repository.LoadAssignmentSnapshot(s.ID, h.orgID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	eng := assigner.New(snap)
	inScope := eng.ScopeShiftIDs(startDate, endDate)
	res := eng.AutoAssign(startDate, endDate, assigner.Policy(req.Policy))

	if !req.DryRun {
		if err := h.repository.ApplyAssignmentPlan(res.ClearedShiftIDs, res.Created); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "auto-assignment finished", map[string]any{
		"summary":         res.Summary,
		"shifts_in_scope": len(inScope),
		"dry_run":         req.DryRun,
	})
}

// CreateAssignment is the manual override: it respects shift capacity but
// deliberately skips preference and unavailability checks, since the manager
// placing someone by hand is the final word.
func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShiftID    int64 `json:"shift_id" validate:"required"`
		EmployeeID int64 `json:"employee_id" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift, err := h.repository.GetShiftForOrg(req.ShiftID, h.orgID(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "shift not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	emp, err := h.repository.GetEmployeeForOrg(req.EmployeeID, h.orgID(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "employee not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	assignments, err := h.repository.ListScheduleAssignments(shift.ScheduleID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	onShift := 0
	for _, a := range assignments {
		if a.ShiftID == shift.ID {
			onShift++
		}
	}
	if onShift >= int(shift.RequiredStaffCount) {
		h.errorResponse(w, r, http.StatusConflict, "shift is already fully staffed")
		return
	}

	a := &domain.ShiftAssignment{
		ShiftID:      shift.ID,
		EmployeeID:   emp.ID,
		EmployeeName: emp.DisplayName,
	}

	if err := h.repository.CreateAssignment(a); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.Code == "23505":
			h.errorResponse(w, r, http.StatusConflict, "employee is already assigned to this shift")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "assignment created", a)
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	shiftID, err := strconv.ParseInt(chi.URLParam(r, "shiftID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusUnprocessableEntity, "invalid shift id")
		return
	}
	employeeID, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusUnprocessableEntity, "invalid employee id")
		return
	}

	if _, err := h.repository.GetShiftForOrg(shiftID, h.orgID(r)); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "shift not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.DeleteAssignment(shiftID, employeeID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "assignment not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "assignment deleted", nil)
}
