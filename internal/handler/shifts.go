package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
	"github.com/vaktplan-dev/roster-manager/backend/internal/timeutil"
)

func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := strconv.ParseInt(r.URL.Query().Get("schedule_id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusUnprocessableEntity, "schedule_id query parameter is required")
		return
	}

	if _, err := h.repository.GetScheduleForOrg(scheduleID, h.orgID(r)); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "schedule not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	shifts, err := h.repository.ListShifts(scheduleID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// optional from/to narrow the listing by shift start date, inclusive
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from != "" || to != "" {
		if from == "" || to == "" {
			h.errorResponse(w, r, http.StatusUnprocessableEntity, "from and to must be passed together")
			return
		}
		fromDate, toDate, err := timeutil.ParseDateRange(from, to)
		if err != nil {
			h.domainError(w, r, err)
			return
		}

		filtered := make([]*domain.Shift, 0, len(shifts))
		for _, shift := range shifts {
			day := time.Date(shift.StartAt.Year(), shift.StartAt.Month(), shift.StartAt.Day(), 0, 0, 0, 0, time.UTC)
			if !day.Before(fromDate) && !day.After(toDate) {
				filtered = append(filtered, shift)
			}
		}
		shifts = filtered
	}

	h.successResponse(w, r, "shifts fetched", shifts)
}

// CreateShift adds a manual shift. Manual shifts survive template
// regeneration.
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScheduleID         int64     `json:"schedule_id" validate:"required"`
		StartAt            time.Time `json:"start_at" validate:"required"`
		EndAt              time.Time `json:"end_at" validate:"required"`
		RequiredStaffCount int32     `json:"required_staff_count" validate:"required,gte=1"`
		LocationID         int64     `json:"location_id" validate:"required"`
		RoleID             int64     `json:"role_id" validate:"required"`
		Notes              *string   `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if !req.EndAt.After(req.StartAt) {
		h.errorResponse(w, r, http.StatusUnprocessableEntity, "end_at must be after start_at")
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

	if !h.structuralMutationAllowed(w, r, s) {
		return
	}

	if _, err := h.repository.GetLocationForOrg(req.LocationID, h.orgID(r)); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "location not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	if _, err := h.repository.GetJobRoleForOrg(req.RoleID, h.orgID(r)); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "job role not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	shift := &domain.Shift{
		ScheduleID:         req.ScheduleID,
		StartAt:            req.StartAt,
		EndAt:              req.EndAt,
		RequiredStaffCount: req.RequiredStaffCount,
		LocationID:         req.LocationID,
		RoleID:             req.RoleID,
		Notes:              req.Notes,
		Origin:             domain.ShiftOriginManual,
	}

	if err := h.repository.CreateShift(shift); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.bumpIfPublished(s)

	h.successResponse(w, r, "shift created", shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusUnprocessableEntity, "invalid shift id")
		return
	}

	shift, err := h.repository.GetShiftForOrg(id, h.orgID(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "shift not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	s, err := h.repository.GetScheduleForOrg(shift.ScheduleID, h.orgID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !h.structuralMutationAllowed(w, r, s) {
		return
	}

	var req struct {
		StartAt            *time.Time `json:"start_at"`
		EndAt              *time.Time `json:"end_at"`
		RequiredStaffCount *int32     `json:"required_staff_count" validate:"omitempty,gte=1"`
		LocationID         *int64     `json:"location_id"`
		RoleID             *int64     `json:"role_id"`
		Notes              *string    `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.StartAt != nil {
		shift.StartAt = *req.StartAt
	}
	if req.EndAt != nil {
		shift.EndAt = *req.EndAt
	}
	if !shift.EndAt.After(shift.StartAt) {
		h.errorResponse(w, r, http.StatusUnprocessableEntity, "end_at must be after start_at")
		return
	}
	if req.RequiredStaffCount != nil {
		shift.RequiredStaffCount = *req.RequiredStaffCount
	}
	if req.LocationID != nil {
		if _, err := h.repository.GetLocationForOrg(*req.LocationID, h.orgID(r)); err != nil {
			h.domainError(w, r, err)
			return
		}
		shift.LocationID = *req.LocationID
	}
	if req.RoleID != nil {
		if _, err := h.repository.GetJobRoleForOrg(*req.RoleID, h.orgID(r)); err != nil {
			h.domainError(w, r, err)
			return
		}
		shift.RoleID = *req.RoleID
	}
	if req.Notes != nil {
		shift.Notes = req.Notes
	}

	if err := h.repository.UpdateShift(shift); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.bumpIfPublished(s)

	h.successResponse(w, r, "shift updated", shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusUnprocessableEntity, "invalid shift id")
		return
	}

	shift, err := h.repository.GetShiftForOrg(id, h.orgID(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "shift not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	s, err := h.repository.GetScheduleForOrg(shift.ScheduleID, h.orgID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !h.structuralMutationAllowed(w, r, s) {
		return
	}

	if err := h.repository.DeleteShift(shift.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.bumpIfPublished(s)

	h.successResponse(w, r, "shift deleted", nil)
}
