package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
	"github.com/vaktplan-dev/roster-manager/backend/internal/expander"
	"github.com/vaktplan-dev/roster-manager/backend/internal/timeutil"
)

type templateRowPayload struct {
	Weekday            int     `json:"weekday" validate:"gte=0,lte=6"`
	StartTime          string  `json:"start_time" validate:"required"`
	EndTime            string  `json:"end_time" validate:"required"`
	RequiredStaffCount int32   `json:"required_staff_count" validate:"required,gte=1"`
	LocationID         *int64  `json:"location_id"`
	RoleID             *int64  `json:"role_id"`
	Notes              *string `json:"notes"`
}

func (p *templateRowPayload) toRow(scheduleID int64) *domain.WeeklyTemplateRow {
	return &domain.WeeklyTemplateRow{
		ScheduleID:         scheduleID,
		Weekday:            p.Weekday,
		StartTime:          p.StartTime,
		EndTime:            p.EndTime,
		RequiredStaffCount: p.RequiredStaffCount,
		LocationID:         p.LocationID,
		RoleID:             p.RoleID,
		Notes:              p.Notes,
	}
}

// structuralMutationAllowed rejects edits to a published schedule while the
// publish freeze is on. Returns false after writing the response.
func (h *Handler) structuralMutationAllowed(w http.ResponseWriter, r *http.Request, s *domain.Schedule) bool {
	if h.config.Scheduling.LockPublished && s.Status == domain.ScheduleStatusPublished {
		h.domainError(w, r, domain.ErrScheduleLocked)
		return false
	}
	return true
}

func (h *Handler) bumpIfPublished(s *domain.Schedule) {
	if s.Status == domain.ScheduleStatusPublished {
		if err := h.repository.BumpScheduleVersion(s.ID); err != nil {
			slog.Error("failed to bump schedule version", "schedule_id", s.ID, "error", err)
		}
	}
}

func (h *Handler) GetWeeklyTemplate(w http.ResponseWriter, r *http.Request) {
	s := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	template, err := h.repository.GetWeeklyTemplate(s.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "weekly template fetched", template)
}

func (h *Handler) SaveWeeklyTemplate(w http.ResponseWriter, r *http.Request) {
	s := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	if !h.structuralMutationAllowed(w, r, s) {
		return
	}

	var req struct {
		Items []templateRowPayload `json:"items" validate:"dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	template := make([]*domain.WeeklyTemplateRow, 0, len(req.Items))
	for i := range req.Items {
		template = append(template, req.Items[i].toRow(s.ID))
	}

	// rows must be complete and well formed before they are stored, the
	// same rules expansion enforces
	if err := expander.ValidateRows(template); err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.repository.ReplaceWeeklyTemplate(s.ID, template); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.bumpIfPublished(s)

	h.successResponse(w, r, "weekly template saved", template)
}

func (h *Handler) UpdateWeeklyTemplateRow(w http.ResponseWriter, r *http.Request) {
	s := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	if !h.structuralMutationAllowed(w, r, s) {
		return
	}

	rowID, err := strconv.ParseInt(chi.URLParam(r, "rowID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusUnprocessableEntity, "invalid template row id")
		return
	}

	row, err := h.repository.GetWeeklyTemplateRow(s.ID, rowID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "template row not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	var req templateRowPayload

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	updated := req.toRow(s.ID)
	updated.ID = row.ID
	if err := expander.ValidateRows([]*domain.WeeklyTemplateRow{updated}); err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.repository.UpdateWeeklyTemplateRow(updated); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.bumpIfPublished(s)

	h.successResponse(w, r, "template row updated", updated)
}

func (h *Handler) DeleteWeeklyTemplateRow(w http.ResponseWriter, r *http.Request) {
	s := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	if !h.structuralMutationAllowed(w, r, s) {
		return
	}

	rowID, err := strconv.ParseInt(chi.URLParam(r, "rowID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusUnprocessableEntity, "invalid template row id")
		return
	}

	if err := h.repository.DeleteWeeklyTemplateRow(s.ID, rowID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "template row not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.bumpIfPublished(s)

	h.successResponse(w, r, "template row deleted", nil)
}

// GenerateShifts materializes the weekly template into shifts over a date
// range, defaulting to the schedule's own range. Existing template-generated
// shifts in the range are replaced; manual shifts are left alone.
func (h *Handler) GenerateShifts(w http.ResponseWriter, r *http.Request) {
	s := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	if !h.structuralMutationAllowed(w, r, s) {
		return
	}

	var req struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		Policy    string `json:"policy" validate:"omitempty,oneof=replace"`
	}

	// an empty body means "regenerate the whole schedule"
	if err := h.readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
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

	template, err := h.repository.GetWeeklyTemplate(s.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	planned, err := expander.Expand(template, startDate, endDate)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	counts, err := h.repository.RegenerateShifts(s.ID, req.StartDate, req.EndDate, planned)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.bumpIfPublished(s)

	h.successResponse(w, r, "shifts generated", counts)
}
