package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
	"github.com/vaktplan-dev/roster-manager/backend/internal/timeutil"
)

type preferencePayload struct {
	Weekday       int     `json:"weekday" validate:"gte=0,lte=6"`
	StartTime     string  `json:"start_time" validate:"required"`
	EndTime       string  `json:"end_time" validate:"required"`
	Weight        *int32  `json:"weight" validate:"omitempty,gte=0,lte=5"`
	DoNotSchedule bool    `json:"do_not_schedule"`
	ActiveStart   *string `json:"active_start"`
	ActiveEnd     *string `json:"active_end"`
	Notes         *string `json:"notes"`
}

// checkPreferencePayload enforces what struct tags cannot: a preference is
// either weighted or a hard block, its clocks parse (an end at or before
// the start wraps past midnight), and its active window is a valid range.
func checkPreferencePayload(req *preferencePayload) error {
	if (req.Weight != nil) == req.DoNotSchedule {
		return errors.New("exactly one of weight and do_not_schedule must be set")
	}

	start, err := timeutil.ParseClock(req.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start_time: %w", err)
	}
	end, err := timeutil.ParseClock(req.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end_time: %w", err)
	}
	if start == end {
		return errors.New("start_time and end_time must differ")
	}

	if req.ActiveStart != nil {
		if _, err := timeutil.ParseDate(*req.ActiveStart); err != nil {
			return fmt.Errorf("invalid active_start: %w", err)
		}
	}
	if req.ActiveEnd != nil {
		if _, err := timeutil.ParseDate(*req.ActiveEnd); err != nil {
			return fmt.Errorf("invalid active_end: %w", err)
		}
	}
	if req.ActiveStart != nil && req.ActiveEnd != nil {
		if _, _, err := timeutil.ParseDateRange(*req.ActiveStart, *req.ActiveEnd); err != nil {
			return err
		}
	}

	return nil
}

func (h *Handler) ListPreferences(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeCtx).(*domain.Employee)

	prefs, err := h.repository.PreferencesFor(emp.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "preferences fetched", prefs)
}

func (h *Handler) CreatePreference(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeCtx).(*domain.Employee)

	var req preferencePayload

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := checkPreferencePayload(&req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	p := &domain.Preference{
		EmployeeID:    emp.ID,
		Weekday:       req.Weekday,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Weight:        req.Weight,
		DoNotSchedule: req.DoNotSchedule,
		ActiveStart:   req.ActiveStart,
		ActiveEnd:     req.ActiveEnd,
		Notes:         req.Notes,
	}

	if err := h.repository.CreatePreference(p); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "preference created", p)
}

func (h *Handler) UpdatePreference(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeCtx).(*domain.Employee)

	prefID, err := strconv.ParseInt(chi.URLParam(r, "prefID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusUnprocessableEntity, "invalid preference id")
		return
	}

	p, err := h.repository.GetPreference(prefID, emp.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "preference not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// the patch replaces the whole window, so it carries the same shape as
	// a create
	var req preferencePayload

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := checkPreferencePayload(&req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	p.Weekday = req.Weekday
	p.StartTime = req.StartTime
	p.EndTime = req.EndTime
	p.Weight = req.Weight
	p.DoNotSchedule = req.DoNotSchedule
	p.ActiveStart = req.ActiveStart
	p.ActiveEnd = req.ActiveEnd
	p.Notes = req.Notes

	if err := h.repository.UpdatePreference(p); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "preference updated", p)
}

func (h *Handler) DeletePreference(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeCtx).(*domain.Employee)

	prefID, err := strconv.ParseInt(chi.URLParam(r, "prefID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusUnprocessableEntity, "invalid preference id")
		return
	}

	if _, err := h.repository.GetPreference(prefID, emp.ID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "preference not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.DeletePreference(prefID, emp.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "preference deleted", nil)
}
