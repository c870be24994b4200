package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
)

func (h *Handler) ListUnavailability(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeCtx).(*domain.Employee)

	entries, err := h.repository.UnavailabilityFor(emp.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "unavailability fetched", entries)
}

func (h *Handler) CreateUnavailability(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeCtx).(*domain.Employee)

	var req struct {
		StartAt time.Time `json:"start_at" validate:"required"`
		EndAt   time.Time `json:"end_at" validate:"required"`
		Reason  *string   `json:"reason"`
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

	u := &domain.Unavailability{
		EmployeeID: emp.ID,
		StartAt:    req.StartAt,
		EndAt:      req.EndAt,
		Reason:     req.Reason,
	}

	if err := h.repository.CreateUnavailability(u); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "unavailability created", u)
}

func (h *Handler) DeleteUnavailability(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeCtx).(*domain.Employee)

	entryID, err := strconv.ParseInt(chi.URLParam(r, "entryID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusUnprocessableEntity, "invalid unavailability id")
		return
	}

	if _, err := h.repository.GetUnavailability(entryID, emp.ID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "unavailability entry not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.DeleteUnavailability(entryID, emp.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "unavailability deleted", nil)
}
