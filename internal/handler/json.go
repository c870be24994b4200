package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
)

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("internal server error", "method", r.Method, "path", r.URL.Path, "error", err)
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, Response{
		Success: false,
		Message: msg,
		Data:    nil,
	})
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		h.errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	h.errorResponse(w, r, http.StatusUnprocessableEntity, validationErrors[0].Translate(h.translator))
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.writeJSON(w, r, http.StatusInternalServerError, Response{
		Success: false,
		Message: "internal server error",
		Data:    nil,
	})
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

// domainError maps the error taxonomy onto status codes: validation-shaped
// failures are 422, missing rows 404, lock conflicts 409, anything else 500.
func (h *Handler) domainError(w http.ResponseWriter, r *http.Request, err error) {
	var rangeErr *domain.InvalidRangeError
	var incompleteErr *domain.IncompleteTemplateError
	var rowErr *domain.InvalidTemplateRowError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.errorResponse(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrScheduleBusy):
		h.errorResponse(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrScheduleLocked):
		h.errorResponse(w, r, http.StatusConflict, err.Error())
	case errors.As(err, &rangeErr), errors.As(err, &incompleteErr), errors.As(err, &rowErr):
		h.errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		h.internalServerError(w, r, err)
	}
}
