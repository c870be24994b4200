package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
)

func (h *Handler) ListJobRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.repository.ListJobRoles(h.orgID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "job roles fetched", roles)
}

func (h *Handler) CreateJobRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string `json:"name" validate:"required"`
		WeeklyHoursCap *int32 `json:"weekly_hours_cap" validate:"omitempty,gte=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	role := &domain.JobRole{
		OrganizationID: h.orgID(r),
		Name:           req.Name,
		WeeklyHoursCap: req.WeeklyHoursCap,
	}

	if err := h.repository.CreateJobRole(role); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "job_roles_organization_id_name_key":
			h.errorResponse(w, r, http.StatusConflict, "a job role with this name already exists")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "job role created", role)
}

func (h *Handler) UpdateJobRole(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusUnprocessableEntity, "invalid job role id")
		return
	}

	role, err := h.repository.GetJobRoleForOrg(id, h.orgID(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "job role not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	var req struct {
		Name           *string `json:"name"`
		WeeklyHoursCap *int32  `json:"weekly_hours_cap" validate:"omitempty,gte=1"`
		ClearCap       bool    `json:"clear_cap"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		role.Name = *req.Name
	}
	if req.WeeklyHoursCap != nil {
		role.WeeklyHoursCap = req.WeeklyHoursCap
	}
	if req.ClearCap {
		role.WeeklyHoursCap = nil
	}

	if err := h.repository.UpdateJobRole(role); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "job role updated", role)
}

func (h *Handler) DeleteJobRole(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusUnprocessableEntity, "invalid job role id")
		return
	}

	if _, err := h.repository.GetJobRoleForOrg(id, h.orgID(r)); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "job role not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.DeleteJobRole(id); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.Code == "23503":
			h.errorResponse(w, r, http.StatusConflict, "job role is still referenced by template rows or shifts")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "job role deleted", nil)
}
