package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
)

func (h *Handler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.repository.ListLocations(h.orgID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "locations fetched", locations)
}

func (h *Handler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	loc := &domain.Location{OrganizationID: h.orgID(r), Name: req.Name}

	if err := h.repository.CreateLocation(loc); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "locations_organization_id_name_key":
			h.errorResponse(w, r, http.StatusConflict, "a location with this name already exists")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "location created", loc)
}

func (h *Handler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusUnprocessableEntity, "invalid location id")
		return
	}

	loc, err := h.repository.GetLocationForOrg(id, h.orgID(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "location not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	var req struct {
		Name string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	loc.Name = req.Name

	if err := h.repository.UpdateLocation(loc); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "location updated", loc)
}

func (h *Handler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusUnprocessableEntity, "invalid location id")
		return
	}

	if _, err := h.repository.GetLocationForOrg(id, h.orgID(r)); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "location not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.DeleteLocation(id); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.Code == "23503":
			h.errorResponse(w, r, http.StatusConflict, "location is still referenced by template rows or shifts")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "location deleted", nil)
}
