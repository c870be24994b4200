package handler

import (
	"errors"
	"net/http"

	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
)

func (h *Handler) GetMyOrganization(w http.ResponseWriter, r *http.Request) {
	org, err := h.repository.GetOrganizationByID(h.orgID(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "organization not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "organization fetched", org)
}
