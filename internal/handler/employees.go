package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
)

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repository.ListEmployees(h.orgID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "employees fetched", employees)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeCtx).(*domain.Employee)

	h.successResponse(w, r, "employee fetched", emp)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DisplayName string `json:"display_name" validate:"required"`
		Email       string `json:"email" validate:"required,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	emp := &domain.Employee{
		OrganizationID: h.orgID(r),
		DisplayName:    req.DisplayName,
		Email:          req.Email,
	}

	if err := h.repository.CreateEmployee(emp); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "employees_organization_id_email_key":
				h.errorResponse(w, r, http.StatusConflict, "an employee with this email already exists")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "employee created", emp)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeCtx).(*domain.Employee)

	var req struct {
		DisplayName *string `json:"display_name"`
		Email       *string `json:"email" validate:"omitempty,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.DisplayName != nil {
		emp.DisplayName = *req.DisplayName
	}
	if req.Email != nil {
		emp.Email = *req.Email
	}

	if err := h.repository.UpdateEmployee(emp); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusConflict, "employee was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "employee updated", emp)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeCtx).(*domain.Employee)

	if err := h.repository.DeleteEmployee(emp.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "employee deleted", nil)
}
