package repository

import (
	"database/sql"
	"errors"

	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
)

func (r *Repository) ListEmployees(orgID int64) ([]*domain.Employee, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, organization_id, display_name, email, created_at, version
		FROM employees
		WHERE organization_id = $1
		ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		emp := &domain.Employee{}
		if err := rows.Scan(&emp.ID, &emp.OrganizationID, &emp.DisplayName, &emp.Email, &emp.CreatedAt, &emp.Version); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *Repository) GetEmployeeForOrg(id, orgID int64) (*domain.Employee, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, organization_id, display_name, email, created_at, version
		FROM employees
		WHERE id = $1 AND organization_id = $2
	`

	emp := &domain.Employee{}
	if err := r.dbpool.QueryRowContext(ctx, query, id, orgID).Scan(&emp.ID, &emp.OrganizationID, &emp.DisplayName, &emp.Email, &emp.CreatedAt, &emp.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return emp, nil
}

func (r *Repository) CreateEmployee(emp *domain.Employee) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO employees (organization_id, display_name, email)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	return r.dbpool.QueryRowContext(ctx, query, emp.OrganizationID, emp.DisplayName, emp.Email).Scan(&emp.ID, &emp.CreatedAt, &emp.Version)
}

func (r *Repository) UpdateEmployee(emp *domain.Employee) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		UPDATE employees
		SET display_name = $1, email = $2, version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, emp.DisplayName, emp.Email, emp.ID, emp.Version).Scan(&emp.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	return nil
}

// DeleteEmployee removes the employee together with their preferences,
// unavailability and assignments (ON DELETE CASCADE on all three FKs), so
// nothing is left pointing at a missing employee.
func (r *Repository) DeleteEmployee(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	return err
}
