package repository

import (
	"database/sql"
	"errors"

	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
)

func (r *Repository) ListJobRoles(orgID int64) ([]*domain.JobRole, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, organization_id, name, weekly_hours_cap
		FROM job_roles
		WHERE organization_id = $1
		ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := make([]*domain.JobRole, 0)
	for rows.Next() {
		role := &domain.JobRole{}
		if err := rows.Scan(&role.ID, &role.OrganizationID, &role.Name, &role.WeeklyHoursCap); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return roles, nil
}

func (r *Repository) GetJobRoleForOrg(id, orgID int64) (*domain.JobRole, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	role := &domain.JobRole{}
	query := `SELECT id, organization_id, name, weekly_hours_cap FROM job_roles WHERE id = $1 AND organization_id = $2`
	if err := r.dbpool.QueryRowContext(ctx, query, id, orgID).Scan(&role.ID, &role.OrganizationID, &role.Name, &role.WeeklyHoursCap); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return role, nil
}

func (r *Repository) CreateJobRole(role *domain.JobRole) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO job_roles (organization_id, name, weekly_hours_cap)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	return r.dbpool.QueryRowContext(ctx, query, role.OrganizationID, role.Name, role.WeeklyHoursCap).Scan(&role.ID)
}

func (r *Repository) UpdateJobRole(role *domain.JobRole) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `UPDATE job_roles SET name = $1, weekly_hours_cap = $2 WHERE id = $3`
	_, err := r.dbpool.ExecContext(ctx, query, role.Name, role.WeeklyHoursCap, role.ID)
	return err
}

// DeleteJobRole fails with a foreign-key violation while referenced, same
// as DeleteLocation.
func (r *Repository) DeleteJobRole(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, `DELETE FROM job_roles WHERE id = $1`, id)
	return err
}
