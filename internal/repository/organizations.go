package repository

import (
	"database/sql"
	"errors"

	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
)

func (r *Repository) GetOrganizationByID(id int64) (*domain.Organization, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, name, timezone, created_at
		FROM organizations
		WHERE id = $1
	`

	org := &domain.Organization{}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&org.ID, &org.Name, &org.Timezone, &org.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return org, nil
}

func (r *Repository) CreateOrganization(org *domain.Organization) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO organizations (name, timezone)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	return r.dbpool.QueryRowContext(ctx, query, org.Name, org.Timezone).Scan(&org.ID, &org.CreatedAt)
}

func (r *Repository) GetOrganizationIDByName(name string) (int64, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	var id int64
	if err := r.dbpool.QueryRowContext(ctx, `SELECT id FROM organizations WHERE name = $1`, name).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}

	return id, nil
}
