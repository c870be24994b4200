package repository

import (
	"database/sql"
	"errors"

	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
)

func (r *Repository) ListLocations(orgID int64) ([]*domain.Location, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, organization_id, name
		FROM locations
		WHERE organization_id = $1
		ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := make([]*domain.Location, 0)
	for rows.Next() {
		loc := &domain.Location{}
		if err := rows.Scan(&loc.ID, &loc.OrganizationID, &loc.Name); err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return locations, nil
}

func (r *Repository) GetLocationForOrg(id, orgID int64) (*domain.Location, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	loc := &domain.Location{}
	query := `SELECT id, organization_id, name FROM locations WHERE id = $1 AND organization_id = $2`
	if err := r.dbpool.QueryRowContext(ctx, query, id, orgID).Scan(&loc.ID, &loc.OrganizationID, &loc.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return loc, nil
}

func (r *Repository) CreateLocation(loc *domain.Location) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO locations (organization_id, name)
		VALUES ($1, $2)
		RETURNING id
	`

	return r.dbpool.QueryRowContext(ctx, query, loc.OrganizationID, loc.Name).Scan(&loc.ID)
}

func (r *Repository) UpdateLocation(loc *domain.Location) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `UPDATE locations SET name = $1 WHERE id = $2`
	_, err := r.dbpool.ExecContext(ctx, query, loc.Name, loc.ID)
	return err
}

// DeleteLocation fails with a foreign-key violation while any template row
// or shift still references the location; the handler maps that to a
// user-facing conflict instead of orphaning shifts.
func (r *Repository) DeleteLocation(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id)
	return err
}
