package repository

import (
	"database/sql"
	"errors"

	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
)

func (r *Repository) UnavailabilityFor(employeeID int64) ([]*domain.Unavailability, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, employee_id, start_at, end_at, reason
		FROM unavailability
		WHERE employee_id = $1
		ORDER BY start_at, id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.Unavailability, 0)
	for rows.Next() {
		u := &domain.Unavailability{}
		if err := rows.Scan(&u.ID, &u.EmployeeID, &u.StartAt, &u.EndAt, &u.Reason); err != nil {
			return nil, err
		}
		entries = append(entries, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *Repository) GetUnavailability(id, employeeID int64) (*domain.Unavailability, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	u := &domain.Unavailability{}
	query := `SELECT id, employee_id, start_at, end_at, reason FROM unavailability WHERE id = $1 AND employee_id = $2`
	if err := r.dbpool.QueryRowContext(ctx, query, id, employeeID).Scan(&u.ID, &u.EmployeeID, &u.StartAt, &u.EndAt, &u.Reason); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

func (r *Repository) CreateUnavailability(u *domain.Unavailability) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO unavailability (employee_id, start_at, end_at, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	return r.dbpool.QueryRowContext(ctx, query, u.EmployeeID, u.StartAt, u.EndAt, u.Reason).Scan(&u.ID)
}

func (r *Repository) DeleteUnavailability(id, employeeID int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, `DELETE FROM unavailability WHERE id = $1 AND employee_id = $2`, id, employeeID)
	return err
}
