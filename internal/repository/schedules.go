package repository

import (
	"database/sql"
	"errors"

	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
)

const scheduleColumns = `
	id, organization_id, name,
	to_char(range_start, 'YYYY-MM-DD'),
	to_char(range_end, 'YYYY-MM-DD'),
	status, version, published_at, created_at
`

func scanSchedule(scanner interface{ Scan(...any) error }) (*domain.Schedule, error) {
	s := &domain.Schedule{}
	dst := []any{
		&s.ID, &s.OrganizationID, &s.Name, &s.RangeStart, &s.RangeEnd,
		&s.Status, &s.Version, &s.PublishedAt, &s.CreatedAt,
	}
	if err := scanner.Scan(dst...); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Repository) ListSchedules(orgID int64) ([]*domain.Schedule, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE organization_id = $1
		ORDER BY range_start DESC, id DESC
	`

	rows, err := r.dbpool.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *Repository) GetScheduleForOrg(id, orgID int64) (*domain.Schedule, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE id = $1 AND organization_id = $2
	`

	s, err := scanSchedule(r.dbpool.QueryRowContext(ctx, query, id, orgID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return s, nil
}

func (r *Repository) CreateSchedule(s *domain.Schedule) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO schedules (organization_id, name, range_start, range_end, status)
		VALUES ($1, $2, $3, $4, 'draft')
		RETURNING id, status, version, created_at
	`

	params := []any{s.OrganizationID, s.Name, s.RangeStart, s.RangeEnd}
	return r.dbpool.QueryRowContext(ctx, query, params...).Scan(&s.ID, &s.Status, &s.Version, &s.CreatedAt)
}

func (r *Repository) DeleteSchedule(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	return err
}

// PublishSchedule flips a draft schedule to published and bumps its
// version. The status guard in the WHERE clause makes concurrent publishes
// race-safe: the loser sees no row and reports the conflict.
func (r *Repository) PublishSchedule(s *domain.Schedule) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		UPDATE schedules
		SET status = 'published', published_at = now(), version = version + 1
		WHERE id = $1 AND status = 'draft'
		RETURNING status, version, published_at
	`

	if err := r.dbpool.QueryRowContext(ctx, query, s.ID).Scan(&s.Status, &s.Version, &s.PublishedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrScheduleLocked
		}
		return err
	}

	return nil
}

// BumpScheduleVersion increments the structural version counter after a
// post-publish mutation (only reachable when the publish freeze is off).
func (r *Repository) BumpScheduleVersion(scheduleID int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, `UPDATE schedules SET version = version + 1 WHERE id = $1 AND status = 'published'`, scheduleID)
	return err
}
