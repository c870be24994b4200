package repository

import (
	"database/sql"
	"errors"

	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
)

func scanPreference(scanner interface{ Scan(...any) error }) (*domain.Preference, error) {
	p := &domain.Preference{}
	dst := []any{
		&p.ID, &p.EmployeeID, &p.Weekday, &p.StartTime, &p.EndTime,
		&p.Weight, &p.DoNotSchedule, &p.ActiveStart, &p.ActiveEnd, &p.Notes,
	}
	if err := scanner.Scan(dst...); err != nil {
		return nil, err
	}
	return p, nil
}

const preferenceColumns = `
	id, employee_id, weekday,
	to_char(start_time, 'HH24:MI:SS'),
	to_char(end_time, 'HH24:MI:SS'),
	weight, do_not_schedule,
	to_char(active_start, 'YYYY-MM-DD'),
	to_char(active_end, 'YYYY-MM-DD'),
	notes
`

func (r *Repository) PreferencesFor(employeeID int64) ([]*domain.Preference, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT ` + preferenceColumns + `
		FROM preferences
		WHERE employee_id = $1
		ORDER BY weekday, start_time, id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prefs := make([]*domain.Preference, 0)
	for rows.Next() {
		p, err := scanPreference(rows)
		if err != nil {
			return nil, err
		}
		prefs = append(prefs, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return prefs, nil
}

func (r *Repository) GetPreference(id, employeeID int64) (*domain.Preference, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT ` + preferenceColumns + `
		FROM preferences
		WHERE id = $1 AND employee_id = $2
	`

	p, err := scanPreference(r.dbpool.QueryRowContext(ctx, query, id, employeeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

func (r *Repository) CreatePreference(p *domain.Preference) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO preferences (employee_id, weekday, start_time, end_time, weight, do_not_schedule, active_start, active_end, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	params := []any{
		p.EmployeeID, p.Weekday, p.StartTime, p.EndTime,
		p.Weight, p.DoNotSchedule, p.ActiveStart, p.ActiveEnd, p.Notes,
	}
	return r.dbpool.QueryRowContext(ctx, query, params...).Scan(&p.ID)
}

func (r *Repository) UpdatePreference(p *domain.Preference) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		UPDATE preferences
		SET weekday = $1, start_time = $2, end_time = $3, weight = $4,
			do_not_schedule = $5, active_start = $6, active_end = $7, notes = $8
		WHERE id = $9 AND employee_id = $10
	`

	params := []any{
		p.Weekday, p.StartTime, p.EndTime, p.Weight,
		p.DoNotSchedule, p.ActiveStart, p.ActiveEnd, p.Notes,
		p.ID, p.EmployeeID,
	}
	_, err := r.dbpool.ExecContext(ctx, query, params...)
	return err
}

func (r *Repository) DeletePreference(id, employeeID int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, `DELETE FROM preferences WHERE id = $1 AND employee_id = $2`, id, employeeID)
	return err
}
