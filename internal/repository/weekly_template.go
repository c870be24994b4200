package repository

import (
	"database/sql"
	"errors"

	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
)

const templateRowColumns = `
	id, schedule_id, weekday,
	to_char(start_time, 'HH24:MI:SS'),
	to_char(end_time, 'HH24:MI:SS'),
	required_staff_count, location_id, role_id, notes
`

func scanTemplateRow(scanner interface{ Scan(...any) error }) (*domain.WeeklyTemplateRow, error) {
	row := &domain.WeeklyTemplateRow{}
	dst := []any{
		&row.ID, &row.ScheduleID, &row.Weekday, &row.StartTime, &row.EndTime,
		&row.RequiredStaffCount, &row.LocationID, &row.RoleID, &row.Notes,
	}
	if err := scanner.Scan(dst...); err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) GetWeeklyTemplate(scheduleID int64) ([]*domain.WeeklyTemplateRow, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT ` + templateRowColumns + `
		FROM weekly_template_rows
		WHERE schedule_id = $1
		ORDER BY weekday, start_time, id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	template := make([]*domain.WeeklyTemplateRow, 0)
	for rows.Next() {
		row, err := scanTemplateRow(rows)
		if err != nil {
			return nil, err
		}
		template = append(template, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return template, nil
}

func (r *Repository) GetWeeklyTemplateRow(scheduleID, rowID int64) (*domain.WeeklyTemplateRow, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT ` + templateRowColumns + `
		FROM weekly_template_rows
		WHERE id = $1 AND schedule_id = $2
	`

	row, err := scanTemplateRow(r.dbpool.QueryRowContext(ctx, query, rowID, scheduleID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return row, nil
}

// ReplaceWeeklyTemplate swaps the full template of one schedule in a single
// transaction, so readers never observe a half-replaced template.
func (r *Repository) ReplaceWeeklyTemplate(scheduleID int64, template []*domain.WeeklyTemplateRow) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM weekly_template_rows WHERE schedule_id = $1`, scheduleID); err != nil {
		return err
	}

	query := `
		INSERT INTO weekly_template_rows (schedule_id, weekday, start_time, end_time, required_staff_count, location_id, role_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	for _, row := range template {
		row.ScheduleID = scheduleID
		params := []any{
			scheduleID, row.Weekday, row.StartTime, row.EndTime,
			row.RequiredStaffCount, row.LocationID, row.RoleID, row.Notes,
		}
		if err := tx.QueryRowContext(ctx, query, params...).Scan(&row.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) UpdateWeeklyTemplateRow(row *domain.WeeklyTemplateRow) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		UPDATE weekly_template_rows
		SET weekday = $1, start_time = $2, end_time = $3, required_staff_count = $4,
			location_id = $5, role_id = $6, notes = $7
		WHERE id = $8 AND schedule_id = $9
	`

	params := []any{
		row.Weekday, row.StartTime, row.EndTime, row.RequiredStaffCount,
		row.LocationID, row.RoleID, row.Notes, row.ID, row.ScheduleID,
	}
	_, err := r.dbpool.ExecContext(ctx, query, params...)
	return err
}

func (r *Repository) DeleteWeeklyTemplateRow(scheduleID, rowID int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, `DELETE FROM weekly_template_rows WHERE id = $1 AND schedule_id = $2`, rowID, scheduleID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}

	return nil
}
