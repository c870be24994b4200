package repository

import (
	"database/sql"
	"errors"

	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
	"github.com/vaktplan-dev/roster-manager/backend/internal/expander"
)

// GenerationCounts reports what one regeneration actually did. The dropped
// assignment count is surfaced so regeneration never loses data silently.
type GenerationCounts struct {
	Created            int `json:"created"`
	Deleted            int `json:"deleted"`
	AssignmentsDropped int `json:"assignments_dropped"`
}

func (r *Repository) GetShiftForOrg(id, orgID int64) (*domain.Shift, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT sh.id, sh.schedule_id, sh.start_at, sh.end_at, sh.required_staff_count,
			sh.location_id, sh.role_id, sh.notes, sh.origin
		FROM shifts sh
		JOIN schedules s ON s.id = sh.schedule_id
		WHERE sh.id = $1 AND s.organization_id = $2
	`

	shift := &domain.Shift{}
	dst := []any{
		&shift.ID, &shift.ScheduleID, &shift.StartAt, &shift.EndAt, &shift.RequiredStaffCount,
		&shift.LocationID, &shift.RoleID, &shift.Notes, &shift.Origin,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id, orgID).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return shift, nil
}

// ListShifts returns a schedule's shifts with their assignments embedded,
// reassembled from one joined query.
func (r *Repository) ListShifts(scheduleID int64) ([]*domain.Shift, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT
			sh.id, sh.schedule_id, sh.start_at, sh.end_at, sh.required_staff_count,
			sh.location_id, sh.role_id, sh.notes, sh.origin,
			sa.employee_id, e.display_name, sa.created_at
		FROM shifts sh
		LEFT JOIN shift_assignments sa ON sa.shift_id = sh.id
		LEFT JOIN employees e ON e.id = sa.employee_id
		WHERE sh.schedule_id = $1
		ORDER BY sh.start_at, sh.id, sa.employee_id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	var last *domain.Shift

	for rows.Next() {
		var row struct {
			shift domain.Shift

			EmployeeID   sql.NullInt64
			EmployeeName sql.NullString
			AssignedAt   sql.NullTime
		}

		dst := []any{
			&row.shift.ID, &row.shift.ScheduleID, &row.shift.StartAt, &row.shift.EndAt,
			&row.shift.RequiredStaffCount, &row.shift.LocationID, &row.shift.RoleID,
			&row.shift.Notes, &row.shift.Origin,
			&row.EmployeeID, &row.EmployeeName, &row.AssignedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if last == nil || last.ID != row.shift.ID {
			shift := row.shift
			shift.Assignments = make([]domain.ShiftAssignment, 0)
			shifts = append(shifts, &shift)
			last = shifts[len(shifts)-1]
		}

		if row.EmployeeID.Valid {
			last.Assignments = append(last.Assignments, domain.ShiftAssignment{
				ShiftID:      last.ID,
				EmployeeID:   row.EmployeeID.Int64,
				EmployeeName: row.EmployeeName.String,
				CreatedAt:    row.AssignedAt.Time,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) CreateShift(shift *domain.Shift) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO shifts (schedule_id, start_at, end_at, required_staff_count, location_id, role_id, notes, origin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	params := []any{
		shift.ScheduleID, shift.StartAt, shift.EndAt, shift.RequiredStaffCount,
		shift.LocationID, shift.RoleID, shift.Notes, shift.Origin,
	}
	return r.dbpool.QueryRowContext(ctx, query, params...).Scan(&shift.ID)
}

func (r *Repository) UpdateShift(shift *domain.Shift) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		UPDATE shifts
		SET start_at = $1, end_at = $2, required_staff_count = $3, location_id = $4, role_id = $5, notes = $6
		WHERE id = $7
	`

	params := []any{
		shift.StartAt, shift.EndAt, shift.RequiredStaffCount,
		shift.LocationID, shift.RoleID, shift.Notes, shift.ID,
	}
	_, err := r.dbpool.ExecContext(ctx, query, params...)
	return err
}

func (r *Repository) DeleteShift(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	return err
}

// RegenerateShifts applies one expansion atomically: inside a single
// transaction it drops the template-generated shifts of the range (manual
// shifts are never touched), counts the assignments that go down with
// them, and inserts the newly planned set. Either everything commits or
// the previous shift set stays intact.
func (r *Repository) RegenerateShifts(scheduleID int64, rangeStart, rangeEnd string, planned []expander.PlannedShift) (*GenerationCounts, error) {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	counts := &GenerationCounts{}

	// window is on the shift's start date, matching the expander's scope
	windowCond := `
		schedule_id = $1
		AND origin = 'template-generated'
		AND start_at >= $2::date
		AND start_at < ($3::date + interval '1 day')
	`

	countQuery := `
		SELECT count(*)
		FROM shift_assignments
		WHERE shift_id IN (SELECT id FROM shifts WHERE ` + windowCond + `)
	`
	if err := tx.QueryRowContext(ctx, countQuery, scheduleID, rangeStart, rangeEnd).Scan(&counts.AssignmentsDropped); err != nil {
		return nil, err
	}

	// assignments on these shifts go away via ON DELETE CASCADE
	res, err := tx.ExecContext(ctx, `DELETE FROM shifts WHERE `+windowCond, scheduleID, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	counts.Deleted = int(deleted)

	insertQuery := `
		INSERT INTO shifts (schedule_id, start_at, end_at, required_staff_count, location_id, role_id, notes, origin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'template-generated')
	`
	for _, p := range planned {
		params := []any{scheduleID, p.StartAt, p.EndAt, p.RequiredStaffCount, p.LocationID, p.RoleID, p.Notes}
		if _, err := tx.ExecContext(ctx, insertQuery, params...); err != nil {
			return nil, err
		}
	}
	counts.Created = len(planned)

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return counts, nil
}
