package repository

import (
	"context"
	"database/sql"

	"github.com/vaktplan-dev/roster-manager/backend/internal/assigner"
	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
)

// LoadAssignmentSnapshot reads everything one engine run consumes (the
// schedule's shifts, the org's employees and roles, every employee's
// preferences and unavailability, and the current assignments) inside a
// single repeatable-read transaction, so a run that takes seconds still
// computes over one consistent view.
func (r *Repository) LoadAssignmentSnapshot(scheduleID, orgID int64) (*assigner.Snapshot, error) {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	snap := &assigner.Snapshot{
		Roles:          make(map[int64]*domain.JobRole),
		Preferences:    make(map[int64][]*domain.Preference),
		Unavailability: make(map[int64][]*domain.Unavailability),
	}

	if snap.Shifts, err = snapshotShifts(ctx, tx, scheduleID); err != nil {
		return nil, err
	}
	if snap.Employees, err = snapshotEmployees(ctx, tx, orgID); err != nil {
		return nil, err
	}
	if err = snapshotRoles(ctx, tx, orgID, snap.Roles); err != nil {
		return nil, err
	}
	if err = snapshotPreferences(ctx, tx, orgID, snap.Preferences); err != nil {
		return nil, err
	}
	if err = snapshotUnavailability(ctx, tx, orgID, snap.Unavailability); err != nil {
		return nil, err
	}
	if snap.Assignments, err = snapshotAssignments(ctx, tx, scheduleID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return snap, nil
}

func snapshotShifts(ctx context.Context, tx *sql.Tx, scheduleID int64) ([]*domain.Shift, error) {
	query := `
		SELECT id, schedule_id, start_at, end_at, required_staff_count, location_id, role_id, notes, origin
		FROM shifts
		WHERE schedule_id = $1
		ORDER BY start_at, id
	`

	rows, err := tx.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		s := &domain.Shift{}
		dst := []any{
			&s.ID, &s.ScheduleID, &s.StartAt, &s.EndAt, &s.RequiredStaffCount,
			&s.LocationID, &s.RoleID, &s.Notes, &s.Origin,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}

	return shifts, rows.Err()
}

func snapshotEmployees(ctx context.Context, tx *sql.Tx, orgID int64) ([]*domain.Employee, error) {
	query := `
		SELECT id, organization_id, display_name, email
		FROM employees
		WHERE organization_id = $1
		ORDER BY id
	`

	rows, err := tx.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		e := &domain.Employee{}
		if err := rows.Scan(&e.ID, &e.OrganizationID, &e.DisplayName, &e.Email); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

func snapshotRoles(ctx context.Context, tx *sql.Tx, orgID int64, out map[int64]*domain.JobRole) error {
	query := `SELECT id, organization_id, name, weekly_hours_cap FROM job_roles WHERE organization_id = $1`

	rows, err := tx.QueryContext(ctx, query, orgID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		role := &domain.JobRole{}
		if err := rows.Scan(&role.ID, &role.OrganizationID, &role.Name, &role.WeeklyHoursCap); err != nil {
			return err
		}
		out[role.ID] = role
	}

	return rows.Err()
}

func snapshotPreferences(ctx context.Context, tx *sql.Tx, orgID int64, out map[int64][]*domain.Preference) error {
	query := `
		SELECT p.id, p.employee_id, p.weekday,
			to_char(p.start_time, 'HH24:MI:SS'),
			to_char(p.end_time, 'HH24:MI:SS'),
			p.weight, p.do_not_schedule,
			to_char(p.active_start, 'YYYY-MM-DD'),
			to_char(p.active_end, 'YYYY-MM-DD'),
			p.notes
		FROM preferences p
		JOIN employees e ON e.id = p.employee_id
		WHERE e.organization_id = $1
		ORDER BY p.employee_id, p.weekday, p.start_time, p.id
	`

	rows, err := tx.QueryContext(ctx, query, orgID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPreference(rows)
		if err != nil {
			return err
		}
		out[p.EmployeeID] = append(out[p.EmployeeID], p)
	}

	return rows.Err()
}

func snapshotUnavailability(ctx context.Context, tx *sql.Tx, orgID int64, out map[int64][]*domain.Unavailability) error {
	query := `
		SELECT u.id, u.employee_id, u.start_at, u.end_at, u.reason
		FROM unavailability u
		JOIN employees e ON e.id = u.employee_id
		WHERE e.organization_id = $1
		ORDER BY u.employee_id, u.start_at, u.id
	`

	rows, err := tx.QueryContext(ctx, query, orgID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		u := &domain.Unavailability{}
		if err := rows.Scan(&u.ID, &u.EmployeeID, &u.StartAt, &u.EndAt, &u.Reason); err != nil {
			return err
		}
		out[u.EmployeeID] = append(out[u.EmployeeID], u)
	}

	return rows.Err()
}

func snapshotAssignments(ctx context.Context, tx *sql.Tx, scheduleID int64) ([]*domain.ShiftAssignment, error) {
	query := `
		SELECT sa.shift_id, sa.employee_id, sa.created_at
		FROM shift_assignments sa
		JOIN shifts sh ON sh.id = sa.shift_id
		WHERE sh.schedule_id = $1
		ORDER BY sa.shift_id, sa.employee_id
	`

	rows, err := tx.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.ShiftAssignment, 0)
	for rows.Next() {
		a := &domain.ShiftAssignment{}
		if err := rows.Scan(&a.ShiftID, &a.EmployeeID, &a.CreatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}
