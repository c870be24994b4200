package repository

import (
	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
)

func (r *Repository) ListScheduleAssignments(scheduleID int64) ([]*domain.ShiftAssignment, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT sa.shift_id, sa.employee_id, e.display_name, sa.created_at
		FROM shift_assignments sa
		JOIN shifts sh ON sh.id = sa.shift_id
		JOIN employees e ON e.id = sa.employee_id
		WHERE sh.schedule_id = $1
		ORDER BY sa.shift_id, sa.employee_id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.ShiftAssignment, 0)
	for rows.Next() {
		a := &domain.ShiftAssignment{}
		if err := rows.Scan(&a.ShiftID, &a.EmployeeID, &a.EmployeeName, &a.CreatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *Repository) CreateAssignment(a *domain.ShiftAssignment) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO shift_assignments (shift_id, employee_id)
		VALUES ($1, $2)
		RETURNING created_at
	`

	return r.dbpool.QueryRowContext(ctx, query, a.ShiftID, a.EmployeeID).Scan(&a.CreatedAt)
}

func (r *Repository) DeleteAssignment(shiftID, employeeID int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, `DELETE FROM shift_assignments WHERE shift_id = $1 AND employee_id = $2`, shiftID, employeeID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// ApplyAssignmentPlan persists one engine run atomically: clear the shifts
// the run decided to reset, then insert its picks. A dry run never reaches
// this method.
func (r *Repository) ApplyAssignmentPlan(clearedShiftIDs []int64, created []domain.ShiftAssignment) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if len(clearedShiftIDs) > 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM shift_assignments WHERE shift_id = ANY($1)`, clearedShiftIDs); err != nil {
			return err
		}
	}

	query := `INSERT INTO shift_assignments (shift_id, employee_id) VALUES ($1, $2)`
	for _, a := range created {
		if _, err := tx.ExecContext(ctx, query, a.ShiftID, a.EmployeeID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
