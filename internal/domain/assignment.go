package domain

import "time"

// ShiftAssignment binds one employee to one shift. The (shift, employee)
// pair is unique, and an employee never holds two assignments whose shift
// windows overlap anywhere in the same schedule.
type ShiftAssignment struct {
	ShiftID      int64     `json:"shift_id"`
	EmployeeID   int64     `json:"employee_id"`
	EmployeeName string    `json:"employee_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
