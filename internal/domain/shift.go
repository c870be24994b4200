package domain

import "time"

type ShiftOrigin string

const (
	// ShiftOriginTemplate marks shifts materialized by the template
	// expander. Only these are replaced on regeneration.
	ShiftOriginTemplate ShiftOrigin = "template-generated"
	ShiftOriginManual   ShiftOrigin = "manual"
)

type Shift struct {
	ID                 int64       `json:"id"`
	ScheduleID         int64       `json:"schedule_id"`
	StartAt            time.Time   `json:"start_at"`
	EndAt              time.Time   `json:"end_at"`
	RequiredStaffCount int32       `json:"required_staff_count"`
	LocationID         int64       `json:"location_id"`
	RoleID             int64       `json:"role_id"`
	Notes              *string     `json:"notes"`
	Origin             ShiftOrigin `json:"origin"`

	Assignments []ShiftAssignment `json:"assignments,omitempty"`
}
