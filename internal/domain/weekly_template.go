package domain

// WeeklyTemplateRow is one recurring staffing requirement: a weekday bucket
// plus a clock window, headcount, and the location/role the slot is for.
// Location and role are nullable at the storage level but the API rejects
// rows that lack either, so persisted rows are always expandable.
type WeeklyTemplateRow struct {
	ID                 int64   `json:"id"`
	ScheduleID         int64   `json:"schedule_id"`
	Weekday            int     `json:"weekday"` // 0=Mon .. 6=Sun
	StartTime          string  `json:"start_time"`
	EndTime            string  `json:"end_time"`
	RequiredStaffCount int32   `json:"required_staff_count"`
	LocationID         *int64  `json:"location_id"`
	RoleID             *int64  `json:"role_id"`
	Notes              *string `json:"notes"`
}
