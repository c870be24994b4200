package domain

// Preference is a recurring weekly wish of one employee. Either Weight
// (0..5) or DoNotSchedule is set, never both: a do-not-schedule window is a
// hard block, a weighted window only ranks candidates. ActiveStart/ActiveEnd
// (dates, inclusive) limit when the preference applies at all.
type Preference struct {
	ID            int64   `json:"id"`
	EmployeeID    int64   `json:"employee_id"`
	Weekday       int     `json:"weekday"` // 0=Mon .. 6=Sun
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Weight        *int32  `json:"weight"`
	DoNotSchedule bool    `json:"do_not_schedule"`
	ActiveStart   *string `json:"active_start"`
	ActiveEnd     *string `json:"active_end"`
	Notes         *string `json:"notes"`
}
