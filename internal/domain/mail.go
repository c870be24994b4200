package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type SchedulePublishedMailData struct {
	EmployeeName string   `json:"employee_name"`
	ScheduleName string   `json:"schedule_name"`
	RangeStart   string   `json:"range_start"`
	RangeEnd     string   `json:"range_end"`
	Shifts       []string `json:"shifts"`
}
