package domain

type JobRole struct {
	ID             int64  `json:"id"`
	OrganizationID int64  `json:"organization_id"`
	Name           string `json:"name"`
	WeeklyHoursCap *int32 `json:"weekly_hours_cap"`
}
