package domain

import "time"

// Unavailability is a dated absence window. Unlike preferences it is not
// weekday-recurring and always blocks assignment outright.
type Unavailability struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employee_id"`
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
	Reason     *string   `json:"reason"`
}
