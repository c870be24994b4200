package domain

import "time"

type Employee struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organization_id"`
	DisplayName    string    `json:"display_name"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"created_at"`
	Version        int32     `json:"-"`
}
