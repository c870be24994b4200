package domain

import "time"

type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"`
	Email          string    `json:"email"`
	OrganizationID int64     `json:"organization_id"`
	IsManager      bool      `json:"is_manager"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	Version        int32     `json:"-"`
}
