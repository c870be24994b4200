package domain

import "time"

type ScheduleStatus string

const (
	ScheduleStatusDraft     ScheduleStatus = "draft"
	ScheduleStatusPublished ScheduleStatus = "published"
)

type Schedule struct {
	ID             int64          `json:"id"`
	OrganizationID int64          `json:"organization_id"`
	Name           string         `json:"name"`
	RangeStart     string         `json:"range_start"` // YYYY-MM-DD
	RangeEnd       string         `json:"range_end"`
	Status         ScheduleStatus `json:"status"`
	Version        int32          `json:"version"`
	PublishedAt    *time.Time     `json:"published_at"`
	CreatedAt      time.Time      `json:"created_at"`
}
