package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
	"github.com/vaktplan-dev/roster-manager/backend/internal/expander"
)

func ptr[T any](v T) *T { return &v }

func TestPreferencePayloadRequiresWeightOrBlock(t *testing.T) {
	req := &preferencePayload{Weekday: 0, StartTime: "09:00:00", EndTime: "17:00:00"}
	assert.Error(t, checkPreferencePayload(req))

	req.Weight = ptr(int32(3))
	req.DoNotSchedule = true
	assert.Error(t, checkPreferencePayload(req))

	req.DoNotSchedule = false
	assert.NoError(t, checkPreferencePayload(req))

	req.Weight = nil
	req.DoNotSchedule = true
	assert.NoError(t, checkPreferencePayload(req))
}

func TestPreferencePayloadAllowsOvernightWindow(t *testing.T) {
	req := &preferencePayload{
		Weekday:       4,
		StartTime:     "22:00:00",
		EndTime:       "06:00:00",
		DoNotSchedule: true,
	}
	assert.NoError(t, checkPreferencePayload(req))
}

func TestPreferencePayloadRejectsZeroLengthWindow(t *testing.T) {
	req := &preferencePayload{
		Weekday:   1,
		StartTime: "09:00:00",
		EndTime:   "09:00:00",
		Weight:    ptr(int32(2)),
	}
	assert.Error(t, checkPreferencePayload(req))
}

func TestPreferencePayloadValidatesActiveWindow(t *testing.T) {
	req := &preferencePayload{
		Weekday:     2,
		StartTime:   "09:00:00",
		EndTime:     "17:00:00",
		Weight:      ptr(int32(1)),
		ActiveStart: ptr("2026-02-01"),
		ActiveEnd:   ptr("2026-01-01"),
	}
	require.Error(t, checkPreferencePayload(req))

	req.ActiveEnd = ptr("2026-03-01")
	assert.NoError(t, checkPreferencePayload(req))

	req.ActiveStart = ptr("not-a-date")
	assert.Error(t, checkPreferencePayload(req))
}

func validateRowPayload(p *templateRowPayload) error {
	return expander.ValidateRows([]*domain.WeeklyTemplateRow{p.toRow(1)})
}

func TestTemplateRowPayloadRejectsOvernight(t *testing.T) {
	req := &templateRowPayload{
		Weekday:            5,
		StartTime:          "22:00:00",
		EndTime:            "02:00:00",
		RequiredStaffCount: 1,
		LocationID:         ptr(int64(10)),
		RoleID:             ptr(int64(20)),
	}
	assert.Error(t, validateRowPayload(req))
}

func TestTemplateRowPayloadRejectsIncompleteRow(t *testing.T) {
	req := &templateRowPayload{
		Weekday:            0,
		StartTime:          "08:00:00",
		EndTime:            "12:00:00",
		RequiredStaffCount: 2,
	}
	assert.Error(t, validateRowPayload(req))

	req.LocationID = ptr(int64(10))
	assert.Error(t, validateRowPayload(req))

	req.RoleID = ptr(int64(20))
	assert.NoError(t, validateRowPayload(req))
}

func TestTemplateRowPayloadRejectsBadClock(t *testing.T) {
	req := &templateRowPayload{
		Weekday:            0,
		StartTime:          "8am",
		EndTime:            "12:00:00",
		RequiredStaffCount: 1,
		LocationID:         ptr(int64(10)),
		RoleID:             ptr(int64(20)),
	}
	assert.Error(t, validateRowPayload(req))
}
