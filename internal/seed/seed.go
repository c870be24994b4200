package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/vaktplan-dev/roster-manager/backend/internal/config"
	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
	"github.com/vaktplan-dev/roster-manager/backend/internal/repository"
	"github.com/vaktplan-dev/roster-manager/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

const emailDomain = "example.is"

func ptr[T any](v T) *T { return &v }

// SeedDemoData populates a fresh database with a demo café organization: a
// manager login, staff, locations, roles, one draft schedule with a weekly
// template, and enough preferences and absences to make an auto-assign run
// interesting.
func SeedDemoData(r *repository.Repository, cfg *config.Config) {
	org := &domain.Organization{
		Name:     "Kaffihúsið Demo",
		Timezone: "Atlantic/Reykjavik",
	}
	if err := r.CreateOrganization(org); err != nil {
		slog.Error("failed to create demo organization", "error", err)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.User.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash demo manager password", "error", err)
		return
	}

	manager := &domain.User{
		Username:       "demo-manager",
		PasswordHash:   string(passwordHash),
		Email:          "manager@" + emailDomain,
		OrganizationID: org.ID,
		IsManager:      true,
	}
	if err := r.CreateUser(manager); err != nil {
		slog.Error("failed to create demo manager", "error", err)
		return
	}

	locations := make([]*domain.Location, 0, 3)
	for _, name := range []string{"Front of house", "Kitchen", "Bar"} {
		loc := &domain.Location{OrganizationID: org.ID, Name: name}
		if err := r.CreateLocation(loc); err != nil {
			slog.Error("failed to create demo location", "name", name, "error", err)
			return
		}
		locations = append(locations, loc)
	}

	roles := make([]*domain.JobRole, 0, 3)
	for _, spec := range []struct {
		name string
		cap  *int32
	}{
		{"Barista", ptr(int32(40))},
		{"Server", ptr(int32(30))},
		{"Shift lead", nil},
	} {
		role := &domain.JobRole{OrganizationID: org.ID, Name: spec.name, WeeklyHoursCap: spec.cap}
		if err := r.CreateJobRole(role); err != nil {
			slog.Error("failed to create demo job role", "name", spec.name, "error", err)
			return
		}
		roles = append(roles, role)
	}

	employees := make([]*domain.Employee, 0, 12)
	for i := 0; i < 12; i++ {
		emp := utils.GenerateRandomEmployee(org.ID, emailDomain)
		if err := r.CreateEmployee(emp); err != nil {
			slog.Error("failed to create demo employee", "error", err)
			return
		}
		employees = append(employees, emp)
	}

	// a four week schedule starting on the next Monday
	start := time.Now()
	for start.Weekday() != time.Monday {
		start = start.AddDate(0, 0, 1)
	}
	end := start.AddDate(0, 0, 27)

	schedule := &domain.Schedule{
		OrganizationID: org.ID,
		Name:           fmt.Sprintf("Roster starting %s", start.Format("2006-01-02")),
		RangeStart:     start.Format("2006-01-02"),
		RangeEnd:       end.Format("2006-01-02"),
	}
	if err := r.CreateSchedule(schedule); err != nil {
		slog.Error("failed to create demo schedule", "error", err)
		return
	}

	template := make([]*domain.WeeklyTemplateRow, 0)
	for weekday := 0; weekday < 7; weekday++ {
		template = append(template,
			&domain.WeeklyTemplateRow{
				Weekday:            weekday,
				StartTime:          "08:00:00",
				EndTime:            "16:00:00",
				RequiredStaffCount: 2,
				LocationID:         &locations[0].ID,
				RoleID:             &roles[0].ID,
			},
			&domain.WeeklyTemplateRow{
				Weekday:            weekday,
				StartTime:          "16:00:00",
				EndTime:            "23:00:00",
				RequiredStaffCount: 2,
				LocationID:         &locations[2].ID,
				RoleID:             &roles[1].ID,
			},
		)
	}
	// weekend brunch needs a shift lead
	for _, weekday := range []int{5, 6} {
		template = append(template, &domain.WeeklyTemplateRow{
			Weekday:            weekday,
			StartTime:          "10:00:00",
			EndTime:            "15:00:00",
			RequiredStaffCount: 1,
			LocationID:         &locations[1].ID,
			RoleID:             &roles[2].ID,
		})
	}
	if err := r.ReplaceWeeklyTemplate(schedule.ID, template); err != nil {
		slog.Error("failed to create demo weekly template", "error", err)
		return
	}

	for _, emp := range employees {
		// a couple of weighted wishes per employee
		for i := 0; i < 2; i++ {
			p := &domain.Preference{
				EmployeeID: emp.ID,
				Weekday:    rand.Intn(7),
				StartTime:  "08:00:00",
				EndTime:    "16:00:00",
				Weight:     ptr(int32(rand.Intn(6))),
			}
			if err := r.CreatePreference(p); err != nil {
				slog.Error("failed to create demo preference", "error", err)
				return
			}
		}

		// one in three employees refuses late shifts on a random weekday
		if rand.Intn(3) == 0 {
			p := &domain.Preference{
				EmployeeID:    emp.ID,
				Weekday:       rand.Intn(7),
				StartTime:     "16:00:00",
				EndTime:       "23:00:00",
				DoNotSchedule: true,
			}
			if err := r.CreatePreference(p); err != nil {
				slog.Error("failed to create demo preference", "error", err)
				return
			}
		}

		// one in four employees is away for a few days
		if rand.Intn(4) == 0 {
			awayStart := start.AddDate(0, 0, rand.Intn(21))
			u := &domain.Unavailability{
				EmployeeID: emp.ID,
				StartAt:    awayStart,
				EndAt:      awayStart.AddDate(0, 0, rand.Intn(4)+1),
				Reason:     ptr("holiday"),
			}
			if err := r.CreateUnavailability(u); err != nil {
				slog.Error("failed to create demo unavailability", "error", err)
				return
			}
		}
	}

	slog.Info("demo data seeded",
		"organization", org.Name,
		"employees", len(employees),
		"schedule", schedule.Name,
	)
}
