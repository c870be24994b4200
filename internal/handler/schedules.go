package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
	"github.com/vaktplan-dev/roster-manager/backend/internal/timeutil"
)

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.repository.ListSchedules(h.orgID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "schedules fetched", schedules)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	s := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	h.successResponse(w, r, "schedule fetched", s)
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name" validate:"required"`
		RangeStart string `json:"range_start" validate:"required"`
		RangeEnd   string `json:"range_end" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if _, _, err := timeutil.ParseDateRange(req.RangeStart, req.RangeEnd); err != nil {
		h.domainError(w, r, err)
		return
	}

	s := &domain.Schedule{
		OrganizationID: h.orgID(r),
		Name:           req.Name,
		RangeStart:     req.RangeStart,
		RangeEnd:       req.RangeEnd,
	}

	if err := h.repository.CreateSchedule(s); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "schedule created", s)
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	s := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	if !h.structuralMutationAllowed(w, r, s) {
		return
	}

	if err := h.repository.DeleteSchedule(s.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "schedule deleted", nil)
}

func (h *Handler) PublishSchedule(w http.ResponseWriter, r *http.Request) {
	s := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	if err := h.repository.PublishSchedule(s); err != nil {
		switch {
		case errors.Is(err, domain.ErrScheduleLocked):
			h.errorResponse(w, r, http.StatusConflict, "schedule is already published")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// notifications ride on the queue and are best effort: the publish
	// itself is already committed, so enqueue failures only get logged
	if err := h.enqueuePublishNotifications(s); err != nil {
		slog.Error("failed to enqueue publish notifications", "schedule_id", s.ID, "error", err)
	}

	h.successResponse(w, r, "schedule published", s)
}

func (h *Handler) enqueuePublishNotifications(s *domain.Schedule) error {
	shifts, err := h.repository.ListShifts(s.ID)
	if err != nil {
		return err
	}

	employees, err := h.repository.ListEmployees(s.OrganizationID)
	if err != nil {
		return err
	}
	emails := make(map[int64]*domain.Employee, len(employees))
	for _, emp := range employees {
		emails[emp.ID] = emp
	}

	perEmployee := make(map[int64][]string)
	for _, shift := range shifts {
		window := fmt.Sprintf("%s %s to %s",
			shift.StartAt.Format("2006-01-02"),
			shift.StartAt.Format("15:04"),
			shift.EndAt.Format("15:04"))
		for _, a := range shift.Assignments {
			perEmployee[a.EmployeeID] = append(perEmployee[a.EmployeeID], window)
		}
	}

	for employeeID, windows := range perEmployee {
		emp, ok := emails[employeeID]
		if !ok {
			continue
		}

		msg := domain.MailMessage{
			Type: "schedule_published",
			To:   emp.Email,
			Data: domain.SchedulePublishedMailData{
				EmployeeName: emp.DisplayName,
				ScheduleName: s.Name,
				RangeStart:   s.RangeStart,
				RangeEnd:     s.RangeEnd,
				Shifts:       windows,
			},
		}

		body, err := json.Marshal(msg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
		err = h.mailChannel.PublishWithContext(
			ctx,
			"",
			"schedule_notifications",
			true,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        body,
			},
		)
		cancel()
		if err != nil {
			return err
		}
	}

	return nil
}
