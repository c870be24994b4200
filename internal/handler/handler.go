package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/vaktplan-dev/roster-manager/backend/internal/config"
	"github.com/vaktplan-dev/roster-manager/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Post("/auth/login", h.Login)

	// everything else requires a bearer token scoped to one organization
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/organizations/me", h.GetMyOrganization)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.With(h.requireManager).Post("/", h.CreateEmployee)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.employee)
				r.Get("/", h.GetEmployee)
				r.With(h.requireManager).Patch("/", h.UpdateEmployee)
				r.With(h.requireManager).Delete("/", h.DeleteEmployee)

				r.Route("/preferences", func(r chi.Router) {
					r.Get("/", h.ListPreferences)
					r.With(h.requireManager).Post("/", h.CreatePreference)
					r.With(h.requireManager).Patch("/{prefID}", h.UpdatePreference)
					r.With(h.requireManager).Delete("/{prefID}", h.DeletePreference)
				})

				r.Route("/unavailability", func(r chi.Router) {
					r.Get("/", h.ListUnavailability)
					r.With(h.requireManager).Post("/", h.CreateUnavailability)
					r.With(h.requireManager).Delete("/{entryID}", h.DeleteUnavailability)
				})
			})
		})

		r.Route("/locations", func(r chi.Router) {
			r.Get("/", h.ListLocations)
			r.With(h.requireManager).Post("/", h.CreateLocation)
			r.With(h.requireManager).Patch("/{id}", h.UpdateLocation)
			r.With(h.requireManager).Delete("/{id}", h.DeleteLocation)
		})

		r.Route("/job-roles", func(r chi.Router) {
			r.Get("/", h.ListJobRoles)
			r.With(h.requireManager).Post("/", h.CreateJobRole)
			r.With(h.requireManager).Patch("/{id}", h.UpdateJobRole)
			r.With(h.requireManager).Delete("/{id}", h.DeleteJobRole)
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Get("/", h.ListSchedules)
			r.With(h.requireManager).Post("/", h.CreateSchedule)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.schedule)
				r.Get("/", h.GetSchedule)
				r.With(h.requireManager).Delete("/", h.DeleteSchedule)
				r.With(h.requireManager).Post("/publish", h.PublishSchedule)

				r.Route("/weekly-template", func(r chi.Router) {
					r.Get("/", h.GetWeeklyTemplate)
					r.With(h.requireManager).Put("/", h.SaveWeeklyTemplate)
					r.With(h.requireManager).Patch("/{rowID}", h.UpdateWeeklyTemplateRow)
					r.With(h.requireManager).Delete("/{rowID}", h.DeleteWeeklyTemplateRow)
					r.With(h.requireManager).Post("/generate", h.GenerateShifts)
				})
			})
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.ListShifts)
			r.With(h.requireManager).Post("/", h.CreateShift)
			r.With(h.requireManager).Patch("/{id}", h.UpdateShift)
			r.With(h.requireManager).Delete("/{id}", h.DeleteShift)
		})

		r.Route("/assignments", func(r chi.Router) {
			r.With(h.requireManager).Post("/auto-assign", h.AutoAssign)
			r.With(h.requireManager).Post("/", h.CreateAssignment)
			r.With(h.requireManager).Delete("/{shiftID}/{employeeID}", h.DeleteAssignment)
		})
	})
}
