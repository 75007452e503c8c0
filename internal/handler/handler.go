package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/calendar"
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/config"
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/hrapi"
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/reconcile"
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	hr          *hrapi.Client
	calendars   *calendar.Cache

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client, hr *hrapi.Client, calendars *calendar.Cache) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	if err := validate.RegisterValidation("datekey", func(fl validator.FieldLevel) bool {
		return reconcile.IsDateKey(fl.Field().String())
	}); err != nil {
		return nil, err
	}
	if err := validate.RegisterTranslation("datekey", trans, func(ut ut.Translator) error {
		return ut.Add("datekey", "{0} must be a YYYY-MM-DD date", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("datekey", fe.Field())
		return t
	}); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		hr:          hr,
		calendars:   calendars,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.requestID)
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/timesheets", func(r chi.Router) {
			r.Use(h.targetEmployee)
			r.Route("/weeks/{weekStart}", func(r chi.Router) {
				r.Use(h.week)
				r.Get("/", h.GetWeek)
				r.Put("/entries", h.UpdateWeekEntries)
				r.Post("/save", h.SaveWeek)
				r.Post("/submit", h.SubmitWeek)
			})
		})

		r.Route("/holidays", func(r chi.Router) {
			r.With(h.targetEmployee).Get("/", h.GetHolidays)
			r.Get("/calendar", h.GetHolidayCalendar)
		})

		r.With(h.targetEmployee).Get("/attendance/summary", h.GetAttendanceSummary)
	})
}
