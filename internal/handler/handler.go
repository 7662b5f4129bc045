package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	fr_translations "github.com/go-playground/validator/v10/translations/fr"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/dsp-hub/workforce-manager/backend/internal/config"
	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
	"github.com/dsp-hub/workforce-manager/backend/internal/repository"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	translators   map[domain.Language]ut.Translator
	notifyChannel *amqp.Channel
	redisClient   *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, notifyCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// The product is bilingual: validation messages are translated to the
	// signed-in user's language.
	enLocale := en.New()
	frLocale := fr.New()
	uni := ut.New(enLocale, enLocale, frLocale)

	enTrans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, err
	}
	frTrans, _ := uni.GetTranslator("fr")
	if err := fr_translations.RegisterDefaultTranslations(validate, frTrans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		repository: repo,
		translators: map[domain.Language]ut.Translator{
			domain.LanguageEnglish: enTrans,
			domain.LanguageFrench:  frTrans,
		},
		notifyChannel: notifyCh,
		redisClient:   rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// Everything below requires a signed-in staff account, and every
	// request is pinned to the session's dsp_code.
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.tenant)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleOwner})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.RequiredRole([]domain.Role{domain.RoleOwner}))
				r.Use(h.userInfo)
				r.Delete("/", h.DeleteUser)
			})
		})

		r.Route("/api", func(r chi.Router) {
			r.Route("/employee", func(r chi.Router) {
				r.Get("/", h.GetAllEmployees)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager, domain.RoleOwner})).Post("/", h.CreateEmployee)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(h.employeeInfo)
					r.Get("/", h.GetEmployee)
					r.With(h.RequiredRole([]domain.Role{domain.RoleManager, domain.RoleOwner})).Patch("/", h.UpdateEmployee)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/shifts", h.GetAllShifts)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager, domain.RoleOwner})).Post("/shifts", h.CreateShift)
				r.Route("/shifts/{id}", func(r chi.Router) {
					r.Use(h.shiftInfo)
					r.With(h.RequiredRole([]domain.Role{domain.RoleManager, domain.RoleOwner})).Patch("/", h.UpdateShift)
					r.With(h.RequiredRole([]domain.Role{domain.RoleManager, domain.RoleOwner})).Delete("/", h.DeleteShift)
				})
			})

			r.Route("/disponibilites", func(r chi.Router) {
				r.Get("/disponibilites", h.GetAllAvailability)
				r.Get("/grid", h.GetAvailabilityGrid)
				r.Post("/disponibilites/create", h.CreateAvailability)
				r.Delete("/disponibilites/{id}", h.DeleteAvailability)
				r.Post("/updateDisponibilites", h.PublishDecisions)
				r.Get("/summary", h.GetWeeklySummary)
				r.Get("/summary/export", h.ExportWeeklySummary)
			})
		})
	})
}
