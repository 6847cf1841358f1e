// Package server composes the HTTP routes and middleware.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/waterworks/records/internal/handlers"
	"github.com/waterworks/records/internal/metrics"
	"github.com/waterworks/records/internal/middleware"
	"github.com/waterworks/records/internal/models"
	"github.com/waterworks/records/internal/utils"
)

type RouterConfig struct {
	Handler      *handlers.Handler
	AccessTokens *utils.TokenIssuer
	Logger       zerolog.Logger
	// Metrics may be nil, which disables instrumentation and /metrics.
	Metrics *metrics.Metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	h := cfg.Handler
	auth := middleware.Auth(cfg.AccessTokens)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(chimw.Recoverer)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics.HTTP))
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.JSONError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.JSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health.Check)

		// Public
		r.With(middleware.OptionalAuth(cfg.AccessTokens)).Post("/users/register", h.Auth.Register)
		r.Post("/users/login", h.Auth.Login)
		r.Post("/users/refresh", h.Auth.Refresh)

		// Protected
		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Get("/users/me", h.Auth.Me)
			r.Post("/users/logout", h.Auth.Logout)
			r.With(adminOnly).Get("/users", h.Users.List)
			r.With(adminOnly).Post("/users", h.Users.Create)

			r.Get("/water-sources", h.Sources.List)
			r.Post("/water-sources", h.Sources.Create)

			r.Get("/water-meters", h.Meters.List)
			r.Post("/water-meters", h.Meters.Create)

			r.Get("/consumption-records", h.Consumption.List)
			r.Post("/consumption-records", h.Consumption.Create)

			r.Get("/billing", h.Billing.List)
			r.Post("/billing", h.Billing.Create)

			r.Get("/conservation-methods", h.Methods.List)
			r.Get("/conservation-methods/{id}", h.Methods.Get)
			r.With(adminOnly).Post("/conservation-methods", h.Methods.Create)

			r.Get("/implementation-records", h.Implementations.List)
			r.Get("/implementation-records/{id}", h.Implementations.Get)
			r.Post("/implementation-records", h.Implementations.Create)

			r.Get("/water-savings", h.Savings.List)
			r.Post("/water-savings", h.Savings.Create)

			r.Get("/alerts", h.Alerts.List)
			r.With(adminOnly).Post("/alerts", h.Alerts.Create)
		})
	})

	return r
}
