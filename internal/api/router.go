package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/third774/dyte-remix/internal/api/handlers"
	"github.com/third774/dyte-remix/internal/api/middleware"
	"github.com/third774/dyte-remix/internal/config"
	"github.com/third774/dyte-remix/internal/metrics"
	"github.com/third774/dyte-remix/internal/service"
	"github.com/third774/dyte-remix/internal/session"
)

func NewRouter(services *service.Services, sessions *session.Store, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	if cfg.MetricsEnabled {
		r.Use(metrics.Middleware)
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	if cfg.MetricsEnabled {
		r.Handle("/metrics", metrics.Handler())
	}

	// Initialize handlers
	homeHandler := handlers.NewHomeHandler(services.Meeting, sessions)
	meetingHandler := handlers.NewMeetingHandler(services.Resolution, sessions)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(sessions))

		r.Get("/", homeHandler.Get)
		r.Post("/", homeHandler.Post)

		r.Get("/meeting/{meetingId}", meetingHandler.Get)
		r.Get("/join/{alias}", meetingHandler.Join)
	})

	return r
}
