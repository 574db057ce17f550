// Package router wires the HTTP surface: directory, appointments,
// favorites, health and metrics.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/medibook/medibook/internal/appointments"
	"github.com/medibook/medibook/internal/doctors"
	"github.com/medibook/medibook/internal/favorites"
	httpmiddleware "github.com/medibook/medibook/internal/http/middleware"
	"github.com/medibook/medibook/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger              *logging.Logger
	DoctorsHandler      *doctors.Handler
	AppointmentsHandler *appointments.Handler
	FavoritesHandler    *favorites.Handler
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string
}

// New creates a new Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		api.Route("/doctors", func(d chi.Router) {
			d.Get("/", cfg.DoctorsHandler.List)
			d.Post("/refresh", cfg.DoctorsHandler.Refresh)
			d.Get("/{id}", cfg.DoctorsHandler.GetByID)
			d.Get("/{id}/slots", cfg.DoctorsHandler.Slots)
			d.Get("/{id}/days", cfg.DoctorsHandler.Days)
		})

		api.Route("/appointments", func(a chi.Router) {
			a.Post("/", cfg.AppointmentsHandler.Create)
			a.Get("/", cfg.AppointmentsHandler.List)
			a.Get("/views/partition", cfg.AppointmentsHandler.PartitionView)
			a.Get("/views/board", cfg.AppointmentsHandler.BoardView)
			a.Put("/{id}", cfg.AppointmentsHandler.Update)
			a.Post("/{id}/reschedule", cfg.AppointmentsHandler.Reschedule)
			a.Post("/{id}/cancel", cfg.AppointmentsHandler.Cancel)
			a.Delete("/{id}", cfg.AppointmentsHandler.Remove)
		})

		api.Route("/favorites", func(f chi.Router) {
			f.Get("/", cfg.FavoritesHandler.List)
			f.Post("/{doctorID}/toggle", cfg.FavoritesHandler.Toggle)
		})
	})

	return r
}
