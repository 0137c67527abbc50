package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/clubware/club-management/internal/announcement"
	"github.com/clubware/club-management/internal/application"
	"github.com/clubware/club-management/internal/event"
	"github.com/clubware/club-management/internal/task"
	"github.com/clubware/club-management/internal/transport"
	"github.com/clubware/club-management/internal/transport/middleware"
	"github.com/clubware/club-management/internal/transport/swagger"
	"github.com/clubware/club-management/internal/user"
	"github.com/go-chi/chi"
)

// Handlers bundles every resource router for registration.
type Handlers struct {
	Applications  *application.Handler
	Events        *event.Handler
	Tasks         *task.Handler
	Announcements *announcement.Handler
	Users         *user.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, environment, allowedOrigins string, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, environment)

	// Apply global middleware
	router.Use(middleware.CORSWithOrigins(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.Identity)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Unknown routes still answer with the envelope.
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":"Route not found"}`))
	})

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if h.Applications != nil {
			r.Route("/applications", func(ar chi.Router) {
				ar.Post("/", h.Applications.Submit)
				ar.Get("/", h.Applications.List)
				ar.Get("/{id}", h.Applications.Get)
				ar.Patch("/{id}/status", h.Applications.UpdateStatus)
			})
		}

		if h.Events != nil {
			r.Route("/events", func(er chi.Router) {
				er.Get("/", h.Events.List)
				er.Post("/", h.Events.Create)
				er.Get("/{id}", h.Events.Get)
				er.Patch("/{id}", h.Events.Update)
				er.Delete("/{id}", h.Events.Delete)
				er.Post("/{id}/register", h.Events.Register)
				er.Get("/{id}/registrations", h.Events.Registrations)
			})
		}

		if h.Tasks != nil {
			r.Route("/tasks", func(tr chi.Router) {
				tr.Get("/", h.Tasks.List)
				tr.Post("/", h.Tasks.Create)
				tr.Get("/{id}", h.Tasks.Get)
				tr.Patch("/{id}", h.Tasks.Update)
				tr.Delete("/{id}", h.Tasks.Delete)
			})
		}

		if h.Announcements != nil {
			r.Route("/announcements", func(nr chi.Router) {
				nr.Get("/", h.Announcements.List)
				nr.Post("/", h.Announcements.Create)
				nr.Get("/{id}", h.Announcements.Get)
				nr.Patch("/{id}", h.Announcements.Update)
				nr.Delete("/{id}", h.Announcements.Delete)
			})
		}

		if h.Users != nil {
			r.Route("/users", func(ur chi.Router) {
				ur.Get("/", h.Users.List)
				ur.Post("/", h.Users.Create)
				ur.Get("/{id}", h.Users.Get)
				ur.Patch("/{id}", h.Users.Update)
			})
		}
	})
}

// NewBaseHandler builds the shared handler state used by every resource
// router.
func NewBaseHandler(logger *slog.Logger) *transport.BaseHandler {
	return transport.NewBaseHandler(logger)
}
