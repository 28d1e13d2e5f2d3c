package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/dlemos/tenantshift/internal/models"
	"github.com/dlemos/tenantshift/internal/platform"
)

// Server holds shared state for all API handlers.
type Server struct {
	Connections *models.ConnectionStore
	Jobs        *models.JobStore
	Results     *ResultStore
	Logger      *zap.Logger
}

// registryFor builds a resource-kind registry bound to a connection.
func (s *Server) registryFor(conn *models.Connection) *platform.Registry {
	return platform.DefaultRegistry(platform.NewClient(conn))
}

// NewRouter builds the chi router with all API routes.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(requestLogger(s.Logger))
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Connections
		r.Post("/connections", s.CreateConnection)
		r.Get("/connections", s.ListConnections)
		r.Put("/connections/{id}", s.UpdateConnection)
		r.Delete("/connections/{id}", s.DeleteConnection)
		r.Post("/connections/{id}/test", s.TestConnection)

		// Resource browsing
		r.Get("/connections/{id}/resources", s.ListResourceKinds)
		r.Get("/connections/{id}/resources/{kind}", s.ListResourcesOfKind)

		// Operations (async)
		r.Post("/connections/{id}/seed", s.RunSeed)
		r.Post("/connections/{id}/export", s.RunExport)

		// Migration
		r.Post("/migrate/detect", s.DetectHandler)
		r.Get("/migrate/detect/{jobId}", s.GetDetection)
		r.Post("/migrate/run", s.MigrationRunHandler)
		r.Get("/migrate/report/{jobId}", s.GetMigrationReport)

		// Exclusions
		r.Get("/exclusions", s.GetExclusions)

		// Jobs
		r.Get("/jobs", s.ListJobs)
		r.Get("/jobs/{id}", s.GetJob)
		r.Post("/jobs/{id}/cancel", s.CancelJob)
	})

	// WebSocket (outside /api to avoid JSON content-type assumptions)
	r.Get("/ws/jobs/{id}/logs", s.StreamJobLogs)

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
