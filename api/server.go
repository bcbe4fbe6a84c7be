package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"

	"github.com/aguxez/fitplan/models"
	"github.com/aguxez/fitplan/planner"
)

// Planner is the part of the orchestrator the HTTP layer drives.
type Planner interface {
	Submit(u models.User) (models.CalorieResults, error)
	Recalculate()
	Generate(ctx context.Context) error
	SetLanguage(lang models.Language)
	Snapshot() planner.Snapshot
}

var _ Planner = (*planner.Orchestrator)(nil)

type Server struct {
	planner Planner
}

func NewServer(p Planner) *Server {
	return &Server{planner: p}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/profile", s.handleProfile)
		r.Post("/recalculate", s.handleRecalculate)
		r.Post("/plans", s.handleGeneratePlans)
		r.Put("/language", s.handleLanguage)
	})

	return r
}

// NewHTTPServer wraps the routes with the server timeouts. Plan generation
// can take a while, so the write timeout is generous.
func NewHTTPServer(addr string, p Planner) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      NewServer(p).Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Minute,
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		log.WithFields(log.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Info("HTTP request")
	})
}
