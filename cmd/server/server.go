package main

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/printquote/internal/auth"
	"github.com/Simplici0/printquote/internal/metrics"
	"github.com/Simplici0/printquote/internal/store"
)

type server struct {
	db      *sql.DB
	store   *store.Store
	auth    *auth.Service
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/token", s.handleToken)
	r.Post("/inverse", s.handleInverse)

	r.Route("/api/quotes", func(r chi.Router) {
		r.Use(s.requireUser)
		r.Post("/", s.handleQuoteCreate)
		r.Get("/", s.handleQuoteList)
		r.Get("/{id}", s.handleQuoteGet)
		r.Put("/{id}", s.handleQuoteUpdate)
		r.Delete("/{id}", s.handleQuoteDelete)
		r.Get("/{id}/optimize", s.handleQuoteOptimize)
	})

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Error("health check failed", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
