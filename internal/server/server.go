package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/lowaak/boxing-trainer/internal/catalog"
	"github.com/lowaak/boxing-trainer/internal/session"
	"github.com/lowaak/boxing-trainer/internal/storage"
)

// History is the session history the API reads from
type History interface {
	ListSessions(ctx context.Context) ([]session.WorkoutSession, error)
	SessionsBetween(ctx context.Context, from, to time.Time) ([]session.WorkoutSession, error)
	GetSession(ctx context.Context, id uuid.UUID) (session.WorkoutSession, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	ExerciseResults(ctx context.Context, exerciseID string) ([]storage.ExerciseHistory, error)
	Totals(ctx context.Context) (storage.Totals, error)
}

// Server exposes workout history and the exercise catalog over HTTP
type Server struct {
	history History
	catalog *catalog.Catalog
	logger  *log.Logger
	router  chi.Router
}

// New creates a Server with all routes configured
func New(history History, cat *catalog.Catalog, logger *log.Logger) *Server {
	if history == nil {
		panic("Server: history cannot be nil")
	}
	if cat == nil {
		panic("Server: catalog cannot be nil")
	}
	if logger == nil {
		panic("Server: logger cannot be nil")
	}
	s := &Server{
		history: history,
		catalog: cat,
		logger:  logger,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(RequestLogging(s.logger))

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/sessions", s.handleListSessions)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Delete("/sessions/{id}", s.handleDeleteSession)
		r.Get("/stats", s.handleStats)

		r.Get("/exercises", s.handleListExercises)
		r.Get("/exercises/{id}", s.handleGetExercise)
		r.Get("/exercises/{id}/results", s.handleExerciseResults)
	})
}

// Run serves on addr until ctx is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("Server: Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Printf("Server: Shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}
		return nil
	}
}
