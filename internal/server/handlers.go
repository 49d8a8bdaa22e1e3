package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lowaak/boxing-trainer/internal/catalog"
	"github.com/lowaak/boxing-trainer/internal/session"
	"github.com/lowaak/boxing-trainer/internal/storage"
)

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	var (
		sessions []session.WorkoutSession
		err      error
	)
	if r.URL.Query().Get("start") == "" && r.URL.Query().Get("end") == "" {
		sessions, err = s.history.ListSessions(r.Context())
	} else {
		start, end, perr := parseTimeRange(r)
		if perr != nil {
			writeError(w, http.StatusBadRequest, perr)
			return
		}
		sessions, err = s.history.SessionsBetween(r.Context(), start, end)
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid session ID"))
		return
	}

	sess, err := s.history.GetSession(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid session ID"))
		return
	}

	err = s.history.DeleteSession(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.logger.Printf("Server: Deleted session %s", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	totals, err := s.history.Totals(r.Context())
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" {
		writeJSON(w, http.StatusOK, s.catalog.ByCategory(catalog.Category(category)))
		return
	}
	writeJSON(w, http.StatusOK, s.catalog.All())
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	ex, err := s.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"exercise": ex,
		"format":   ex.Format(),
	})
}

func (s *Server) handleExerciseResults(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	history, err := s.history.ExerciseResults(r.Context(), id)
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.Printf("Server: %v", err)
	writeError(w, http.StatusInternalServerError, err)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseTimeRange reads start and end as RFC 3339 timestamps or dates. A date
// end covers that whole day. A missing end means now; a missing start means
// seven days before end.
func parseTimeRange(r *http.Request) (start, end time.Time, err error) {
	end = time.Now()
	if endStr := r.URL.Query().Get("end"); endStr != "" {
		var dateOnly bool
		end, dateOnly, err = parseTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end: %w", err)
		}
		if dateOnly {
			end = end.AddDate(0, 0, 1).Add(-time.Millisecond)
		}
	}

	start = end.AddDate(0, 0, -7)
	if startStr := r.URL.Query().Get("start"); startStr != "" {
		start, _, err = parseTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start: %w", err)
		}
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("end is before start")
	}
	return start, end, nil
}

func parseTime(v string) (t time.Time, dateOnly bool, err error) {
	if t, err = time.Parse(time.RFC3339, v); err == nil {
		return t, false, nil
	}
	t, err = time.Parse(time.DateOnly, v)
	return t, true, err
}
