package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lowaak/boxing-trainer/internal/session"
)

// ExerciseHistory is one result for an exercise together with its session
type ExerciseHistory struct {
	SessionID uuid.UUID              `json:"sessionId"`
	Date      time.Time              `json:"date"`
	Result    session.ExerciseResult `json:"result"`
}

// Totals aggregates the whole history
type Totals struct {
	Sessions             int `json:"sessions"`
	TotalDurationSeconds int `json:"totalDurationSeconds"`
	CompletedRounds      int `json:"completedRounds"`
	PlannedRounds        int `json:"plannedRounds"`
}

// ExerciseResults returns every recorded result for exerciseID, newest first
func (d *DB) ExerciseResults(ctx context.Context, exerciseID string) ([]ExerciseHistory, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT s.id, s.date_ms, r.id, r.exercise_id, r.exercise_name,
		        r.completed_rounds, r.total_rounds, r.duration_sec
		 FROM exercise_results r
		 JOIN workout_sessions s ON s.id = r.session_id
		 WHERE r.exercise_id = ?
		 ORDER BY s.date_ms DESC, r.position`, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying exercise history: %w", err)
	}
	defer rows.Close()

	history := []ExerciseHistory{}
	for rows.Next() {
		var (
			h      ExerciseHistory
			dateMS int64
		)
		if err := rows.Scan(&h.SessionID, &dateMS, &h.Result.ID, &h.Result.ExerciseID, &h.Result.ExerciseName,
			&h.Result.CompletedRounds, &h.Result.TotalRounds, &h.Result.DurationSeconds); err != nil {
			return nil, fmt.Errorf("scanning exercise history: %w", err)
		}
		h.Date = time.UnixMilli(dateMS).UTC()
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exercise history: %w", err)
	}
	return history, nil
}

// Totals sums sessions, time and rounds across the whole history
func (d *DB) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total_duration_sec), 0) FROM workout_sessions`).
		Scan(&t.Sessions, &t.TotalDurationSeconds)
	if err != nil {
		return Totals{}, fmt.Errorf("querying session totals: %w", err)
	}
	err = d.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(completed_rounds), 0), COALESCE(SUM(total_rounds), 0) FROM exercise_results`).
		Scan(&t.CompletedRounds, &t.PlannedRounds)
	if err != nil {
		return Totals{}, fmt.Errorf("querying round totals: %w", err)
	}
	return t, nil
}
