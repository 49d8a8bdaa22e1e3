package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lowaak/boxing-trainer/internal/session"
)

// SaveSession inserts a session and its results in one transaction
func (d *DB) SaveSession(ctx context.Context, s session.WorkoutSession) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO workout_sessions (id, date_ms, total_duration_sec) VALUES (?, ?, ?)`,
		s.ID.String(), s.Date.UnixMilli(), s.TotalDurationSeconds)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}

	for i, r := range s.Results {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO exercise_results (id, session_id, position, exercise_id, exercise_name,
			 completed_rounds, total_rounds, duration_sec)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID.String(), s.ID.String(), i, r.ExerciseID, r.ExerciseName,
			r.CompletedRounds, r.TotalRounds, r.DurationSeconds)
		if err != nil {
			return fmt.Errorf("inserting exercise result %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing session: %w", err)
	}
	return nil
}

// ListSessions returns every session, newest first
func (d *DB) ListSessions(ctx context.Context) ([]session.WorkoutSession, error) {
	return d.querySessions(ctx,
		`SELECT id, date_ms, total_duration_sec FROM workout_sessions ORDER BY date_ms DESC, id`)
}

// SessionsBetween returns sessions dated within [from, to], newest first
func (d *DB) SessionsBetween(ctx context.Context, from, to time.Time) ([]session.WorkoutSession, error) {
	return d.querySessions(ctx,
		`SELECT id, date_ms, total_duration_sec FROM workout_sessions
		 WHERE date_ms >= ? AND date_ms <= ? ORDER BY date_ms DESC, id`,
		from.UnixMilli(), to.UnixMilli())
}

// GetSession returns one session or ErrNotFound
func (d *DB) GetSession(ctx context.Context, id uuid.UUID) (session.WorkoutSession, error) {
	var (
		s      session.WorkoutSession
		dateMS int64
	)
	err := d.db.QueryRowContext(ctx,
		`SELECT id, date_ms, total_duration_sec FROM workout_sessions WHERE id = ?`, id.String()).
		Scan(&s.ID, &dateMS, &s.TotalDurationSeconds)
	if errors.Is(err, sql.ErrNoRows) {
		return session.WorkoutSession{}, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return session.WorkoutSession{}, fmt.Errorf("querying session: %w", err)
	}
	s.Date = time.UnixMilli(dateMS).UTC()

	results, err := d.resultsFor(ctx, s.ID)
	if err != nil {
		return session.WorkoutSession{}, err
	}
	s.Results = results
	return s, nil
}

// DeleteSession removes a session and its results, or returns ErrNotFound
func (d *DB) DeleteSession(ctx context.Context, id uuid.UUID) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM exercise_results WHERE session_id = ?`, id.String()); err != nil {
		return fmt.Errorf("deleting exercise results: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM workout_sessions WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}
	return nil
}

func (d *DB) querySessions(ctx context.Context, query string, args ...any) ([]session.WorkoutSession, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	sessions := []session.WorkoutSession{}
	for rows.Next() {
		var (
			s      session.WorkoutSession
			dateMS int64
		)
		if err := rows.Scan(&s.ID, &dateMS, &s.TotalDurationSeconds); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		s.Date = time.UnixMilli(dateMS).UTC()
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	rows.Close()

	for i := range sessions {
		results, err := d.resultsFor(ctx, sessions[i].ID)
		if err != nil {
			return nil, err
		}
		sessions[i].Results = results
	}
	return sessions, nil
}

func (d *DB) resultsFor(ctx context.Context, sessionID uuid.UUID) ([]session.ExerciseResult, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, exercise_id, exercise_name, completed_rounds, total_rounds, duration_sec
		 FROM exercise_results WHERE session_id = ? ORDER BY position`, sessionID.String())
	if err != nil {
		return nil, fmt.Errorf("querying exercise results: %w", err)
	}
	defer rows.Close()

	results := []session.ExerciseResult{}
	for rows.Next() {
		var r session.ExerciseResult
		if err := rows.Scan(&r.ID, &r.ExerciseID, &r.ExerciseName,
			&r.CompletedRounds, &r.TotalRounds, &r.DurationSeconds); err != nil {
			return nil, fmt.Errorf("scanning exercise result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exercise results: %w", err)
	}
	return results, nil
}
