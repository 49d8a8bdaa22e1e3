package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/lowaak/boxing-trainer/internal/events"
	"github.com/lowaak/boxing-trainer/internal/workout"
)

// ErrNoExercises is returned when asked to record a workout with no exercises
var ErrNoExercises = errors.New("no exercises to record")

// Store persists finished sessions
type Store interface {
	SaveSession(ctx context.Context, s WorkoutSession) error
}

// Recorder turns a workout's final state into a WorkoutSession and hands it
// to a Store
type Recorder struct {
	store  Store
	now    func() time.Time
	logger *log.Logger

	savedEvent *events.Event[WorkoutSession]
}

// NewRecorder creates a Recorder. now supplies the session date.
func NewRecorder(store Store, now func() time.Time, logger *log.Logger) *Recorder {
	if store == nil {
		panic("Recorder: store cannot be nil")
	}
	if now == nil {
		panic("Recorder: now cannot be nil")
	}
	if logger == nil {
		panic("Recorder: logger cannot be nil")
	}
	return &Recorder{
		store:      store,
		now:        now,
		logger:     logger,
		savedEvent: events.NewEvent[WorkoutSession](false),
	}
}

// ListenToSaved registers a callback run after every successful save
func (r *Recorder) ListenToSaved(callback func(WorkoutSession)) func() {
	return r.savedEvent.ListenFunc(callback)
}

// Build creates the session record. The duration is split evenly per
// exercise and weighted by planned rounds, using integer division.
func (r *Recorder) Build(exercises []workout.WorkoutExercise, durationSeconds int) (WorkoutSession, error) {
	if len(exercises) == 0 {
		return WorkoutSession{}, ErrNoExercises
	}
	durationSeconds = max(0, durationSeconds)
	perExercise := durationSeconds / len(exercises)

	results := make([]ExerciseResult, 0, len(exercises))
	for _, ex := range exercises {
		results = append(results, ExerciseResult{
			ID:              uuid.New(),
			ExerciseID:      ex.Exercise.ID,
			ExerciseName:    ex.Exercise.Name,
			CompletedRounds: ex.CompletedRounds,
			TotalRounds:     ex.Rounds,
			DurationSeconds: ex.Rounds * perExercise,
		})
	}

	return WorkoutSession{
		ID:                   uuid.New(),
		Date:                 r.now(),
		TotalDurationSeconds: durationSeconds,
		Results:              results,
	}, nil
}

// Save hands an already built record to the store. Safe to call again with
// the same record after a failure.
func (r *Recorder) Save(ctx context.Context, s WorkoutSession) error {
	if err := r.store.SaveSession(ctx, s); err != nil {
		r.logger.Printf("Recorder: Failed to save session %s: %v", s.ID, err)
		return fmt.Errorf("saving session %s: %w", s.ID, err)
	}
	r.logger.Printf("Recorder: Saved session %s (%d exercises, %ds)", s.ID, len(s.Results), s.TotalDurationSeconds)
	r.savedEvent.Notify(s)
	return nil
}

// Record builds and saves a session in one step. When saving fails the built
// record is still returned so the caller can retry with Save.
func (r *Recorder) Record(ctx context.Context, exercises []workout.WorkoutExercise, durationSeconds int) (WorkoutSession, error) {
	s, err := r.Build(exercises, durationSeconds)
	if err != nil {
		return WorkoutSession{}, err
	}
	return s, r.Save(ctx, s)
}

// RecordSummary records a workout summary
func (r *Recorder) RecordSummary(ctx context.Context, summary workout.Summary) (WorkoutSession, error) {
	return r.Record(ctx, summary.Exercises, summary.DurationSeconds)
}
