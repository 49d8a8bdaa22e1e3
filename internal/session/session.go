package session

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutSession is the persisted record of one finished or abandoned
// workout. It is never changed after it has been saved.
type WorkoutSession struct {
	ID                   uuid.UUID        `json:"id"`
	Date                 time.Time        `json:"date"`
	TotalDurationSeconds int              `json:"totalDurationSeconds"`
	Results              []ExerciseResult `json:"results"`
}

// ExerciseResult is the outcome of one planned exercise
type ExerciseResult struct {
	ID              uuid.UUID `json:"id"`
	ExerciseID      string    `json:"exerciseId"`
	ExerciseName    string    `json:"exerciseName"`
	CompletedRounds int       `json:"completedRounds"`
	TotalRounds     int       `json:"totalRounds"`
	DurationSeconds int       `json:"durationSeconds"`
}

// CompletedRounds sums completed rounds across results
func (s WorkoutSession) CompletedRounds() int {
	total := 0
	for _, r := range s.Results {
		total += r.CompletedRounds
	}
	return total
}

// TotalRounds sums planned rounds across results
func (s WorkoutSession) TotalRounds() int {
	total := 0
	for _, r := range s.Results {
		total += r.TotalRounds
	}
	return total
}
