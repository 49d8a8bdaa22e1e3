package workout

import (
	"github.com/google/uuid"

	"github.com/lowaak/boxing-trainer/internal/catalog"
)

// WorkoutExercise is one catalog exercise planned for this session with a
// round count. CompletedRounds is only ever changed by the Sequencer.
type WorkoutExercise struct {
	ID              uuid.UUID
	Exercise        catalog.Exercise
	Rounds          int
	CompletedRounds int
}

// NewWorkoutExercise plans ex for rounds rounds (at least one)
func NewWorkoutExercise(ex catalog.Exercise, rounds int) WorkoutExercise {
	if rounds < 1 {
		rounds = 1
	}
	return WorkoutExercise{
		ID:       uuid.New(),
		Exercise: ex,
		Rounds:   rounds,
	}
}

// IsCompleted reports whether every planned round has been done
func (w WorkoutExercise) IsCompleted() bool {
	return w.CompletedRounds >= w.Rounds
}

// RemainingRounds is the number of planned rounds not yet done
func (w WorkoutExercise) RemainingRounds() int {
	return max(0, w.Rounds-w.CompletedRounds)
}
