package workout

import (
	"github.com/lowaak/boxing-trainer/internal/timer"
)

// State is a snapshot of a workout for presentation
type State struct {
	SecondsRemaining  int
	Remaining         string // SecondsRemaining as "m:ss"
	Phase             timer.Phase
	RunState          timer.RunState
	WorkSeconds       int
	RestSeconds       int
	ExerciseIndex     int
	RoundIndex        int
	TotalRounds       int
	CurrentTotalRound int
	Exercises         []WorkoutExercise
	Started           bool
	Completed         bool
}

// CurrentExercise returns the exercise under the cursor, if any
func (s State) CurrentExercise() (WorkoutExercise, bool) {
	if s.ExerciseIndex < 0 || s.ExerciseIndex >= len(s.Exercises) {
		return WorkoutExercise{}, false
	}
	return s.Exercises[s.ExerciseIndex], true
}

// Progress is the fraction of all planned rounds that have been completed
func (s State) Progress() float64 {
	done := 0
	for _, ex := range s.Exercises {
		done += min(ex.CompletedRounds, ex.Rounds)
	}
	return float64(done) / float64(s.TotalRounds)
}

// Summary is what a finished or abandoned workout hands to the recorder
type Summary struct {
	Exercises       []WorkoutExercise
	DurationSeconds int
	Completed       bool
}
