package workout

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lowaak/boxing-trainer/internal/catalog"
	"github.com/lowaak/boxing-trainer/internal/timer"
)

// ErrStarted is returned when the exercise list is edited after the run began
var ErrStarted = errors.New("workout already started")

// Options configures a Sequencer
type Options struct {
	WorkSeconds int
	RestSeconds int
	// RestBetweenExercises inserts a rest phase between the last round of an
	// exercise and the first round of the next one
	RestBetweenExercises bool
}

// DefaultOptions are three-minute rounds with one minute of rest
func DefaultOptions() Options {
	return Options{
		WorkSeconds: timer.DefaultWorkSeconds,
		RestSeconds: timer.DefaultRestSeconds,
	}
}

// Sequencer drives one Engine through an ordered list of exercises.
//
// Round policy: a rest phase separates consecutive rounds of the same
// exercise. The exercise cursor only moves once all of an exercise's rounds
// are done. A zero rest duration skips the rest phase.
//
// Like Engine, a Sequencer is single-owner and not safe for concurrent use;
// Runner provides the goroutine that owns it.
type Sequencer struct {
	engine *timer.Engine
	clock  timer.Clock
	logger *log.Logger
	opts   Options

	exercises     []WorkoutExercise
	exerciseIndex int
	roundIndex    int

	started         bool
	completed       bool
	sessionStart    time.Time
	sessionDuration int

	onComplete func(Summary)
}

// NewSequencer creates an empty, stopped sequencer
func NewSequencer(clock timer.Clock, opts Options, logger *log.Logger) *Sequencer {
	if clock == nil {
		panic("Sequencer: clock cannot be nil")
	}
	if logger == nil {
		panic("Sequencer: logger cannot be nil")
	}
	s := &Sequencer{
		engine: timer.NewEngine(clock.NewTicker(), opts.WorkSeconds, opts.RestSeconds),
		clock:  clock,
		logger: logger,
		opts:   opts,
	}
	s.engine.OnBoundary(s.handleBoundary)
	return s
}

// OnComplete installs the callback run when the last round finishes
func (s *Sequencer) OnComplete(fn func(Summary)) {
	s.onComplete = fn
}

// Add appends an exercise to the plan. Only allowed before the first Start.
func (s *Sequencer) Add(ex catalog.Exercise, rounds int) (WorkoutExercise, error) {
	if s.started {
		return WorkoutExercise{}, ErrStarted
	}
	we := NewWorkoutExercise(ex, rounds)
	s.exercises = append(s.exercises, we)
	s.logger.Printf("Sequencer: Added %s x%d", ex.Name, we.Rounds)
	return we, nil
}

// Remove drops the exercise at index. Only allowed before the first Start.
func (s *Sequencer) Remove(index int) error {
	if s.started {
		return ErrStarted
	}
	if index < 0 || index >= len(s.exercises) {
		return fmt.Errorf("exercise index %d out of range [0, %d)", index, len(s.exercises))
	}
	s.exercises = append(s.exercises[:index], s.exercises[index+1:]...)
	if s.exerciseIndex >= len(s.exercises) {
		s.exerciseIndex = 0
	}
	return nil
}

// Exercises returns a copy of the plan with current progress
func (s *Sequencer) Exercises() []WorkoutExercise {
	result := make([]WorkoutExercise, len(s.exercises))
	copy(result, s.exercises)
	return result
}

// Start begins or resumes the countdown
func (s *Sequencer) Start() {
	if len(s.exercises) == 0 {
		s.logger.Printf("Sequencer: No exercises planned")
		return
	}
	if s.completed {
		s.logger.Printf("Sequencer: Workout already completed - reset to run it again")
		return
	}
	if !s.started {
		s.started = true
		s.sessionStart = s.clock.Now()
		s.logger.Printf("Sequencer: Workout started (%d exercises, %d rounds)", len(s.exercises), s.TotalRounds())
	}
	s.engine.Start()
}

// Pause freezes the countdown
func (s *Sequencer) Pause() {
	s.engine.Pause()
}

// Resume continues a paused countdown
func (s *Sequencer) Resume() {
	if s.engine.RunState() == timer.RunStatePaused {
		s.Start()
	}
}

// Toggle pauses a running countdown and starts any other
func (s *Sequencer) Toggle() {
	if s.engine.RunState() == timer.RunStateRunning {
		s.Pause()
		return
	}
	s.Start()
}

// Tick forwards one tick to the engine
func (s *Sequencer) Tick() {
	s.engine.Tick()
}

// Ticks is the engine's tick channel
func (s *Sequencer) Ticks() <-chan time.Time {
	return s.engine.Ticks()
}

func (s *Sequencer) handleBoundary(phase timer.Phase) {
	if s.exerciseIndex >= len(s.exercises) {
		return
	}

	if phase == timer.PhaseRest {
		s.engine.Advance(timer.PhaseWork, s.engine.WorkSeconds())
		return
	}

	current := &s.exercises[s.exerciseIndex]
	if current.CompletedRounds < current.Rounds {
		current.CompletedRounds++
	}
	s.roundIndex++

	if s.roundIndex < current.Rounds {
		s.logger.Printf("Sequencer: %s round %d/%d done", current.Exercise.Name, s.roundIndex, current.Rounds)
		s.enterRestOrWork()
		return
	}

	s.roundIndex = 0
	s.exerciseIndex++

	if s.exerciseIndex >= len(s.exercises) {
		s.complete()
		return
	}

	s.logger.Printf("Sequencer: Moving to %s", s.exercises[s.exerciseIndex].Exercise.Name)
	if s.opts.RestBetweenExercises {
		s.enterRestOrWork()
	} else {
		s.engine.Advance(timer.PhaseWork, s.engine.WorkSeconds())
	}
}

func (s *Sequencer) enterRestOrWork() {
	if s.engine.RestSeconds() == 0 {
		s.engine.Advance(timer.PhaseWork, s.engine.WorkSeconds())
		return
	}
	s.engine.Advance(timer.PhaseRest, s.engine.RestSeconds())
}

func (s *Sequencer) complete() {
	s.engine.ResetTo(timer.PhaseWork, s.engine.WorkSeconds())
	s.exerciseIndex = 0
	s.roundIndex = 0
	s.completed = true
	s.sessionDuration = s.elapsedSeconds()
	s.logger.Printf("Sequencer: Workout complete in %s", timer.FormatSeconds(s.sessionDuration))

	if s.onComplete != nil {
		s.onComplete(s.Summary())
	}
}

func (s *Sequencer) elapsedSeconds() int {
	if !s.started {
		return 0
	}
	return int(s.clock.Now().Sub(s.sessionStart) / time.Second)
}

// JumpTo moves the cursor to the first round of exercise index. Out of range
// requests are ignored. Completed rounds are left untouched.
func (s *Sequencer) JumpTo(index int) bool {
	if index < 0 || index >= len(s.exercises) {
		return false
	}
	s.exerciseIndex = index
	s.roundIndex = 0
	return true
}

// NextExercise moves the cursor forward one exercise
func (s *Sequencer) NextExercise() bool {
	return s.JumpTo(s.exerciseIndex + 1)
}

// PreviousExercise moves the cursor back one exercise
func (s *Sequencer) PreviousExercise() bool {
	return s.JumpTo(s.exerciseIndex - 1)
}

// ResetCurrentRound stops the countdown and refills it for the current phase
func (s *Sequencer) ResetCurrentRound() {
	phase := s.engine.Phase()
	s.engine.ResetTo(phase, s.engine.DurationFor(phase))
}

// ResetWorkout stops the countdown and rewinds to the first work round. All
// round progress and the session clock are cleared, so the next Start begins
// a new run and the plan can be edited again.
func (s *Sequencer) ResetWorkout() {
	s.engine.ResetTo(timer.PhaseWork, s.engine.WorkSeconds())
	s.exerciseIndex = 0
	s.roundIndex = 0
	for i := range s.exercises {
		s.exercises[i].CompletedRounds = 0
	}
	s.started = false
	s.completed = false
	s.sessionStart = time.Time{}
	s.sessionDuration = 0
}

// SetDurations changes work and rest lengths
func (s *Sequencer) SetDurations(workSeconds, restSeconds int) {
	s.engine.Configure(workSeconds, restSeconds)
	s.logger.Printf("Sequencer: Durations set to work %s, rest %s",
		timer.FormatSeconds(s.engine.WorkSeconds()), timer.FormatSeconds(s.engine.RestSeconds()))
}

// Close stops the tick source for good
func (s *Sequencer) Close() {
	s.engine.Close()
}

// TotalRounds is the sum of planned rounds, never less than one
func (s *Sequencer) TotalRounds() int {
	total := 0
	for _, ex := range s.exercises {
		total += ex.Rounds
	}
	return max(1, total)
}

// CurrentTotalRound is the 1-based position of the current round across the
// whole workout
func (s *Sequencer) CurrentTotalRound() int {
	total := s.roundIndex + 1
	for i := 0; i < s.exerciseIndex && i < len(s.exercises); i++ {
		total += s.exercises[i].Rounds
	}
	return total
}

func (s *Sequencer) ExerciseIndex() int { return s.exerciseIndex }
func (s *Sequencer) RoundIndex() int    { return s.roundIndex }
func (s *Sequencer) Completed() bool    { return s.completed }
func (s *Sequencer) Engine() *timer.Engine {
	return s.engine
}

// Snapshot captures the current state
func (s *Sequencer) Snapshot() State {
	return State{
		SecondsRemaining:  s.engine.SecondsRemaining(),
		Remaining:         s.engine.FormatRemaining(),
		Phase:             s.engine.Phase(),
		RunState:          s.engine.RunState(),
		WorkSeconds:       s.engine.WorkSeconds(),
		RestSeconds:       s.engine.RestSeconds(),
		ExerciseIndex:     s.exerciseIndex,
		RoundIndex:        s.roundIndex,
		TotalRounds:       s.TotalRounds(),
		CurrentTotalRound: s.CurrentTotalRound(),
		Exercises:         s.Exercises(),
		Started:           s.started,
		Completed:         s.completed,
	}
}

// Summary reports progress so far. For a completed workout the duration is
// frozen at completion, otherwise it is the time since the first Start.
func (s *Sequencer) Summary() Summary {
	duration := s.sessionDuration
	if !s.completed {
		duration = s.elapsedSeconds()
	}
	return Summary{
		Exercises:       s.Exercises(),
		DurationSeconds: duration,
		Completed:       s.completed,
	}
}

// Progress is the fraction of all planned rounds that have been completed
func (s *Sequencer) Progress() float64 {
	return s.Snapshot().Progress()
}
