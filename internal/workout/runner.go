package workout

import (
	"errors"
	"log"
	"sync"

	"github.com/lowaak/boxing-trainer/internal/catalog"
	"github.com/lowaak/boxing-trainer/internal/events"
	"github.com/lowaak/boxing-trainer/internal/go_func_utils"
)

// ErrShutdown is returned by commands sent after Shutdown
var ErrShutdown = errors.New("workout runner shut down")

// runnerCommand is a closure applied to the sequencer by the loop goroutine
type runnerCommand struct {
	apply   func(seq *Sequencer)
	applied chan struct{} // closed once applied and published
}

// Runner owns a Sequencer on a dedicated goroutine. Commands and ticks are
// applied one at a time by that goroutine; every public method waits until
// its command has been applied.
type Runner struct {
	seq    *Sequencer
	logger *log.Logger

	stateEvent    *events.Event[State]
	completeEvent *events.Event[Summary]
	finalSummary  Summary // written by the loop on exit

	// Goroutine management
	cmdChan      chan runnerCommand
	doneChan     chan struct{} // Closed to signal shutdown
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// NewRunner takes ownership of seq and starts its goroutine. seq must not be
// used directly afterwards.
func NewRunner(seq *Sequencer, logger *log.Logger) *Runner {
	if seq == nil {
		panic("Runner: sequencer cannot be nil")
	}
	if logger == nil {
		panic("Runner: logger cannot be nil")
	}

	r := &Runner{
		seq:           seq,
		logger:        logger,
		stateEvent:    events.NewEvent[State](true),
		completeEvent: events.NewEvent[Summary](false),
		cmdChan:       make(chan runnerCommand),
		doneChan:      make(chan struct{}),
	}
	seq.OnComplete(func(summary Summary) {
		r.completeEvent.Notify(summary)
	})
	r.stateEvent.Notify(seq.Snapshot())

	r.wg.Add(1)
	go_func_utils.SafeGo(logger, "Runner", r.runLoop)

	return r
}

// ListenToState registers a channel receiving a snapshot after every change.
// The latest snapshot is replayed on registration.
func (r *Runner) ListenToState(ch chan<- State) func() {
	return r.stateEvent.ListenChan(ch)
}

// ListenToComplete registers a channel receiving the summary of every
// completed workout
func (r *Runner) ListenToComplete(ch chan<- Summary) func() {
	return r.completeEvent.ListenChan(ch)
}

// do runs fn on the loop goroutine and waits until it has been applied and
// the resulting state published. Returns false once the runner has shut down.
func (r *Runner) do(fn func(seq *Sequencer)) bool {
	cmd := runnerCommand{apply: fn, applied: make(chan struct{})}
	select {
	case r.cmdChan <- cmd:
	case <-r.doneChan:
		return false
	}
	<-cmd.applied
	return true
}

func (r *Runner) Start()  { r.do((*Sequencer).Start) }
func (r *Runner) Pause()  { r.do((*Sequencer).Pause) }
func (r *Runner) Resume() { r.do((*Sequencer).Resume) }
func (r *Runner) Toggle() { r.do((*Sequencer).Toggle) }

func (r *Runner) ResetCurrentRound() { r.do((*Sequencer).ResetCurrentRound) }
func (r *Runner) ResetWorkout()      { r.do((*Sequencer).ResetWorkout) }

// JumpTo moves to exercise index, see Sequencer.JumpTo
func (r *Runner) JumpTo(index int) bool {
	var moved bool
	r.do(func(seq *Sequencer) { moved = seq.JumpTo(index) })
	return moved
}

func (r *Runner) NextExercise() bool {
	var moved bool
	r.do(func(seq *Sequencer) { moved = seq.NextExercise() })
	return moved
}

func (r *Runner) PreviousExercise() bool {
	var moved bool
	r.do(func(seq *Sequencer) { moved = seq.PreviousExercise() })
	return moved
}

func (r *Runner) SetDurations(workSeconds, restSeconds int) {
	r.do(func(seq *Sequencer) { seq.SetDurations(workSeconds, restSeconds) })
}

// Add plans another exercise, see Sequencer.Add
func (r *Runner) Add(ex catalog.Exercise, rounds int) (WorkoutExercise, error) {
	var (
		we  WorkoutExercise
		err error
	)
	if !r.do(func(seq *Sequencer) { we, err = seq.Add(ex, rounds) }) {
		return WorkoutExercise{}, ErrShutdown
	}
	return we, err
}

// Remove drops a planned exercise, see Sequencer.Remove
func (r *Runner) Remove(index int) error {
	var err error
	if !r.do(func(seq *Sequencer) { err = seq.Remove(index) }) {
		return ErrShutdown
	}
	return err
}

// State returns the latest snapshot
func (r *Runner) State() State {
	state, _ := r.stateEvent.Last()
	return state
}

// Summary reports progress so far, for saving an abandoned workout
func (r *Runner) Summary() Summary {
	var summary Summary
	if !r.do(func(seq *Sequencer) { summary = seq.Summary() }) {
		r.wg.Wait()
		return r.finalSummary
	}
	return summary
}

// Shutdown stops the loop and the tick source. No tick is applied afterwards.
// Safe to call multiple times - only the first call has effect
func (r *Runner) Shutdown() {
	r.shutdownOnce.Do(func() {
		r.logger.Printf("Runner: Shutting down")
		close(r.doneChan)
		r.wg.Wait()
		r.logger.Printf("Runner: Shutdown complete")
	})
}

func (r *Runner) runLoop() {
	defer r.wg.Done()

	for {
		select {
		case <-r.doneChan:
			r.seq.Close()
			r.finalSummary = r.seq.Summary()
			r.logger.Printf("Runner: Goroutine exiting")
			return

		case cmd := <-r.cmdChan:
			cmd.apply(r.seq)
			r.stateEvent.Notify(r.seq.Snapshot())
			close(cmd.applied)

		case <-r.seq.Ticks():
			r.seq.Tick()
			r.stateEvent.Notify(r.seq.Snapshot())
		}
	}
}
