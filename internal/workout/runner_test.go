package workout

import (
	"bytes"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/boxing-trainer/internal/timer"
)

// syncBuffer is a log sink safe for use from the runner goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestRunner(t *testing.T, opts Options) (*Runner, *timer.ManualTicker, *syncBuffer) {
	t.Helper()
	logs := &syncBuffer{}
	clock := timer.NewManualClock(time.Date(2025, 5, 15, 10, 0, 0, 0, time.UTC))
	seq := NewSequencer(clock, opts, log.New(logs, "", 0))
	ticker := clock.Ticker(0)
	require.NotNil(t, ticker)

	r := NewRunner(seq, log.New(logs, "", 0))
	t.Cleanup(r.Shutdown)
	return r, ticker, logs
}

func TestNewRunner_NilDepsPanic(t *testing.T) {
	logger := log.New(&bytes.Buffer{}, "", 0)
	assert.Panics(t, func() { NewRunner(nil, logger) })
}

func TestRunner_InitialStateIsPublished(t *testing.T) {
	r, _, _ := newTestRunner(t, DefaultOptions())

	state := r.State()
	assert.Equal(t, 180, state.SecondsRemaining)
	assert.Equal(t, "3:00", state.Remaining)

	ch := make(chan State, 1)
	unsubscribe := r.ListenToState(ch)
	defer unsubscribe()

	select {
	case replayed := <-ch:
		assert.Equal(t, state.SecondsRemaining, replayed.SecondsRemaining)
	default:
		t.Fatal("latest state should be replayed to a new listener")
	}
}

func TestRunner_TicksDriveTheSequencer(t *testing.T) {
	r, ticker, _ := newTestRunner(t, Options{WorkSeconds: 3, RestSeconds: 1})

	_, err := r.Add(exA, 2)
	require.NoError(t, err)
	_, err = r.Add(exB, 1)
	require.NoError(t, err)

	done := make(chan Summary, 1)
	unsubscribe := r.ListenToComplete(done)
	defer unsubscribe()

	r.Start()
	require.True(t, ticker.Armed())

	for i := 0; i < 3; i++ {
		require.True(t, ticker.Fire())
	}
	// State is read through the loop so every fired tick has been applied
	r.Pause()
	state := r.State()
	assert.Equal(t, timer.PhaseRest, state.Phase)
	assert.Equal(t, 1, state.RoundIndex)
	assert.False(t, ticker.Fire(), "no tick while paused")

	r.Resume()
	for i := 0; i < 1+3+3; i++ {
		require.True(t, ticker.Fire())
	}

	select {
	case summary := <-done:
		assert.True(t, summary.Completed)
		assert.Equal(t, 10, summary.DurationSeconds)
	case <-time.After(time.Second):
		t.Fatal("workout did not complete")
	}
	assert.False(t, ticker.Armed())
}

func TestRunner_Navigation(t *testing.T) {
	r, _, _ := newTestRunner(t, DefaultOptions())
	_, _ = r.Add(exA, 1)
	_, _ = r.Add(exB, 1)

	assert.True(t, r.NextExercise())
	assert.Equal(t, 1, r.State().ExerciseIndex)
	assert.False(t, r.JumpTo(5))
	assert.Equal(t, 1, r.State().ExerciseIndex)
	assert.True(t, r.PreviousExercise())
	assert.True(t, r.JumpTo(1))

	r.SetDurations(60, 20)
	assert.Equal(t, 60, r.State().SecondsRemaining)

	r.ResetWorkout()
	assert.Equal(t, 0, r.State().ExerciseIndex)

	require.NoError(t, r.Remove(1))
	assert.Len(t, r.State().Exercises, 1)
}

func TestRunner_ToggleAndResetRound(t *testing.T) {
	r, ticker, _ := newTestRunner(t, Options{WorkSeconds: 10, RestSeconds: 5})
	_, _ = r.Add(exA, 1)

	r.Toggle()
	require.True(t, ticker.Fire())
	r.Toggle()
	assert.Equal(t, timer.RunStatePaused, r.State().RunState)
	assert.Equal(t, 9, r.State().SecondsRemaining)

	r.ResetCurrentRound()
	assert.Equal(t, 10, r.State().SecondsRemaining)
	assert.Equal(t, timer.RunStateStopped, r.State().RunState)
}

func TestRunner_ShutdownStopsTicks(t *testing.T) {
	r, ticker, logs := newTestRunner(t, Options{WorkSeconds: 10, RestSeconds: 5})
	_, _ = r.Add(exA, 1)
	r.Start()
	require.True(t, ticker.Fire())

	r.Shutdown()
	r.Shutdown()

	assert.False(t, ticker.Armed())
	assert.False(t, ticker.Fire(), "no tick after shutdown")

	r.Start()
	_, err := r.Add(exB, 1)
	assert.ErrorIs(t, err, ErrShutdown)
	assert.Equal(t, 1, r.Summary().DurationSeconds)
	assert.Contains(t, logs.String(), "Runner: Shutdown complete")
}
