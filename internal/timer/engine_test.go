package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, work, rest int) (*Engine, *ManualTicker) {
	t.Helper()
	clock := NewManualClock(time.Date(2025, 5, 15, 10, 0, 0, 0, time.UTC))
	e := NewEngine(clock.NewTicker(), work, rest)
	ticker := clock.Ticker(0)
	require.NotNil(t, ticker)
	return e, ticker
}

func TestNewEngine_Defaults(t *testing.T) {
	e, ticker := newTestEngine(t, DefaultWorkSeconds, DefaultRestSeconds)

	assert.Equal(t, PhaseWork, e.Phase())
	assert.Equal(t, RunStateStopped, e.RunState())
	assert.Equal(t, 180, e.SecondsRemaining())
	assert.Equal(t, "3:00", e.FormatRemaining())
	assert.False(t, ticker.Armed())
}

func TestNewEngine_NilTickerPanics(t *testing.T) {
	assert.Panics(t, func() { NewEngine(nil, 1, 1) })
}

func TestEngine_BoundaryOnThirdTick(t *testing.T) {
	e, _ := newTestEngine(t, 3, 1)

	var boundaries []Phase
	e.OnBoundary(func(p Phase) { boundaries = append(boundaries, p) })

	e.Start()
	e.Tick()
	e.Tick()
	assert.Empty(t, boundaries, "boundary must not fire before the countdown ends")
	assert.Equal(t, 1, e.SecondsRemaining())

	e.Tick()
	assert.Equal(t, []Phase{PhaseWork}, boundaries)
	assert.Equal(t, 0, e.SecondsRemaining())
}

func TestEngine_ZeroWorkDurationSignalsOnFirstTick(t *testing.T) {
	e, _ := newTestEngine(t, 0, 10)

	fired := 0
	e.OnBoundary(func(Phase) { fired++ })

	e.Start()
	assert.Equal(t, 0, fired, "starting alone does not signal")
	e.Tick()
	assert.Equal(t, 1, fired)
}

func TestEngine_NegativeDurationsClampToZero(t *testing.T) {
	e, _ := newTestEngine(t, -5, -1)
	assert.Equal(t, 0, e.WorkSeconds())
	assert.Equal(t, 0, e.RestSeconds())
	assert.Equal(t, 0, e.SecondsRemaining())
}

func TestEngine_StartTwiceArmsOnce(t *testing.T) {
	e, ticker := newTestEngine(t, 10, 5)

	e.Start()
	e.Start()

	assert.Equal(t, 1, ticker.Resets(), "a running engine must not re-arm its tick source")
	assert.True(t, ticker.Armed())
	assert.Equal(t, RunStateRunning, e.RunState())
}

func TestEngine_PauseFreezesCountdown(t *testing.T) {
	e, ticker := newTestEngine(t, 10, 5)

	e.Start()
	e.Tick()
	e.Pause()

	assert.Equal(t, RunStatePaused, e.RunState())
	assert.False(t, ticker.Armed())
	assert.False(t, ticker.Fire(), "a paused ticker delivers nothing")

	// Stale ticks that raced the pause are discarded
	e.Tick()
	e.Tick()
	assert.Equal(t, 9, e.SecondsRemaining())
}

func TestEngine_PauseWhenNotRunningIsNoop(t *testing.T) {
	e, _ := newTestEngine(t, 10, 5)

	e.Pause()
	assert.Equal(t, RunStateStopped, e.RunState())

	e.Start()
	e.Pause()
	e.Pause()
	assert.Equal(t, RunStatePaused, e.RunState())
}

func TestEngine_Resume(t *testing.T) {
	e, ticker := newTestEngine(t, 10, 5)

	e.Resume()
	assert.Equal(t, RunStateStopped, e.RunState(), "resume only applies to a paused engine")

	e.Start()
	e.Pause()
	e.Resume()
	assert.Equal(t, RunStateRunning, e.RunState())
	assert.True(t, ticker.Armed())
	assert.Equal(t, 2, ticker.Resets())
}

func TestEngine_ResetTo(t *testing.T) {
	e, ticker := newTestEngine(t, 10, 5)
	e.Start()

	e.ResetTo(PhaseRest, 42)

	assert.Equal(t, PhaseRest, e.Phase())
	assert.Equal(t, 42, e.SecondsRemaining())
	assert.Equal(t, RunStateStopped, e.RunState())
	assert.False(t, ticker.Armed())
}

func TestEngine_AdvanceKeepsRunning(t *testing.T) {
	e, ticker := newTestEngine(t, 1, 5)
	e.OnBoundary(func(p Phase) {
		if p == PhaseWork {
			e.Advance(PhaseRest, e.DurationFor(PhaseRest))
		}
	})

	e.Start()
	e.Tick()

	assert.Equal(t, PhaseRest, e.Phase())
	assert.Equal(t, 5, e.SecondsRemaining())
	assert.Equal(t, RunStateRunning, e.RunState())
	assert.True(t, ticker.Armed())
	assert.Equal(t, 1, ticker.Resets())
}

func TestEngine_ConfigureWhileStopped(t *testing.T) {
	e, _ := newTestEngine(t, 180, 60)

	e.Configure(120, 30)
	assert.Equal(t, 120, e.SecondsRemaining())

	e.ResetTo(PhaseRest, 60)
	e.Configure(120, 45)
	assert.Equal(t, 45, e.SecondsRemaining())
}

func TestEngine_ConfigureWhileRunningKeepsCountdown(t *testing.T) {
	e, _ := newTestEngine(t, 180, 60)
	e.Start()
	e.Tick()

	e.Configure(120, 30)
	assert.Equal(t, 179, e.SecondsRemaining())
	assert.Equal(t, 120, e.DurationFor(PhaseWork))
}

func TestEngine_Close(t *testing.T) {
	e, ticker := newTestEngine(t, 10, 5)
	e.Start()

	e.Close()

	assert.False(t, ticker.Armed())
	e.Tick()
	assert.Equal(t, 10, e.SecondsRemaining())
}

func TestPhaseAndRunStateStrings(t *testing.T) {
	assert.Equal(t, "work", PhaseWork.String())
	assert.Equal(t, "rest", PhaseRest.String())
	assert.Equal(t, "stopped", RunStateStopped.String())
	assert.Equal(t, "running", RunStateRunning.String())
	assert.Equal(t, "paused", RunStatePaused.String())
}
