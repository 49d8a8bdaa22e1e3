package timer

import "time"

// Phase is the work/rest sub-state of a round
type Phase int

const (
	PhaseWork Phase = iota
	PhaseRest
)

func (p Phase) String() string {
	switch p {
	case PhaseWork:
		return "work"
	case PhaseRest:
		return "rest"
	default:
		return "unknown"
	}
}

// RunState governs whether the countdown is advancing
type RunState int

const (
	RunStateStopped RunState = iota
	RunStateRunning
	RunStatePaused
)

func (s RunState) String() string {
	switch s {
	case RunStateStopped:
		return "stopped"
	case RunStateRunning:
		return "running"
	case RunStatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Default durations, one three-minute round and one minute of rest
const (
	DefaultWorkSeconds = 180
	DefaultRestSeconds = 60
)

// TickInterval is the countdown resolution
const TickInterval = time.Second

// Engine is a single countdown with a work/rest phase. It knows nothing about
// exercises or rounds: when the countdown reaches zero it reports the phase
// boundary to its owner, which decides what comes next.
//
// Engine is not safe for concurrent use. Its owner must serialise calls,
// including delivery of ticks read from Ticks().
type Engine struct {
	ticker     Ticker
	onBoundary func(Phase)

	workSeconds int
	restSeconds int

	secondsRemaining int
	phase            Phase
	runState         RunState
}

// NewEngine creates a stopped engine in the work phase. Negative durations
// are treated as zero.
func NewEngine(ticker Ticker, workSeconds, restSeconds int) *Engine {
	if ticker == nil {
		panic("Engine: ticker cannot be nil")
	}
	e := &Engine{
		ticker:      ticker,
		workSeconds: nonNegative(workSeconds),
		restSeconds: nonNegative(restSeconds),
		phase:       PhaseWork,
		runState:    RunStateStopped,
	}
	e.secondsRemaining = e.workSeconds
	return e
}

// OnBoundary installs the handler called when the countdown reaches zero
func (e *Engine) OnBoundary(fn func(Phase)) {
	e.onBoundary = fn
}

// Ticks is the channel the owner must read and forward to Tick
func (e *Engine) Ticks() <-chan time.Time {
	return e.ticker.C()
}

// Start arms the tick source. A running engine is left untouched so that
// repeated calls never create a second countdown.
func (e *Engine) Start() {
	if e.runState == RunStateRunning {
		return
	}
	e.runState = RunStateRunning
	e.ticker.Reset(TickInterval)
}

// Pause disarms the tick source. No-op unless running.
func (e *Engine) Pause() {
	if e.runState != RunStateRunning {
		return
	}
	e.ticker.Stop()
	e.runState = RunStatePaused
}

// Resume restarts a paused engine. No-op otherwise.
func (e *Engine) Resume() {
	if e.runState != RunStatePaused {
		return
	}
	e.Start()
}

// Tick advances the countdown by one second. Ticks arriving while the engine
// is not running are discarded.
func (e *Engine) Tick() {
	if e.runState != RunStateRunning {
		return
	}
	if e.secondsRemaining > 0 {
		e.secondsRemaining--
	}
	if e.secondsRemaining == 0 && e.onBoundary != nil {
		e.onBoundary(e.phase)
	}
}

// ResetTo stops the engine and loads a fresh countdown for phase
func (e *Engine) ResetTo(phase Phase, seconds int) {
	e.ticker.Stop()
	e.runState = RunStateStopped
	e.phase = phase
	e.secondsRemaining = nonNegative(seconds)
}

// Advance loads a fresh countdown for phase without touching the run state
func (e *Engine) Advance(phase Phase, seconds int) {
	e.phase = phase
	e.secondsRemaining = nonNegative(seconds)
}

// Configure replaces the work and rest durations. A stopped engine picks up
// the new duration of its current phase immediately.
func (e *Engine) Configure(workSeconds, restSeconds int) {
	e.workSeconds = nonNegative(workSeconds)
	e.restSeconds = nonNegative(restSeconds)
	if e.runState == RunStateStopped {
		e.secondsRemaining = e.DurationFor(e.phase)
	}
}

// Close disarms the tick source for good
func (e *Engine) Close() {
	e.ticker.Stop()
	if e.runState == RunStateRunning {
		e.runState = RunStatePaused
	}
}

// DurationFor returns the configured length of phase in seconds
func (e *Engine) DurationFor(phase Phase) int {
	if phase == PhaseRest {
		return e.restSeconds
	}
	return e.workSeconds
}

func (e *Engine) SecondsRemaining() int { return e.secondsRemaining }
func (e *Engine) Phase() Phase          { return e.phase }
func (e *Engine) RunState() RunState    { return e.runState }
func (e *Engine) WorkSeconds() int      { return e.workSeconds }
func (e *Engine) RestSeconds() int      { return e.restSeconds }

// FormatRemaining renders the remaining time as "m:ss"
func (e *Engine) FormatRemaining() string {
	return FormatSeconds(e.secondsRemaining)
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
