package timer

import (
	"sync"
	"time"
)

// ManualClock is a Clock driven by hand, for tests and replays. Ticks are
// delivered only when Fire is called on an armed ticker.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*ManualTicker
}

// NewManualClock creates a clock reading start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the wall time forward without firing any ticker
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func (c *ManualClock) NewTicker() Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &ManualTicker{clock: c, ch: make(chan time.Time)}
	c.tickers = append(c.tickers, t)
	return t
}

// Ticker returns the i-th ticker created by this clock
func (c *ManualClock) Ticker(i int) *ManualTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.tickers) {
		return nil
	}
	return c.tickers[i]
}

// ManualTicker is the Ticker handed out by ManualClock
type ManualTicker struct {
	clock  *ManualClock
	ch     chan time.Time
	mu     sync.Mutex
	armed  bool
	period time.Duration
	resets int
}

func (t *ManualTicker) C() <-chan time.Time { return t.ch }

func (t *ManualTicker) Reset(d time.Duration) {
	t.mu.Lock()
	t.armed = true
	t.period = d
	t.resets++
	t.mu.Unlock()
}

func (t *ManualTicker) Stop() {
	t.mu.Lock()
	t.armed = false
	t.mu.Unlock()
}

// Armed reports whether the ticker would currently deliver ticks
func (t *ManualTicker) Armed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.armed
}

// Resets reports how many times the ticker has been armed
func (t *ManualTicker) Resets() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resets
}

// Fire advances the clock by one period and delivers a tick. It blocks until
// the consumer receives it. Returns false, delivering nothing, when the
// ticker is not armed.
func (t *ManualTicker) Fire() bool {
	t.mu.Lock()
	armed, period := t.armed, t.period
	t.mu.Unlock()
	if !armed {
		return false
	}
	t.clock.Advance(period)
	t.ch <- t.clock.Now()
	return true
}
