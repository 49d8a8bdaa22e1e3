package timer

import "time"

// Ticker is a restartable periodic tick source. It is created stopped.
type Ticker interface {
	// C delivers ticks while the ticker is armed
	C() <-chan time.Time
	// Reset arms the ticker with period d, discarding any previous schedule
	Reset(d time.Duration)
	// Stop disarms the ticker. No tick is delivered after Stop returns.
	Stop()
}

// Clock provides wall time and tick sources
type Clock interface {
	Now() time.Time
	NewTicker() Ticker
}

// SystemClock is the Clock backed by the time package
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) NewTicker() Ticker {
	t := time.NewTicker(time.Second)
	t.Stop() // start stopped, armed by Reset
	return &systemTicker{t: t}
}

type systemTicker struct {
	t *time.Ticker
}

func (s *systemTicker) C() <-chan time.Time { return s.t.C }

func (s *systemTicker) Reset(d time.Duration) { s.t.Reset(d) }

// Stop also drains a tick that may already sit in the channel buffer
func (s *systemTicker) Stop() {
	s.t.Stop()
	select {
	case <-s.t.C:
	default:
	}
}
