package events

import (
	"sync"
)

// Event is a typed pub/sub hub. Listeners are either callbacks, invoked
// synchronously from Notify, or channels, which receive non-blocking sends.
// T is the type of the value passed to listeners.
type Event[T any] struct {
	mu          sync.RWMutex
	funcs       map[uint64]func(T)
	chans       map[uint64]chan<- T
	nextID      uint64
	replayLast  bool
	last        T
	hasNotified bool
}

// NewEvent creates a new Event.
// replayLast: if true, the last notified value is delivered to every new
// listener as soon as it registers (only once Notify has been called)
func NewEvent[T any](replayLast bool) *Event[T] {
	return &Event[T]{
		funcs:      make(map[uint64]func(T)),
		chans:      make(map[uint64]chan<- T),
		replayLast: replayLast,
	}
}

// ListenFunc registers a callback and returns its deregistration function
func (e *Event[T]) ListenFunc(callback func(T)) func() {
	if callback == nil {
		panic("events: callback cannot be nil")
	}

	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.funcs[id] = callback
	last, replay := e.last, e.replayLast && e.hasNotified
	e.mu.Unlock()

	// Outside the lock so the callback may call back into the event
	if replay {
		callback(last)
	}

	return func() {
		e.mu.Lock()
		delete(e.funcs, id)
		e.mu.Unlock()
	}
}

// ListenChan registers a channel and returns its deregistration function.
// Sends never block: a full channel misses the value.
func (e *Event[T]) ListenChan(ch chan<- T) func() {
	if ch == nil {
		panic("events: channel cannot be nil")
	}

	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.chans[id] = ch
	last, replay := e.last, e.replayLast && e.hasNotified
	e.mu.Unlock()

	if replay {
		select {
		case ch <- last:
		default:
		}
	}

	return func() {
		e.mu.Lock()
		delete(e.chans, id)
		e.mu.Unlock()
	}
}

// Notify delivers value to every listener
func (e *Event[T]) Notify(value T) {
	e.mu.Lock()
	if e.replayLast {
		e.last = value
		e.hasNotified = true
	}
	funcs := make([]func(T), 0, len(e.funcs))
	for _, fn := range e.funcs {
		funcs = append(funcs, fn)
	}
	chans := make([]chan<- T, 0, len(e.chans))
	for _, ch := range e.chans {
		chans = append(chans, ch)
	}
	e.mu.Unlock()

	for _, ch := range chans {
		select {
		case ch <- value:
		default:
		}
	}
	for _, fn := range funcs {
		fn(value)
	}
}

// Last returns the most recently notified value, if replay is enabled and
// Notify has been called
func (e *Event[T]) Last() (T, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.last, e.hasNotified
}

// ListenerCount returns the number of registered listeners of both kinds
func (e *Event[T]) ListenerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.funcs) + len(e.chans)
}
