package main

import (
	"bytes"
	"context"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWatchSignals_ClosesUIOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	closed := make(chan struct{})

	watchSignals(ctx, log.New(&bytes.Buffer{}, "", 0), make(chan struct{}), func() { close(closed) })
	cancel()

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("UI was not closed after the signal")
	}
}

func TestWatchSignals_ExitsWhenUIReturns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	calls := make(chan struct{}, 1)

	watchSignals(ctx, log.New(&bytes.Buffer{}, "", 0), done, func() { calls <- struct{}{} })
	close(done)
	// Give the watcher time to see done before the late cancel
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-calls:
		t.Fatal("watcher acted on a signal after the UI returned")
	case <-time.After(100 * time.Millisecond):
	}
	assert.Empty(t, calls)
}
