package ui

import (
	"bytes"
	"context"
	"errors"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/boxing-trainer/internal/catalog"
	"github.com/lowaak/boxing-trainer/internal/session"
	"github.com/lowaak/boxing-trainer/internal/storage"
	"github.com/lowaak/boxing-trainer/internal/timer"
	"github.com/lowaak/boxing-trainer/internal/workout"
)

// syncBuffer is a log sink safe for use from background goroutines
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

// fakeStore is an in-memory session store that can be told to fail
type fakeStore struct {
	mu       sync.Mutex
	failures int
	sessions []session.WorkoutSession
}

func (f *fakeStore) SaveSession(_ context.Context, s session.WorkoutSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return errors.New("database is locked")
	}
	f.sessions = append([]session.WorkoutSession{s}, f.sessions...)
	return nil
}

func (f *fakeStore) ListSessions(_ context.Context) ([]session.WorkoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]session.WorkoutSession, len(f.sessions))
	copy(result, f.sessions)
	return result, nil
}

func (f *fakeStore) DeleteSession(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.sessions {
		if s.ID == id {
			f.sessions = append(f.sessions[:i], f.sessions[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

func (f *fakeStore) failNext(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = n
}

var _ HistoryStore = (*fakeStore)(nil)
var _ session.Store = (*fakeStore)(nil)

type controllerFixture struct {
	controller *UIController
	model      *UIModel
	runner     *workout.Runner
	ticker     *timer.ManualTicker
	store      *fakeStore
	prefs      *TimerPrefs
	prefsPath  string
	logs       *syncBuffer
}

func newControllerFixture(t *testing.T, opts workout.Options) *controllerFixture {
	t.Helper()
	logs := &syncBuffer{}
	logger := log.New(logs, "", 0)

	clock := timer.NewManualClock(time.Date(2025, 5, 15, 18, 0, 0, 0, time.UTC))
	seq := workout.NewSequencer(clock, opts, logger)
	ticker := clock.Ticker(0)
	require.NotNil(t, ticker)
	runner := workout.NewRunner(seq, logger)

	store := &fakeStore{}
	recorder := session.NewRecorder(store, clock.Now, logger)
	prefsPath := DefaultTimerPrefsPath(t.TempDir())
	prefs := NewTimerPrefs(prefsPath, logger)

	model := NewUIModel(logger, make(chan string))
	controller := NewUIController(model, runner, recorder, store, catalog.Default(), prefs, logger)

	t.Cleanup(func() {
		controller.Shutdown()
		runner.Shutdown()
		model.Shutdown()
	})

	return &controllerFixture{
		controller: controller,
		model:      model,
		runner:     runner,
		ticker:     ticker,
		store:      store,
		prefs:      prefs,
		prefsPath:  prefsPath,
		logs:       logs,
	}
}

// fire delivers n ticks to the runner
func (f *controllerFixture) fire(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.True(t, f.ticker.Fire())
	}
}
