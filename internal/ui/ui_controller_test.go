package ui

import (
	"bytes"
	"context"
	"log"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/boxing-trainer/internal/session"
	"github.com/lowaak/boxing-trainer/internal/timer"
	"github.com/lowaak/boxing-trainer/internal/workout"
)

const jabIndex = 1

var quickRounds = workout.Options{WorkSeconds: 3, RestSeconds: 1}

func TestNewUIController_NilDepsPanic(t *testing.T) {
	f := newControllerFixture(t, quickRounds)
	logger := log.New(&bytes.Buffer{}, "", 0)
	recorder := session.NewRecorder(f.store, time.Now, logger)

	assert.Panics(t, func() { NewUIController(nil, f.runner, recorder, f.store, nil, f.prefs, logger) })
	assert.Panics(t, func() { NewUIController(f.model, nil, recorder, f.store, nil, f.prefs, logger) })
	assert.Panics(t, func() { NewUIController(f.model, f.runner, nil, f.store, nil, f.prefs, logger) })
	assert.Panics(t, func() { NewUIController(f.model, f.runner, recorder, f.store, nil, f.prefs, logger) })
}

func TestUIController_AddExerciseUsesPlanRounds(t *testing.T) {
	f := newControllerFixture(t, quickRounds)

	f.controller.AdjustPlanRounds(-1)
	f.controller.AddExercise(jabIndex)
	f.controller.AddExercise(99)

	exercises := f.runner.State().Exercises
	require.Len(t, exercises, 1)
	assert.Equal(t, "technique-1", exercises[0].Exercise.ID)
	assert.Equal(t, DefaultPlanRounds-1, exercises[0].Rounds)

	f.controller.RemoveExercise(0)
	assert.Empty(t, f.runner.State().Exercises)
}

func TestUIController_PlanIsLockedOnceStarted(t *testing.T) {
	f := newControllerFixture(t, quickRounds)
	f.controller.AddExercise(jabIndex)
	f.controller.ToggleTimer()

	f.controller.AddExercise(jabIndex)
	f.controller.RemoveExercise(0)

	assert.Len(t, f.runner.State().Exercises, 1)
	assert.Contains(t, f.logs.String(), "UIController: Cannot add Jab")
	assert.Contains(t, f.logs.String(), "UIController: Cannot remove exercise")
}

func TestUIController_StateReachesModel(t *testing.T) {
	f := newControllerFixture(t, quickRounds)
	f.controller.AddExercise(jabIndex)
	f.controller.ToggleTimer()
	f.fire(t, 1)

	require.Eventually(t, func() bool {
		return f.model.GetWorkoutState().SecondsRemaining == 2
	}, time.Second, 5*time.Millisecond)
}

func TestUIController_CompletionSavesSession(t *testing.T) {
	f := newControllerFixture(t, quickRounds)
	f.model.SetPlanRounds(1)
	f.controller.AddExercise(jabIndex)
	f.controller.ToggleTimer()
	f.fire(t, 3)

	require.Eventually(t, func() bool { return f.store.count() == 1 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return len(f.model.GetHistory()) == 1 }, time.Second, 5*time.Millisecond)

	status := f.model.GetSaveStatus()
	require.NotNil(t, status.LastSaved)
	assert.Nil(t, status.Pending)
	assert.Equal(t, 3, status.LastSaved.TotalDurationSeconds)
	assert.Equal(t, 1, status.LastSaved.CompletedRounds())

	// Saving again must not duplicate the completed workout
	f.controller.SaveSession()
	assert.Equal(t, 1, f.store.count())
	assert.Contains(t, f.logs.String(), "already saved")
}

func TestUIController_FailedSaveCanBeRetried(t *testing.T) {
	f := newControllerFixture(t, quickRounds)
	f.store.failNext(1)
	f.model.SetPlanRounds(1)
	f.controller.AddExercise(jabIndex)
	f.controller.ToggleTimer()
	f.fire(t, 3)

	require.Eventually(t, func() bool {
		return f.model.GetSaveStatus().Pending != nil
	}, time.Second, 5*time.Millisecond)
	pending := *f.model.GetSaveStatus().Pending
	assert.Error(t, f.model.GetSaveStatus().Err)
	assert.Equal(t, 0, f.store.count())

	f.controller.SaveSession()

	assert.Equal(t, 1, f.store.count())
	status := f.model.GetSaveStatus()
	assert.Nil(t, status.Pending)
	require.NotNil(t, status.LastSaved)
	assert.Equal(t, pending.ID, status.LastSaved.ID)
}

func TestUIController_SaveAbandonedWorkout(t *testing.T) {
	f := newControllerFixture(t, quickRounds)

	f.controller.SaveSession()
	assert.Contains(t, f.logs.String(), "Workout not started")

	f.controller.AddExercise(jabIndex)
	f.controller.ToggleTimer()
	f.fire(t, 1)
	f.controller.ToggleTimer()
	f.controller.SaveSession()

	require.Equal(t, 1, f.store.count())
	saved := f.model.GetSaveStatus().LastSaved
	require.NotNil(t, saved)
	assert.Equal(t, 1, saved.TotalDurationSeconds)
	assert.Equal(t, 0, saved.CompletedRounds())
	assert.Equal(t, DefaultPlanRounds, saved.TotalRounds())

	state := f.runner.State()
	assert.False(t, state.Started, "a manual save ends the run")
	assert.NotEqual(t, timer.RunStateRunning, state.RunState)
}

func TestUIController_ManualSaveRecordsRunOnce(t *testing.T) {
	f := newControllerFixture(t, quickRounds)
	f.model.SetPlanRounds(1)
	f.controller.AddExercise(jabIndex)
	f.controller.ToggleTimer()
	f.fire(t, 1)

	f.controller.SaveSession()
	f.controller.SaveSession()
	require.Equal(t, 1, f.store.count())
	assert.Contains(t, f.logs.String(), "Workout not started")

	// The next start is a separate run with its own record
	f.controller.ToggleTimer()
	f.fire(t, 3)
	require.Eventually(t, func() bool { return f.store.count() == 2 }, time.Second, 5*time.Millisecond)

	sessions, err := f.store.ListSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, sessions[0].TotalDurationSeconds)
	assert.Equal(t, 1, sessions[0].CompletedRounds())
	assert.Equal(t, 1, sessions[1].TotalDurationSeconds)
	assert.Equal(t, 0, sessions[1].CompletedRounds())

	f.controller.SaveSession()
	assert.Equal(t, 2, f.store.count())
}

func TestUIController_AdjustDurations(t *testing.T) {
	f := newControllerFixture(t, quickRounds)

	f.controller.AdjustWork(DurationStepSeconds)
	assert.Equal(t, 3+DurationStepSeconds, f.runner.State().WorkSeconds)

	f.controller.AdjustWork(-10 * DurationStepSeconds)
	assert.Equal(t, MinWorkSeconds, f.runner.State().WorkSeconds)

	f.controller.AdjustWork(2 * MaxWorkSeconds)
	assert.Equal(t, MaxWorkSeconds, f.runner.State().WorkSeconds)

	f.controller.AdjustRest(-DurationStepSeconds)
	assert.Equal(t, 0, f.runner.State().RestSeconds)

	f.controller.AdjustRest(2 * MaxRestSeconds)
	assert.Equal(t, MaxRestSeconds, f.runner.State().RestSeconds)

	work, rest, ok := NewTimerPrefs(f.prefsPath, log.New(&bytes.Buffer{}, "", 0)).Durations()
	require.True(t, ok)
	assert.Equal(t, MaxWorkSeconds, work)
	assert.Equal(t, MaxRestSeconds, rest)
}

func TestUIController_Navigation(t *testing.T) {
	f := newControllerFixture(t, quickRounds)
	f.controller.AddExercise(0)
	f.controller.AddExercise(jabIndex)

	f.controller.NextExercise()
	assert.Equal(t, 1, f.runner.State().ExerciseIndex)
	f.controller.NextExercise()
	assert.Contains(t, f.logs.String(), "Already at the last exercise")

	f.controller.PreviousExercise()
	f.controller.PreviousExercise()
	assert.Contains(t, f.logs.String(), "Already at the first exercise")

	f.controller.JumpToExercise(1)
	f.controller.ToggleTimer()
	f.fire(t, 1)
	f.controller.ResetRound()
	assert.Equal(t, 3, f.runner.State().SecondsRemaining)

	f.controller.ResetWorkout()
	assert.Equal(t, 0, f.runner.State().ExerciseIndex)
}

func TestUIController_HistoryModeRefreshesAndDeletes(t *testing.T) {
	f := newControllerFixture(t, quickRounds)
	older := session.WorkoutSession{ID: uuid.New(), TotalDurationSeconds: 60}
	newer := session.WorkoutSession{ID: uuid.New(), TotalDurationSeconds: 120}
	require.NoError(t, f.store.SaveSession(context.Background(), older))
	require.NoError(t, f.store.SaveSession(context.Background(), newer))

	f.controller.OnModeChange(UIModeHistory)
	assert.Equal(t, UIModeHistory, f.model.GetUIState().Mode)
	require.Len(t, f.model.GetHistory(), 2)

	f.controller.DeleteHistorySession(5)
	assert.Equal(t, 2, f.store.count())

	f.controller.DeleteHistorySession(0)
	history := f.model.GetHistory()
	require.Len(t, history, 1)
	assert.Equal(t, 60, history[0].TotalDurationSeconds)
}

func TestUIController_EscapeRequestsClose(t *testing.T) {
	f := newControllerFixture(t, quickRounds)
	ch := make(chan struct{}, 1)
	defer f.model.ListenToCloseApplication(ch)()

	f.controller.OnEscapeKey()

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("close was not requested")
	}
}
