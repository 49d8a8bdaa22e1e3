package ui

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/lowaak/boxing-trainer/internal/catalog"
	"github.com/lowaak/boxing-trainer/internal/go_func_utils"
	"github.com/lowaak/boxing-trainer/internal/session"
	"github.com/lowaak/boxing-trainer/internal/workout"
)

// HistoryStore is the part of the session storage the UI browses
type HistoryStore interface {
	ListSessions(ctx context.Context) ([]session.WorkoutSession, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
}

// UIController handles UI events and coordinates the runner, the recorder
// and the UIModel
type UIController struct {
	model    *UIModel
	runner   *workout.Runner
	recorder *session.Recorder
	history  HistoryStore
	catalog  *catalog.Catalog
	prefs    *TimerPrefs
	logger   *log.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewUIController creates a new UIController with the given dependencies
func NewUIController(model *UIModel, runner *workout.Runner, recorder *session.Recorder, history HistoryStore,
	cat *catalog.Catalog, prefs *TimerPrefs, logger *log.Logger) *UIController {
	if model == nil {
		panic("UIController: model cannot be nil")
	}
	if runner == nil {
		panic("UIController: runner cannot be nil")
	}
	if recorder == nil {
		panic("UIController: recorder cannot be nil")
	}
	if history == nil {
		panic("UIController: history cannot be nil")
	}
	if cat == nil {
		panic("UIController: catalog cannot be nil")
	}
	if prefs == nil {
		panic("UIController: prefs cannot be nil")
	}
	if logger == nil {
		panic("UIController: logger cannot be nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &UIController{
		model:    model,
		runner:   runner,
		recorder: recorder,
		history:  history,
		catalog:  cat,
		prefs:    prefs,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}

	stateCh := make(chan workout.State, 16)
	unregisterState := runner.ListenToState(stateCh)
	completeCh := make(chan workout.Summary, 1)
	unregisterComplete := runner.ListenToComplete(completeCh)

	c.wg.Add(2)
	go_func_utils.SafeGo(logger, "UIController state listener", func() { c.listenToWorkoutState(stateCh, unregisterState) })
	go_func_utils.SafeGo(logger, "UIController completion listener", func() { c.listenToCompletion(completeCh, unregisterComplete) })

	c.RefreshHistory()

	return c
}

// Catalog returns the exercises available for planning
func (c *UIController) Catalog() []catalog.Exercise {
	return c.catalog.All()
}

func (c *UIController) listenToWorkoutState(ch <-chan workout.State, unregister func()) {
	defer c.wg.Done()
	defer unregister()

	for {
		select {
		case <-c.ctx.Done():
			return
		case state := <-ch:
			c.model.SetWorkoutState(state)
		}
	}
}

func (c *UIController) listenToCompletion(ch <-chan workout.Summary, unregister func()) {
	defer c.wg.Done()
	defer unregister()

	for {
		select {
		case <-c.ctx.Done():
			return
		case summary := <-ch:
			c.logger.Printf("UIController: Workout complete, saving session")
			c.recordSummary(summary)
		}
	}
}

func (c *UIController) recordSummary(summary workout.Summary) {
	s, err := c.recorder.RecordSummary(c.ctx, summary)
	c.applySaveResult(s, err)
}

func (c *UIController) applySaveResult(s session.WorkoutSession, err error) {
	switch {
	case errors.Is(err, session.ErrNoExercises):
		c.logger.Printf("UIController: Nothing to save")
		return
	case err != nil:
		c.logger.Printf("UIController: Save failed, press S to retry: %v", err)
		c.model.SetSaveStatus(SaveStatus{Pending: &s, Err: err})
		return
	}
	c.model.SetSaveStatus(SaveStatus{LastSaved: &s})
	c.RefreshHistory()
}

// OnEscapeKey handles when the Escape key is pressed
func (c *UIController) OnEscapeKey() {
	c.model.RequestCloseApplication()
}

// OnModeChange handles when the user requests a mode change
func (c *UIController) OnModeChange(mode UIMode) {
	if info, ok := GetUIModeInfo(mode); ok {
		c.logger.Printf("Switching to %s mode", info.DisplayName)
	}
	if mode == UIModeHistory {
		c.RefreshHistory()
	}
	c.model.SetMode(mode)
}

// AddExercise appends the catalog exercise at catalogIndex to the plan using
// the currently selected round count
func (c *UIController) AddExercise(catalogIndex int) {
	all := c.catalog.All()
	if catalogIndex < 0 || catalogIndex >= len(all) {
		return
	}
	rounds := c.model.GetUIState().PlanRounds
	if _, err := c.runner.Add(all[catalogIndex], rounds); err != nil {
		c.logger.Printf("UIController: Cannot add %s: %v", all[catalogIndex].Name, err)
	}
}

// RemoveExercise drops the planned exercise at planIndex
func (c *UIController) RemoveExercise(planIndex int) {
	if err := c.runner.Remove(planIndex); err != nil {
		c.logger.Printf("UIController: Cannot remove exercise: %v", err)
	}
}

// AdjustPlanRounds changes the round count for the next added exercise
func (c *UIController) AdjustPlanRounds(delta int) {
	c.model.SetPlanRounds(c.model.GetUIState().PlanRounds + delta)
}

// ToggleTimer starts or pauses the countdown
func (c *UIController) ToggleTimer() {
	c.runner.Toggle()
}

// ResetRound refills the current phase
func (c *UIController) ResetRound() {
	c.runner.ResetCurrentRound()
}

// ResetWorkout rewinds to the first round of the first exercise
func (c *UIController) ResetWorkout() {
	c.runner.ResetWorkout()
}

// NextExercise moves to the next planned exercise
func (c *UIController) NextExercise() {
	if !c.runner.NextExercise() {
		c.logger.Printf("UIController: Already at the last exercise")
	}
}

// PreviousExercise moves to the previous planned exercise
func (c *UIController) PreviousExercise() {
	if !c.runner.PreviousExercise() {
		c.logger.Printf("UIController: Already at the first exercise")
	}
}

// JumpToExercise moves to the planned exercise at planIndex
func (c *UIController) JumpToExercise(planIndex int) {
	c.runner.JumpTo(planIndex)
}

// AdjustWork changes the work duration by delta seconds and remembers it
func (c *UIController) AdjustWork(delta int) {
	state := c.runner.State()
	work := min(max(state.WorkSeconds+delta, MinWorkSeconds), MaxWorkSeconds)
	c.setDurations(work, state.RestSeconds)
}

// AdjustRest changes the rest duration by delta seconds and remembers it
func (c *UIController) AdjustRest(delta int) {
	state := c.runner.State()
	rest := min(max(state.RestSeconds+delta, 0), MaxRestSeconds)
	c.setDurations(state.WorkSeconds, rest)
}

func (c *UIController) setDurations(work, rest int) {
	state := c.runner.State()
	if work == state.WorkSeconds && rest == state.RestSeconds {
		return
	}
	c.runner.SetDurations(work, rest)
	c.prefs.SetDurations(work, rest)
}

// SaveSession retries a failed save, or records the workout so far when
// nothing is pending. A manual save ends the run: the workout is rewound so
// the same run can never be recorded twice.
func (c *UIController) SaveSession() {
	status := c.model.GetSaveStatus()
	if status.Pending != nil {
		pending := *status.Pending
		c.applySaveResult(pending, c.recorder.Save(c.ctx, pending))
		return
	}

	state := c.runner.State()
	if !state.Started {
		c.logger.Printf("UIController: Workout not started, nothing to save")
		return
	}
	if state.Completed {
		c.logger.Printf("UIController: Completed workout was already saved")
		return
	}
	c.runner.Pause()
	summary := c.runner.Summary()
	c.runner.ResetWorkout()
	c.logger.Printf("UIController: Run ended by manual save")
	c.recordSummary(summary)
}

// RefreshHistory reloads saved sessions into the model
func (c *UIController) RefreshHistory() {
	sessions, err := c.history.ListSessions(c.ctx)
	if err != nil {
		c.logger.Printf("UIController: Loading history failed: %v", err)
		return
	}
	c.model.SetHistory(sessions)
}

// DeleteHistorySession deletes the saved session at index in the history list
func (c *UIController) DeleteHistorySession(index int) {
	sessions := c.model.GetHistory()
	if index < 0 || index >= len(sessions) {
		return
	}
	id := sessions[index].ID
	if err := c.history.DeleteSession(c.ctx, id); err != nil {
		c.logger.Printf("UIController: Deleting session %s failed: %v", id, err)
		return
	}
	c.logger.Printf("UIController: Deleted session %s", id)
	c.RefreshHistory()
}

// Shutdown stops all goroutines and waits for them to finish
func (c *UIController) Shutdown() {
	c.logger.Println("UIController: Shutting down")
	c.cancel()
	c.wg.Wait()
	c.logger.Println("UIController: Shutdown complete")
}
