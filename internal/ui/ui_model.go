package ui

import (
	"context"
	"log"
	"sync"

	"github.com/lowaak/boxing-trainer/internal/events"
	"github.com/lowaak/boxing-trainer/internal/go_func_utils"
	"github.com/lowaak/boxing-trainer/internal/session"
	"github.com/lowaak/boxing-trainer/internal/workout"
)

// UIState holds the current state of the UI that views need to render
type UIState struct {
	Mode UIMode
	// PlanRounds is the round count used for the next exercise added
	PlanRounds int
}

// SaveStatus reports the outcome of the last session save
type SaveStatus struct {
	LastSaved *session.WorkoutSession
	// Pending is a built session whose save failed and can be retried
	Pending *session.WorkoutSession
	Err     error
}

type UIModel struct {
	logEvent              *events.Event[string]
	closeApplicationEvent *events.Event[struct{}]
	uiStateEvent          *events.Event[UIState]
	uiState               UIState
	workoutStateEvent     *events.Event[workout.State]
	workoutState          workout.State
	historyEvent          *events.Event[[]session.WorkoutSession]
	history               []session.WorkoutSession
	saveStatusEvent       *events.Event[SaveStatus]
	saveStatus            SaveStatus
	logLines              []string
	logMu                 sync.RWMutex
	mu                    sync.RWMutex
	ctx                   context.Context
	cancel                context.CancelFunc
	wg                    sync.WaitGroup
	logger                *log.Logger
}

const maxLogLines = 1000

func NewUIModel(logger *log.Logger, uiLogChan <-chan string) *UIModel {
	if logger == nil {
		panic("UIModel: logger cannot be nil")
	}
	if uiLogChan == nil {
		panic("UIModel: uiLogChan cannot be nil")
	}
	ctx, cancel := context.WithCancel(context.Background())
	model := &UIModel{
		logEvent:              events.NewEvent[string](false),
		closeApplicationEvent: events.NewEvent[struct{}](true),
		uiStateEvent:          events.NewEvent[UIState](true),
		uiState:               UIState{Mode: UIModePlanner, PlanRounds: DefaultPlanRounds},
		workoutStateEvent:     events.NewEvent[workout.State](true),
		historyEvent:          events.NewEvent[[]session.WorkoutSession](true),
		saveStatusEvent:       events.NewEvent[SaveStatus](true),
		logLines:              make([]string, 0, maxLogLines),
		ctx:                   ctx,
		cancel:                cancel,
		logger:                logger,
	}

	// Read from the UI log channel and populate logLines
	model.wg.Add(1)
	go_func_utils.SafeGo(model.logger, "UIModel log reader", func() { model.readFromLogChannel(ctx, uiLogChan) })

	return model
}

// Shutdown stops all goroutines and waits for them to finish
func (m *UIModel) Shutdown() {
	m.logger.Println("UIModel: Shutting down")
	m.cancel()
	m.wg.Wait()
	m.logger.Println("UIModel: Shutdown complete")
}

// ListenToLog registers a channel to receive log messages
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToLog(ch chan<- string) func() {
	return m.logEvent.ListenChan(ch)
}

// ListenToCloseApplication registers a channel to receive close application signals
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToCloseApplication(ch chan<- struct{}) func() {
	return m.closeApplicationEvent.ListenChan(ch)
}

// RequestCloseApplication signals that the application should close
func (m *UIModel) RequestCloseApplication() {
	m.closeApplicationEvent.Notify(struct{}{})
}

// ListenToUIState registers a channel to receive UI state changes
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToUIState(ch chan<- UIState) func() {
	return m.uiStateEvent.ListenChan(ch)
}

// GetUIState returns the current UI state
func (m *UIModel) GetUIState() UIState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.uiState
}

// SetMode updates the current UI mode and notifies listeners
func (m *UIModel) SetMode(mode UIMode) {
	m.mu.Lock()
	if m.uiState.Mode == mode {
		m.mu.Unlock()
		return
	}
	m.uiState.Mode = mode
	state := m.uiState
	m.mu.Unlock()

	m.uiStateEvent.Notify(state)
}

// SetPlanRounds updates the round count for the next planned exercise,
// clamped to [1, MaxPlanRounds]
func (m *UIModel) SetPlanRounds(rounds int) {
	rounds = min(max(rounds, 1), MaxPlanRounds)

	m.mu.Lock()
	if m.uiState.PlanRounds == rounds {
		m.mu.Unlock()
		return
	}
	m.uiState.PlanRounds = rounds
	state := m.uiState
	m.mu.Unlock()

	m.uiStateEvent.Notify(state)
}

// ListenToWorkoutState registers a channel to receive workout state updates
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToWorkoutState(ch chan<- workout.State) func() {
	return m.workoutStateEvent.ListenChan(ch)
}

// GetWorkoutState returns the current workout state
func (m *UIModel) GetWorkoutState() workout.State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.workoutState
}

// SetWorkoutState updates the workout state and notifies listeners
func (m *UIModel) SetWorkoutState(state workout.State) {
	m.mu.Lock()
	m.workoutState = state
	m.mu.Unlock()

	m.workoutStateEvent.Notify(state)
}

// ListenToHistory registers a channel to receive the saved session list
func (m *UIModel) ListenToHistory(ch chan<- []session.WorkoutSession) func() {
	return m.historyEvent.ListenChan(ch)
}

// GetHistory returns a copy of the saved session list, newest first
func (m *UIModel) GetHistory() []session.WorkoutSession {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]session.WorkoutSession, len(m.history))
	copy(result, m.history)
	return result
}

// SetHistory replaces the saved session list and notifies listeners
func (m *UIModel) SetHistory(sessions []session.WorkoutSession) {
	m.mu.Lock()
	m.history = make([]session.WorkoutSession, len(sessions))
	copy(m.history, sessions)
	historyCopy := make([]session.WorkoutSession, len(sessions))
	copy(historyCopy, sessions)
	m.mu.Unlock()

	m.historyEvent.Notify(historyCopy)
}

// ListenToSaveStatus registers a channel to receive save outcomes
func (m *UIModel) ListenToSaveStatus(ch chan<- SaveStatus) func() {
	return m.saveStatusEvent.ListenChan(ch)
}

// GetSaveStatus returns the outcome of the last save
func (m *UIModel) GetSaveStatus() SaveStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saveStatus
}

// SetSaveStatus updates the save outcome and notifies listeners
func (m *UIModel) SetSaveStatus(status SaveStatus) {
	m.mu.Lock()
	m.saveStatus = status
	m.mu.Unlock()

	m.saveStatusEvent.Notify(status)
}

// readFromLogChannel reads log lines from the channel and populates logLines
func (m *UIModel) readFromLogChannel(ctx context.Context, logChan <-chan string) {
	defer m.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-logChan:
			if !ok {
				return
			}

			m.logMu.Lock()
			m.logLines = append(m.logLines, line)
			if len(m.logLines) > maxLogLines {
				m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
			}
			m.logMu.Unlock()

			m.logEvent.Notify(line)
		}
	}
}

// GetLogTail returns the last n lines of logs
func (m *UIModel) GetLogTail(n int) []string {
	m.logMu.RLock()
	defer m.logMu.RUnlock()

	if n <= 0 {
		return []string{}
	}

	if n >= len(m.logLines) {
		result := make([]string, len(m.logLines))
		copy(result, m.logLines)
		return result
	}

	result := make([]string, n)
	copy(result, m.logLines[len(m.logLines)-n:])
	return result
}
