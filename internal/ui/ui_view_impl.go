package ui

import (
	"github.com/lowaak/boxing-trainer/internal/catalog"
	"github.com/lowaak/boxing-trainer/internal/session"
	"github.com/lowaak/boxing-trainer/internal/workout"
)

// UIViewImpl defines the interface for framework-specific UI implementations
type UIViewImpl interface {
	// Initialize is called after construction to set up framework-specific widgets
	// controller is used to handle UI events
	Initialize(controller *UIController)

	// SetupKeyboardHandlers sets up keyboard event handlers
	SetupKeyboardHandlers(controller *UIController)

	// Run starts the UI framework and blocks until it exits
	Run() error

	// Stop stops the UI framework
	Stop()

	// Draw refreshes/redraws the UI
	Draw() error

	// --- Mode Management ---

	// SetMode switches the UI to the specified mode
	SetMode(mode UIMode)

	// GetCurrentMode returns the currently active UI mode
	GetCurrentMode() UIMode

	// --- Log View (shared across modes) ---

	GetLogViewHeight() int
	ClearLogView()
	WriteLogLine(line string) error

	// --- Planner Mode ---

	// SetCatalog populates the list of exercises that can be planned
	SetCatalog(exercises []catalog.Exercise)

	// UpdateUIState refreshes displays that depend on UI-only state such as
	// the round count for the next planned exercise
	UpdateUIState(state UIState)

	// --- Timer Mode ---

	// UpdateWorkoutState updates the countdown, the plan and the round progress
	UpdateWorkoutState(state workout.State)

	// UpdateSaveStatus shows the outcome of the last session save
	UpdateSaveStatus(status SaveStatus)

	// --- History Mode ---

	UpdateHistory(sessions []session.WorkoutSession)
}
