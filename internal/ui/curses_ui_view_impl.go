package ui

import (
	"fmt"
	"log"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lowaak/boxing-trainer/internal/catalog"
	"github.com/lowaak/boxing-trainer/internal/go_func_utils"
	"github.com/lowaak/boxing-trainer/internal/session"
	"github.com/lowaak/boxing-trainer/internal/workout"
)

// Page names for tview.Pages
const (
	pagePlanner = "planner"
	pageTimer   = "timer"
	pageHistory = "history"
)

// CursesUIViewImpl implements UIViewImpl using tview (curses-based terminal UI)
type CursesUIViewImpl struct {
	logger      *log.Logger
	app         *tview.Application
	currentMode UIMode

	// Widgets belong to the event loop while it runs
	mu      sync.Mutex
	running bool
	stopped chan struct{}

	// Root container that holds all pages
	pages *tview.Pages

	// Shared components (visible in all modes)
	logView  *tview.TextView
	mainFlex *tview.Flex // Main layout: mode content on left, logs on right

	// Planner mode components
	plannerFlex       *tview.Flex
	plannerTabWidgets []*tview.Box
	catalogList       *tview.List
	detailsPanel      *tview.TextView
	planList          *tview.List
	exercises         []catalog.Exercise
	planRounds        int

	// Timer mode components
	timerFlex       *tview.Flex
	timerTabWidgets []*tview.Box
	timerPanel      *tview.TextView
	progressPanel   *tview.TextView
	controlsPanel   *tview.TextView
	workoutState    workout.State
	saveStatus      SaveStatus

	// History mode components
	historyFlex       *tview.Flex
	historyTabWidgets []*tview.Box
	historyList       *tview.List
	historyDetails    *tview.TextView
	sessions          []session.WorkoutSession
}

func NewCursesUIView(logger *log.Logger, app *tview.Application) *CursesUIViewImpl {
	return &CursesUIViewImpl{
		logger:      logger,
		app:         app,
		currentMode: UIModePlanner,
		planRounds:  DefaultPlanRounds,
		stopped:     make(chan struct{}),
	}
}

// queue runs f on the event loop and redraws. While the loop is not running,
// f runs directly. Work queued as the loop stops is dropped.
func (ui *CursesUIViewImpl) queue(f func()) {
	ui.mu.Lock()
	if !ui.running {
		defer ui.mu.Unlock()
		f()
		return
	}
	ui.mu.Unlock()

	done := make(chan struct{})
	go_func_utils.SafeGo(ui.logger, "CursesUIView update", func() {
		ui.app.QueueUpdateDraw(f)
		close(done)
	})
	select {
	case <-done:
	case <-ui.stopped:
	}
}

// Initialize sets up the tview widgets
func (ui *CursesUIViewImpl) Initialize(controller *UIController) {
	// Don't use SetChangedFunc with app.Draw() on the log view, it can hang
	// during shutdown. BaseUIView's listeners call Draw() after updates.
	ui.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	ui.logView.SetBorder(true).SetTitle(" Logs ")

	ui.pages = tview.NewPages()

	ui.initPlannerMode(controller)
	ui.initTimerMode()
	ui.initHistoryMode()

	ui.pages.AddPage(pagePlanner, ui.plannerFlex, true, true)
	ui.pages.AddPage(pageTimer, ui.timerFlex, true, false)
	ui.pages.AddPage(pageHistory, ui.historyFlex, true, false)

	// Mode content on the left, logs on the right
	ui.mainFlex = tview.NewFlex().
		AddItem(ui.pages, 0, 2, true).
		AddItem(ui.logView, 0, 1, false)

	ui.setFocusForCurrentMode()
}

func newPanel(title string) *tview.TextView {
	panel := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	panel.SetBorder(true).SetTitle(title)
	return panel
}

func modeInstructions() *tview.TextView {
	text := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	line := ""
	for i, info := range AllUIModes {
		if i > 0 {
			line += "  |  "
		}
		line += fmt.Sprintf("[yellow]%c[white] %s", info.KeyBinding, info.DisplayName)
	}
	text.SetText(line + "  |  [yellow]Tab[white] Focus  |  [yellow]Esc[white] Quit")
	return text
}

// initPlannerMode sets up the catalog browser and the workout plan
func (ui *CursesUIViewImpl) initPlannerMode(controller *UIController) {
	ui.catalogList = tview.NewList().
		ShowSecondaryText(true).
		SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			ui.logger.Printf("UI: Exercise selected: index=%d, name=%s", index, mainText)
			controller.AddExercise(index)
		}).
		SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			ui.updateDetailsDisplay(index)
		})
	ui.catalogList.SetBorder(true).SetTitle(" Exercises ")

	ui.detailsPanel = newPanel(" Details ")

	ui.planList = tview.NewList().
		ShowSecondaryText(false).
		SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			controller.JumpToExercise(index)
			controller.OnModeChange(UIModeTimer)
		})
	ui.planList.SetBorder(true).SetTitle(" Plan (Enter: go, x: remove) ")

	ui.plannerTabWidgets = []*tview.Box{ui.catalogList.Box, ui.planList.Box}

	rightColumn := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.detailsPanel, 0, 3, false).
		AddItem(ui.planList, 0, 2, false)

	content := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(ui.catalogList, 0, 1, true).
		AddItem(rightColumn, 0, 1, false)

	ui.plannerFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(modeInstructions(), 1, 0, false).
		AddItem(content, 0, 1, true)
}

// initTimerMode sets up the countdown, plan progress and controls panels
func (ui *CursesUIViewImpl) initTimerMode() {
	ui.timerPanel = newPanel(" Round Timer ")
	ui.progressPanel = newPanel(" Plan ")
	ui.controlsPanel = newPanel(" Controls ")
	ui.refreshTimerPanels()

	ui.timerTabWidgets = []*tview.Box{ui.timerPanel.Box, ui.progressPanel.Box}

	leftColumn := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.timerPanel, 0, 2, true).
		AddItem(ui.controlsPanel, 0, 1, false)

	content := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(leftColumn, 0, 3, true).
		AddItem(ui.progressPanel, 0, 2, false)

	ui.timerFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(modeInstructions(), 1, 0, false).
		AddItem(content, 0, 1, true)
}

// initHistoryMode sets up the saved session browser
func (ui *CursesUIViewImpl) initHistoryMode() {
	ui.historyList = tview.NewList().
		ShowSecondaryText(true).
		SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			ui.updateHistoryDetails(index)
		})
	ui.historyList.SetBorder(true).SetTitle(" Sessions ")

	ui.historyDetails = newPanel(" Session ")
	ui.updateHistoryDetails(-1)

	ui.historyTabWidgets = []*tview.Box{ui.historyList.Box, ui.historyDetails.Box}

	content := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(ui.historyList, 0, 1, true).
		AddItem(ui.historyDetails, 0, 1, false)

	ui.historyFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(modeInstructions(), 1, 0, false).
		AddItem(content, 0, 1, true)
}

// SetCatalog populates the exercise list of the planner
func (ui *CursesUIViewImpl) SetCatalog(exercises []catalog.Exercise) {
	ui.queue(func() {
		ui.exercises = exercises
		ui.catalogList.Clear()
		for _, ex := range exercises {
			ui.catalogList.AddItem(ex.Name, fmt.Sprintf("%s · %s · %s", ex.Category, ex.Difficulty, ex.Format()), 0, nil)
		}
		if len(exercises) > 0 {
			ui.updateDetailsDisplay(0)
		}
	})
}

func (ui *CursesUIViewImpl) updateDetailsDisplay(index int) {
	if ui.detailsPanel == nil {
		return
	}
	if index < 0 || index >= len(ui.exercises) {
		ui.detailsPanel.SetText("\n  [gray]Select an exercise to see its details.[white]\n")
		return
	}
	ui.detailsPanel.SetText(formatExerciseDetails(ui.exercises[index], ui.planRounds))
}

// UpdateUIState refreshes the planned round count shown in the details
func (ui *CursesUIViewImpl) UpdateUIState(state UIState) {
	ui.queue(func() {
		ui.planRounds = state.PlanRounds
		ui.updateDetailsDisplay(ui.catalogList.GetCurrentItem())
	})
}

// UpdateWorkoutState updates the timer panels and the plan list
func (ui *CursesUIViewImpl) UpdateWorkoutState(state workout.State) {
	ui.queue(func() {
		ui.workoutState = state
		ui.refreshTimerPanels()

		current := ui.planList.GetCurrentItem()
		ui.planList.Clear()
		for _, ex := range state.Exercises {
			ui.planList.AddItem(fmt.Sprintf("%s x%d  (%d/%d)", ex.Exercise.Name, ex.Rounds, ex.CompletedRounds, ex.Rounds), "", 0, nil)
		}
		if current < ui.planList.GetItemCount() {
			ui.planList.SetCurrentItem(current)
		}
	})
}

// UpdateSaveStatus shows the outcome of the last save
func (ui *CursesUIViewImpl) UpdateSaveStatus(status SaveStatus) {
	ui.queue(func() {
		ui.saveStatus = status
		ui.refreshTimerPanels()
	})
}

func (ui *CursesUIViewImpl) refreshTimerPanels() {
	ui.timerPanel.SetText(formatTimerPanel(ui.workoutState))
	ui.progressPanel.SetText(formatPlanPanel(ui.workoutState))
	ui.controlsPanel.SetText(formatControlsPanel(ui.workoutState, ui.saveStatus))
}

// UpdateHistory repopulates the saved session list
func (ui *CursesUIViewImpl) UpdateHistory(sessions []session.WorkoutSession) {
	ui.queue(func() {
		ui.sessions = sessions
		current := ui.historyList.GetCurrentItem()
		ui.historyList.Clear()
		for _, s := range sessions {
			main, secondary := formatHistoryItem(s)
			ui.historyList.AddItem(main, secondary, 0, nil)
		}
		if current >= len(sessions) {
			current = len(sessions) - 1
		}
		if current >= 0 {
			ui.historyList.SetCurrentItem(current)
		}
		ui.updateHistoryDetails(current)
	})
}

func (ui *CursesUIViewImpl) updateHistoryDetails(index int) {
	if index < 0 || index >= len(ui.sessions) {
		ui.historyDetails.SetText("\n  [gray]No saved sessions yet.[white]\n")
		return
	}
	ui.historyDetails.SetText(formatHistoryDetails(ui.sessions[index]))
}

// SetMode switches the UI to the specified mode
func (ui *CursesUIViewImpl) SetMode(mode UIMode) {
	ui.queue(func() {
		if ui.currentMode == mode {
			return
		}

		ui.currentMode = mode

		switch mode {
		case UIModePlanner:
			ui.pages.SwitchToPage(pagePlanner)
		case UIModeTimer:
			ui.pages.SwitchToPage(pageTimer)
		case UIModeHistory:
			ui.pages.SwitchToPage(pageHistory)
		}

		ui.setFocusForCurrentMode()
	})
}

// GetCurrentMode returns the currently active UI mode
func (ui *CursesUIViewImpl) GetCurrentMode() UIMode {
	var mode UIMode
	ui.queue(func() { mode = ui.currentMode })
	return mode
}

func (ui *CursesUIViewImpl) setFocusForCurrentMode() {
	if widgets := ui.getTabWidgetsForCurrentMode(); len(widgets) > 0 {
		ui.app.SetFocus(widgets[0])
	}
}

func (ui *CursesUIViewImpl) getTabWidgetsForCurrentMode() []*tview.Box {
	switch ui.currentMode {
	case UIModePlanner:
		return ui.plannerTabWidgets
	case UIModeTimer:
		return ui.timerTabWidgets
	case UIModeHistory:
		return ui.historyTabWidgets
	default:
		return nil
	}
}

// SetupKeyboardHandlers sets up keyboard event handlers
func (ui *CursesUIViewImpl) SetupKeyboardHandlers(controller *UIController) {
	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune {
			if mode, ok := GetUIModeByKey(event.Rune()); ok {
				// The controller updates the model, which notifies us
				controller.OnModeChange(mode)
				return nil
			}
		}

		// Tab to switch focus between widgets in current mode
		if event.Key() == tcell.KeyTab {
			widgets := ui.getTabWidgetsForCurrentMode()
			for i, w := range widgets {
				if w.HasFocus() {
					ui.app.SetFocus(widgets[(i+1)%len(widgets)])
					break
				}
			}
			return nil
		}

		if event.Key() == tcell.KeyEscape {
			controller.OnEscapeKey()
			return nil
		}

		if event.Key() != tcell.KeyRune {
			return event
		}

		switch ui.currentMode {
		case UIModePlanner:
			switch event.Rune() {
			case '+', '=':
				controller.AdjustPlanRounds(1)
				return nil
			case '-':
				controller.AdjustPlanRounds(-1)
				return nil
			case 'x':
				if ui.planList.HasFocus() {
					controller.RemoveExercise(ui.planList.GetCurrentItem())
				}
				return nil
			case ' ':
				controller.OnModeChange(UIModeTimer)
				controller.ToggleTimer()
				return nil
			}
		case UIModeTimer:
			switch event.Rune() {
			case ' ':
				controller.ToggleTimer()
			case 'r':
				controller.ResetRound()
			case 'R':
				controller.ResetWorkout()
			case 'n':
				controller.NextExercise()
			case 'p':
				controller.PreviousExercise()
			case 's':
				controller.SaveSession()
			case '+', '=':
				controller.AdjustWork(DurationStepSeconds)
			case '-':
				controller.AdjustWork(-DurationStepSeconds)
			case '>', '.':
				controller.AdjustRest(DurationStepSeconds)
			case '<', ',':
				controller.AdjustRest(-DurationStepSeconds)
			default:
				return event
			}
			return nil
		case UIModeHistory:
			if event.Rune() == 'd' {
				controller.DeleteHistorySession(ui.historyList.GetCurrentItem())
				return nil
			}
		}

		return event
	})
}

// GetLogViewHeight returns the visible height of the log view
func (ui *CursesUIViewImpl) GetLogViewHeight() int {
	_, _, _, height := ui.logView.GetInnerRect()
	return height
}

// ClearLogView clears the log view
func (ui *CursesUIViewImpl) ClearLogView() {
	ui.logView.Clear()
}

// WriteLogLine writes a line to the log view
func (ui *CursesUIViewImpl) WriteLogLine(line string) error {
	_, err := fmt.Fprintln(ui.logView, tview.Escape(line))
	return err
}

// Draw refreshes/redraws the UI
func (ui *CursesUIViewImpl) Draw() error {
	ui.queue(func() {})
	return nil
}

// Run starts the UI and blocks until it exits
func (ui *CursesUIViewImpl) Run() error {
	ui.mu.Lock()
	// SetRoot must be called before setting focus, otherwise focus may be reset
	ui.app.SetRoot(ui.mainFlex, true)
	ui.setFocusForCurrentMode()
	ui.running = true
	ui.mu.Unlock()

	err := ui.app.Run()

	ui.mu.Lock()
	ui.running = false
	close(ui.stopped)
	ui.mu.Unlock()
	return err
}

// Stop stops the UI framework
func (ui *CursesUIViewImpl) Stop() {
	ui.app.Stop()
}
