package ui

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/lowaak/boxing-trainer/internal/go_func_utils"
	"github.com/lowaak/boxing-trainer/internal/session"
	"github.com/lowaak/boxing-trainer/internal/workout"
)

// BaseUIView contains the base logic shared by all UI implementations
type BaseUIView struct {
	uiViewImpl   UIViewImpl
	uiModel      *UIModel
	uiController *UIController
	context      context.Context
	cancelFunc   context.CancelFunc
	waitGroup    sync.WaitGroup
	logger       *log.Logger
}

// NewBaseUIViewArg holds the arguments for creating a new BaseUIView
type NewBaseUIViewArg struct {
	UIViewImpl   UIViewImpl
	UIModel      *UIModel
	UIController *UIController
	Logger       *log.Logger
}

// NewBaseUIView creates a new BaseUIView with the given implementation
func NewBaseUIView(args NewBaseUIViewArg) *BaseUIView {
	if args.Logger == nil {
		panic("BaseUIView: logger cannot be nil")
	}
	if args.UIViewImpl == nil {
		panic("BaseUIView: UIViewImpl cannot be nil")
	}
	if args.UIModel == nil {
		panic("BaseUIView: UIModel cannot be nil")
	}
	if args.UIController == nil {
		panic("BaseUIView: UIController cannot be nil")
	}
	ctx, cancel := context.WithCancel(context.Background())

	base := &BaseUIView{
		uiViewImpl:   args.UIViewImpl,
		uiModel:      args.UIModel,
		uiController: args.UIController,
		context:      ctx,
		cancelFunc:   cancel,
		logger:       args.Logger,
	}

	// Initialize framework-specific widgets
	args.UIViewImpl.Initialize(args.UIController)
	args.UIViewImpl.SetupKeyboardHandlers(args.UIController)
	args.UIViewImpl.SetCatalog(args.UIController.Catalog())

	uiState := args.UIModel.GetUIState()
	args.UIViewImpl.SetMode(uiState.Mode)
	args.UIViewImpl.UpdateUIState(uiState)

	// Set up periodic resize check and initial display
	base.waitGroup.Add(1)
	go_func_utils.SafeGo(base.logger, "BaseUIView log resize", base.monitorLogResize)
	base.updateLogDisplay()

	base.setupEventListeners()

	return base
}

// listen runs handle for every value received on ch until the view shuts
// down, then redraws
func listen[T any](base *BaseUIView, name string, ch chan T, unregister func(), handle func(T)) {
	base.waitGroup.Add(1)
	go_func_utils.SafeGo(base.logger, name, func() {
		defer base.waitGroup.Done()
		defer unregister()
		for {
			select {
			case <-base.context.Done():
				return
			case value, ok := <-ch:
				if !ok {
					return
				}
				handle(value)
				base.draw()
			}
		}
	})
}

func (base *BaseUIView) setupEventListeners() {
	logChan := make(chan string, 1)
	listen(base, "BaseUIView log", logChan, base.uiModel.ListenToLog(logChan), func(string) {
		// When a new log arrives, update the display to show the tail
		base.updateLogDisplay()
	})

	uiStateChan := make(chan UIState, 1)
	listen(base, "BaseUIView ui state", uiStateChan, base.uiModel.ListenToUIState(uiStateChan), func(state UIState) {
		base.uiViewImpl.SetMode(state.Mode)
		base.uiViewImpl.UpdateUIState(state)
	})

	// The countdown changes every second, so a burst of states is coalesced
	// into the latest one
	workoutChan := make(chan workout.State, 1)
	listen(base, "BaseUIView workout state", workoutChan, base.uiModel.ListenToWorkoutState(workoutChan), func(workout.State) {
		base.uiViewImpl.UpdateWorkoutState(base.uiModel.GetWorkoutState())
	})

	historyChan := make(chan []session.WorkoutSession, 1)
	listen(base, "BaseUIView history", historyChan, base.uiModel.ListenToHistory(historyChan), func([]session.WorkoutSession) {
		base.uiViewImpl.UpdateHistory(base.uiModel.GetHistory())
	})

	saveChan := make(chan SaveStatus, 1)
	listen(base, "BaseUIView save status", saveChan, base.uiModel.ListenToSaveStatus(saveChan), base.uiViewImpl.UpdateSaveStatus)

	// Listen to close application event from model
	closeChan := make(chan struct{}, 1)
	closeUnregister := base.uiModel.ListenToCloseApplication(closeChan)
	base.waitGroup.Add(1)
	go_func_utils.SafeGo(base.logger, "BaseUIView close", func() {
		defer base.waitGroup.Done()
		defer closeUnregister()
		select {
		case <-base.context.Done():
			return
		case _, ok := <-closeChan:
			if !ok {
				return
			}
			base.uiViewImpl.Stop()
		}
	})
}

func (base *BaseUIView) draw() {
	if err := base.uiViewImpl.Draw(); err != nil {
		base.logger.Printf("BaseUIView: Error drawing: %v", err)
	}
}

func (base *BaseUIView) updateLogDisplay() {
	height := base.uiViewImpl.GetLogViewHeight()
	if height <= 0 {
		return
	}

	base.uiViewImpl.ClearLogView()
	for _, line := range base.uiModel.GetLogTail(height) {
		if err := base.uiViewImpl.WriteLogLine(line); err != nil {
			base.logger.Printf("BaseUIView: Error writing to log view: %v", err)
		}
	}
}

func (base *BaseUIView) monitorLogResize() {
	defer base.waitGroup.Done()
	var lastHeight int
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-base.context.Done():
			return
		case <-ticker.C:
			height := base.uiViewImpl.GetLogViewHeight()
			if height != lastHeight && height > 0 {
				lastHeight = height
				base.updateLogDisplay()
				base.draw()
			}
		}
	}
}

// Shutdown stops all goroutines and waits for them to finish
func (base *BaseUIView) Shutdown() {
	base.logger.Println("BaseUIView: Shutting down")
	base.cancelFunc()
	base.waitGroup.Wait()
	base.logger.Println("BaseUIView: Shutdown complete")
}

// Run starts the UI and blocks until it exits
func (base *BaseUIView) Run() error {
	return base.uiViewImpl.Run()
}
