package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rivo/tview"
	"github.com/spf13/pflag"

	"github.com/lowaak/boxing-trainer/internal/catalog"
	"github.com/lowaak/boxing-trainer/internal/config"
	"github.com/lowaak/boxing-trainer/internal/go_func_utils"
	"github.com/lowaak/boxing-trainer/internal/logging"
	"github.com/lowaak/boxing-trainer/internal/server"
	"github.com/lowaak/boxing-trainer/internal/session"
	"github.com/lowaak/boxing-trainer/internal/storage"
	"github.com/lowaak/boxing-trainer/internal/timer"
	"github.com/lowaak/boxing-trainer/internal/ui"
	"github.com/lowaak/boxing-trainer/internal/workout"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load(args)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "boxing-trainer: %v\n", err)
		return 2
	}

	interactive := !cfg.NoUI && !cfg.History && cfg.ServeAddr == ""
	logOpts := logging.DefaultOptions(cfg.LogFile)
	if !interactive {
		logOpts.Stderr = true
		logOpts.UIBuffer = 0
	}
	logs := logging.New(logOpts)
	defer logs.Close()
	logger := logs.Logger
	logger.Printf("Main: Starting with config %s", cfg.ConfigFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runMode(ctx, cfg, logs, interactive); err != nil {
		logger.Printf("Main: %v", err)
		fmt.Fprintf(os.Stderr, "boxing-trainer: %v\n", err)
		return 1
	}
	logger.Println("Main: Exiting")
	return 0
}

func runMode(ctx context.Context, cfg *config.Config, logs *logging.Logging, interactive bool) error {
	logger := logs.Logger

	cat, err := loadCatalog(cfg, logger)
	if err != nil {
		return err
	}

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	switch {
	case cfg.History:
		return printHistory(ctx, db, os.Stdout)
	case cfg.ServeAddr != "":
		return server.New(db, cat, logger).Run(ctx, cfg.ServeAddr)
	}

	seq := workout.NewSequencer(timer.SystemClock{}, workout.Options{
		WorkSeconds:          cfg.WorkSeconds,
		RestSeconds:          cfg.RestSeconds,
		RestBetweenExercises: cfg.RestBetweenExercises,
	}, logger)
	if err := planWorkout(seq, cat, cfg.Exercises); err != nil {
		return err
	}
	runner := workout.NewRunner(seq, logger)
	defer runner.Shutdown()

	recorder := session.NewRecorder(db, time.Now, logger)

	if !interactive {
		return runHeadless(ctx, runner, recorder, logger)
	}
	return runUI(ctx, cfg, cat, db, runner, recorder, logs)
}

func loadCatalog(cfg *config.Config, logger *log.Logger) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	logger.Printf("Main: Loaded %d exercises from %s", cat.Len(), cfg.CatalogPath)
	return cat, nil
}

func planWorkout(seq *workout.Sequencer, cat *catalog.Catalog, plan []config.PlannedExercise) error {
	for _, p := range plan {
		ex, err := cat.Get(p.ID)
		if err != nil {
			return err
		}
		if _, err := seq.Add(ex, p.Rounds); err != nil {
			return err
		}
	}
	return nil
}

// runHeadless runs the planned workout until it completes or a signal arrives,
// then records what was done
func runHeadless(ctx context.Context, runner *workout.Runner, recorder *session.Recorder, logger *log.Logger) error {
	if len(runner.State().Exercises) == 0 {
		return errors.New("no exercises planned, use --exercise id:rounds")
	}

	stateCh := make(chan workout.State, 8)
	defer runner.ListenToState(stateCh)()
	doneCh := make(chan workout.Summary, 1)
	defer runner.ListenToComplete(doneCh)()

	runner.Start()

	var last workout.State
	for {
		select {
		case <-ctx.Done():
			logger.Println("Main: Interrupted, saving partial session")
			runner.Pause()
			_, err := recorder.RecordSummary(context.Background(), runner.Summary())
			return err
		case summary := <-doneCh:
			_, err := recorder.RecordSummary(ctx, summary)
			return err
		case state := <-stateCh:
			if state.Phase != last.Phase || state.ExerciseIndex != last.ExerciseIndex || state.RoundIndex != last.RoundIndex {
				logPosition(logger, state)
			}
			last = state
		}
	}
}

func logPosition(logger *log.Logger, state workout.State) {
	current, ok := state.CurrentExercise()
	if !ok {
		return
	}
	logger.Printf("Main: %s %s - %s round %d/%d (workout round %d/%d)",
		state.Phase, state.Remaining, current.Exercise.Name,
		state.RoundIndex+1, current.Rounds, state.CurrentTotalRound, state.TotalRounds)
}

func runUI(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, db *storage.DB,
	runner *workout.Runner, recorder *session.Recorder, logs *logging.Logging) error {
	logger := logs.Logger

	prefs := ui.NewTimerPrefs(ui.DefaultTimerPrefsPath(cfg.AppDir), logger)
	if work, rest, ok := prefs.Durations(); ok && !cfg.DurationsOverridden {
		runner.SetDurations(work, rest)
	}

	model := ui.NewUIModel(logger, logs.Lines)
	defer model.Shutdown()
	controller := ui.NewUIController(model, runner, recorder, db, cat, prefs, logger)
	defer controller.Shutdown()

	app := tview.NewApplication()
	view := ui.NewBaseUIView(ui.NewBaseUIViewArg{
		UIViewImpl:   ui.NewCursesUIView(logger, app),
		UIModel:      model,
		UIController: controller,
		Logger:       logger,
	})
	defer view.Shutdown()

	if len(cfg.Exercises) > 0 {
		controller.OnModeChange(ui.UIModeTimer)
	}

	// Signals close the UI the same way Escape does
	uiDone := make(chan struct{})
	watchSignals(ctx, logger, uiDone, model.RequestCloseApplication)

	logger.Println("Main: Starting UI")
	err := view.Run()
	close(uiDone)
	return err
}

// watchSignals calls onSignal once ctx is cancelled. The watcher exits without
// calling it when done is closed first.
func watchSignals(ctx context.Context, logger *log.Logger, done <-chan struct{}, onSignal func()) {
	go_func_utils.SafeGo(logger, "Main signal watcher", func() {
		select {
		case <-ctx.Done():
			onSignal()
		case <-done:
		}
	})
}

func printHistory(ctx context.Context, db *storage.DB, out io.Writer) error {
	sessions, err := db.ListSessions(ctx)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No saved sessions")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tDURATION\tROUNDS\tEXERCISES")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%d\n", s.Date.Local().Format("2006-01-02 15:04"),
			timer.FormatSeconds(s.TotalDurationSeconds), s.CompletedRounds(), s.TotalRounds(), len(s.Results))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	totals, err := db.Totals(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d sessions, %s total, %d/%d rounds\n", totals.Sessions,
		timer.FormatSeconds(totals.TotalDurationSeconds), totals.CompletedRounds, totals.PlannedRounds)
	return nil
}
