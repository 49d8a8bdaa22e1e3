package ui

import (
	"fmt"
	"strings"

	"github.com/lowaak/boxing-trainer/internal/catalog"
	"github.com/lowaak/boxing-trainer/internal/session"
	"github.com/lowaak/boxing-trainer/internal/timer"
	"github.com/lowaak/boxing-trainer/internal/workout"
)

const historyDateLayout = "Mon 02 Jan 2006 15:04"

// phaseColor is the tview color tag for a phase
func phaseColor(phase timer.Phase) string {
	if phase == timer.PhaseRest {
		return "[blue]"
	}
	return "[red]"
}

// formatTimerPanel renders the countdown, the current exercise and the
// overall round position
func formatTimerPanel(state workout.State) string {
	var b strings.Builder
	b.WriteString("\n")

	if len(state.Exercises) == 0 {
		b.WriteString("  [gray]No exercises planned[white]\n\n")
		b.WriteString("  Add exercises in the Workout Planner (press 1).\n")
		return b.String()
	}

	if state.Completed {
		b.WriteString("  [green]Workout complete![white]\n\n")
		b.WriteString("  [gray]Press[white] [yellow]R[white] [gray]to reset and go again[white]\n")
		return b.String()
	}

	label := strings.ToUpper(state.Phase.String())
	switch state.RunState {
	case timer.RunStatePaused:
		label += " [gray](PAUSED)"
	case timer.RunStateStopped:
		label += " [gray](READY)"
	}
	fmt.Fprintf(&b, "  %s%s[white]\n\n", phaseColor(state.Phase), label)
	fmt.Fprintf(&b, "  %s%s[white]\n\n", phaseColor(state.Phase), bigDigits(state.Remaining))

	if current, ok := state.CurrentExercise(); ok {
		fmt.Fprintf(&b, "  [yellow]%s[white]  [gray]%s[white]\n", current.Exercise.Name, current.Exercise.Format())
		fmt.Fprintf(&b, "  [gray]Exercise round:[white] %d/%d\n", min(state.RoundIndex+1, current.Rounds), current.Rounds)
	}
	fmt.Fprintf(&b, "  [gray]Workout round:[white]  %d/%d\n", state.CurrentTotalRound, state.TotalRounds)
	fmt.Fprintf(&b, "  [gray]Progress:[white]       %s %.0f%%\n", progressBar(progress(state), 20), progress(state)*100)

	return b.String()
}

func progress(state workout.State) float64 {
	if state.TotalRounds <= 0 {
		return 0
	}
	return state.Progress()
}

// progressBar renders fraction as a fixed-width bar
func progressBar(fraction float64, width int) string {
	fraction = min(max(fraction, 0), 1)
	filled := int(fraction * float64(width))
	return "[green]" + strings.Repeat("█", filled) + "[gray]" + strings.Repeat("░", width-filled) + "[white]"
}

// bigDigits spaces out the countdown so it stands out in the panel
func bigDigits(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}

// formatPlanPanel lists planned exercises with their round progress
func formatPlanPanel(state workout.State) string {
	var b strings.Builder
	b.WriteString("\n")
	if len(state.Exercises) == 0 {
		b.WriteString("  [gray]Empty plan[white]\n")
		return b.String()
	}
	for i, ex := range state.Exercises {
		marker := "  "
		if i == state.ExerciseIndex && !state.Completed {
			marker = "[yellow]▶[white] "
		}
		status := fmt.Sprintf("%d/%d", ex.CompletedRounds, ex.Rounds)
		if ex.IsCompleted() {
			status = "[green]" + status + " ✓[white]"
		}
		fmt.Fprintf(&b, "  %s%d. %s  %s\n", marker, i+1, ex.Exercise.Name, status)
	}
	return b.String()
}

// formatControlsPanel shows the configured durations, the key bindings and
// the outcome of the last save
func formatControlsPanel(state workout.State, status SaveStatus) string {
	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "  [red]Work:[white] %s   [blue]Rest:[white] %s\n\n",
		timer.FormatSeconds(state.WorkSeconds), timer.FormatSeconds(state.RestSeconds))

	b.WriteString("  [yellow]Space[white] Start/Pause  |  [yellow]r[white] Reset round  |  [yellow]R[white] Reset workout\n")
	b.WriteString("  [yellow]n[white]/[yellow]p[white] Next/Previous exercise  |  [yellow]s[white] Save session\n")
	b.WriteString("  [yellow]+[white]/[yellow]-[white] Work time  |  [yellow]>[white]/[yellow]<[white] Rest time\n")

	switch {
	case status.Pending != nil:
		fmt.Fprintf(&b, "\n  [red]Save failed:[white] %v\n  [gray]Press[white] [yellow]s[white] [gray]to retry[white]\n", status.Err)
	case status.LastSaved != nil:
		fmt.Fprintf(&b, "\n  [green]Saved[white] %s (%d/%d rounds)\n",
			timer.FormatSeconds(status.LastSaved.TotalDurationSeconds),
			status.LastSaved.CompletedRounds(), status.LastSaved.TotalRounds())
	}
	return b.String()
}

// formatExerciseDetails renders one catalog exercise for the planner
func formatExerciseDetails(ex catalog.Exercise, planRounds int) string {
	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "  [yellow]%s[white]  [gray]%s[white]\n\n", ex.Name, ex.Format())
	fmt.Fprintf(&b, "  [gray]Category:[white]   %s\n", ex.Category)
	fmt.Fprintf(&b, "  [gray]Difficulty:[white] %s\n", ex.Difficulty)
	if len(ex.TargetMuscles) > 0 {
		muscles := make([]string, len(ex.TargetMuscles))
		for i, m := range ex.TargetMuscles {
			muscles[i] = string(m)
		}
		fmt.Fprintf(&b, "  [gray]Muscles:[white]    %s\n", strings.Join(muscles, ", "))
	}
	if len(ex.Equipment) > 0 {
		fmt.Fprintf(&b, "  [gray]Equipment:[white]  %s\n", strings.Join(ex.Equipment, ", "))
	}
	if ex.Description != "" {
		fmt.Fprintf(&b, "\n  %s\n", ex.Description)
	}
	if ex.Instructions != "" {
		fmt.Fprintf(&b, "\n  [gray]How:[white] %s\n", ex.Instructions)
	}
	for _, tip := range ex.Tips {
		fmt.Fprintf(&b, "  [green]+[white] %s\n", tip)
	}
	for _, mistake := range ex.CommonMistakes {
		fmt.Fprintf(&b, "  [red]-[white] %s\n", mistake)
	}
	fmt.Fprintf(&b, "\n  [green]Enter[white] adds it for [yellow]%d[white] rounds  |  [yellow]+[white]/[yellow]-[white] Rounds\n", planRounds)
	return b.String()
}

// formatHistoryItem is the one-line list entry for a saved session
func formatHistoryItem(s session.WorkoutSession) (main, secondary string) {
	main = s.Date.Local().Format(historyDateLayout)
	secondary = fmt.Sprintf("%s  %d/%d rounds  %d exercises",
		timer.FormatSeconds(s.TotalDurationSeconds), s.CompletedRounds(), s.TotalRounds(), len(s.Results))
	return main, secondary
}

// formatHistoryDetails renders the per-exercise results of a saved session
func formatHistoryDetails(s session.WorkoutSession) string {
	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "  [yellow]%s[white]\n\n", s.Date.Local().Format(historyDateLayout))
	fmt.Fprintf(&b, "  [gray]Duration:[white] %s\n", timer.FormatSeconds(s.TotalDurationSeconds))
	fmt.Fprintf(&b, "  [gray]Rounds:[white]   %d/%d\n\n", s.CompletedRounds(), s.TotalRounds())
	for _, r := range s.Results {
		fmt.Fprintf(&b, "  %s  %d/%d  [gray]%s[white]\n",
			r.ExerciseName, r.CompletedRounds, r.TotalRounds, timer.FormatSeconds(r.DurationSeconds))
	}
	b.WriteString("\n  [yellow]d[white] Delete session\n")
	return b.String()
}
