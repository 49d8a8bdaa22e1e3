package ui

// UIMode represents the current UI mode/screen
type UIMode int

const (
	UIModePlanner UIMode = iota // Exercise catalog and workout plan
	UIModeTimer                 // Countdown and round progress
	UIModeHistory               // Saved sessions
)

// UIModeInfo contains display information for a UI mode
type UIModeInfo struct {
	Mode        UIMode
	DisplayName string
	KeyBinding  rune
}

// AllUIModes defines all available UI modes in order
var AllUIModes = []UIModeInfo{
	{Mode: UIModePlanner, DisplayName: "Workout Planner", KeyBinding: '1'},
	{Mode: UIModeTimer, DisplayName: "Round Timer", KeyBinding: '2'},
	{Mode: UIModeHistory, DisplayName: "History", KeyBinding: '3'},
}

// GetUIModeByKey returns the mode for a given key binding
func GetUIModeByKey(key rune) (UIMode, bool) {
	for _, info := range AllUIModes {
		if info.KeyBinding == key {
			return info.Mode, true
		}
	}
	return 0, false
}

// GetUIModeInfo returns the info for a given mode
func GetUIModeInfo(mode UIMode) (UIModeInfo, bool) {
	for _, info := range AllUIModes {
		if info.Mode == mode {
			return info, true
		}
	}
	return UIModeInfo{}, false
}

// Duration and round adjustments
const (
	DurationStepSeconds = 15
	MinWorkSeconds      = 15
	MaxWorkSeconds      = 10 * 60
	MaxRestSeconds      = 5 * 60

	DefaultPlanRounds = 3
	MaxPlanRounds     = 12
)
