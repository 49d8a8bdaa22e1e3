package ui

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

type timerPrefsData struct {
	WorkSeconds *int `json:"work_seconds,omitempty"`
	RestSeconds *int `json:"rest_seconds,omitempty"`
}

// TimerPrefs persists the last used work and rest durations as JSON
type TimerPrefs struct {
	mu       sync.Mutex
	filePath string
	data     timerPrefsData
	logger   *log.Logger
}

// NewTimerPrefs loads preferences from filePath, starting empty when the
// file is missing or unreadable
func NewTimerPrefs(filePath string, logger *log.Logger) *TimerPrefs {
	if logger == nil {
		panic("TimerPrefs: logger cannot be nil")
	}
	p := &TimerPrefs{
		filePath: filePath,
		logger:   logger,
	}
	p.load()
	return p
}

// DefaultTimerPrefsPath is the preferences file inside the app directory
func DefaultTimerPrefsPath(appDir string) string {
	return filepath.Join(appDir, "timer_prefs.json")
}

// Durations returns the saved durations. ok is false when none were saved.
func (p *TimerPrefs) Durations() (workSeconds, restSeconds int, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.data.WorkSeconds == nil || p.data.RestSeconds == nil {
		return 0, 0, false
	}
	return *p.data.WorkSeconds, *p.data.RestSeconds, true
}

// SetDurations saves new durations
func (p *TimerPrefs) SetDurations(workSeconds, restSeconds int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logger.Printf("TimerPrefs: setDurations work=%d rest=%d", workSeconds, restSeconds)
	p.data.WorkSeconds = &workSeconds
	p.data.RestSeconds = &restSeconds
	p.save()
}

func (p *TimerPrefs) load() {
	p.data = timerPrefsData{}
	raw, err := os.ReadFile(p.filePath)
	if err != nil {
		p.logger.Printf("TimerPrefs: load %s (no existing file)", p.filePath)
		return
	}
	if err := json.Unmarshal(raw, &p.data); err != nil {
		p.logger.Printf("TimerPrefs: load %s failed to parse: %v", p.filePath, err)
		p.data = timerPrefsData{}
		return
	}
	if (p.data.WorkSeconds != nil && *p.data.WorkSeconds < 0) || (p.data.RestSeconds != nil && *p.data.RestSeconds < 0) {
		p.logger.Printf("TimerPrefs: load %s ignored negative durations", p.filePath)
		p.data = timerPrefsData{}
		return
	}
	p.logger.Printf("TimerPrefs: load %s", p.filePath)
}

// save must be called with mu held
func (p *TimerPrefs) save() {
	if err := os.MkdirAll(filepath.Dir(p.filePath), 0755); err != nil {
		p.logger.Printf("TimerPrefs: save mkdir failed: %v", err)
		return
	}
	raw, err := json.MarshalIndent(p.data, "", "  ")
	if err != nil {
		p.logger.Printf("TimerPrefs: save marshal failed: %v", err)
		return
	}
	if err := os.WriteFile(p.filePath, raw, 0644); err != nil {
		p.logger.Printf("TimerPrefs: save %s failed: %v", p.filePath, err)
		return
	}
	p.logger.Printf("TimerPrefs: save %s", p.filePath)
}
