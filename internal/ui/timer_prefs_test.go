package ui

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerPrefs_MissingFile(t *testing.T) {
	var logs bytes.Buffer
	prefs := NewTimerPrefs(filepath.Join(t.TempDir(), "timer_prefs.json"), log.New(&logs, "", 0))

	_, _, ok := prefs.Durations()
	assert.False(t, ok)
	assert.Contains(t, logs.String(), "no existing file")
}

func TestTimerPrefs_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "timer_prefs.json")
	logger := log.New(&bytes.Buffer{}, "", 0)

	NewTimerPrefs(path, logger).SetDurations(120, 30)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"work_seconds":120,"rest_seconds":30}`, string(raw))

	work, rest, ok := NewTimerPrefs(path, logger).Durations()
	require.True(t, ok)
	assert.Equal(t, 120, work)
	assert.Equal(t, 30, rest)
}

func TestTimerPrefs_InvalidContentIsIgnored(t *testing.T) {
	logger := log.New(&bytes.Buffer{}, "", 0)
	tests := []struct {
		name    string
		content string
	}{
		{"corrupt", "{not json"},
		{"negative", `{"work_seconds":-5,"rest_seconds":30}`},
		{"partial", `{"work_seconds":90}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "timer_prefs.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, _, ok := NewTimerPrefs(path, logger).Durations()
			assert.False(t, ok)
		})
	}
}
