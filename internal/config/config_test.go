package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"BOXING_WORK", "BOXING_REST", "BOXING_DB", "BOXING_EXERCISE", "BOXING_NO_UI"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return home
}

func TestLoad_Defaults(t *testing.T) {
	home := isolateHome(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 180, cfg.WorkSeconds)
	assert.Equal(t, 60, cfg.RestSeconds)
	assert.False(t, cfg.RestBetweenExercises)
	assert.False(t, cfg.DurationsOverridden)
	assert.Equal(t, filepath.Join(home, AppDirName), cfg.AppDir)
	assert.Equal(t, filepath.Join(home, AppDirName, "history.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(home, AppDirName, "boxing-trainer.log"), cfg.LogFile)
	assert.Empty(t, cfg.Exercises)
	assert.False(t, cfg.NoUI)
}

func TestLoad_Flags(t *testing.T) {
	isolateHome(t)

	cfg, err := Load([]string{
		"--work", "120", "--rest", "0", "--rest-between-exercises",
		"--exercise", "technique-1:3", "--exercise", "cardio-1",
		"--serve", ":8080", "--no-ui",
	})
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.WorkSeconds)
	assert.Equal(t, 0, cfg.RestSeconds)
	assert.True(t, cfg.RestBetweenExercises)
	assert.True(t, cfg.DurationsOverridden)
	assert.Equal(t, []PlannedExercise{{ID: "technique-1", Rounds: 3}, {ID: "cardio-1", Rounds: 1}}, cfg.Exercises)
	assert.Equal(t, ":8080", cfg.ServeAddr)
	assert.True(t, cfg.NoUI)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := isolateHome(t)

	dir := filepath.Join(home, AppDirName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("work: 90\nrest: 30\nexercise:\n  - technique-2:2\n"), 0o644))
	t.Setenv("BOXING_REST", "15")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.WorkSeconds)
	assert.Equal(t, 15, cfg.RestSeconds)
	assert.True(t, cfg.DurationsOverridden)
	assert.Equal(t, []PlannedExercise{{ID: "technique-2", Rounds: 2}}, cfg.Exercises)

	cfg, err = Load([]string{"--rest", "45"})
	require.NoError(t, err)
	assert.Equal(t, 45, cfg.RestSeconds, "flags win over env")
}

func TestLoad_ExplicitConfigMustExist(t *testing.T) {
	home := isolateHome(t)
	_, err := Load([]string{"--config", filepath.Join(home, "missing.yaml")})
	assert.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	isolateHome(t)

	tests := []struct {
		name string
		args []string
	}{
		{"negative work", []string{"--work", "-1"}},
		{"negative rest", []string{"--rest", "-5"}},
		{"zero rounds", []string{"--exercise", "technique-1:0"}},
		{"bad rounds", []string{"--exercise", "technique-1:many"}},
		{"unknown flag", []string{"--bogus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestLoad_Help(t *testing.T) {
	isolateHome(t)
	_, err := Load([]string{"--help"})
	assert.ErrorIs(t, err, pflag.ErrHelp)
}

func TestParsePlan(t *testing.T) {
	plan, err := ParsePlan([]string{"a:2,b", " c:1 ", ""})
	require.NoError(t, err)
	assert.Equal(t, []PlannedExercise{{"a", 2}, {"b", 1}, {"c", 1}}, plan)

	_, err = ParsePlan([]string{":3"})
	assert.Error(t, err)
}
