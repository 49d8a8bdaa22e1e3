package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lowaak/boxing-trainer/internal/timer"
)

// AppDirName is the per-user directory holding the database, log, config
// and preferences
const AppDirName = ".boxing-trainer"

// PlannedExercise is one "id:rounds" entry from the command line or config
type PlannedExercise struct {
	ID     string
	Rounds int
}

// Config is the resolved application configuration
type Config struct {
	WorkSeconds          int
	RestSeconds          int
	RestBetweenExercises bool

	// Work/rest come from flags, env or file rather than saved preferences
	DurationsOverridden bool

	AppDir      string
	ConfigFile  string
	DBPath      string
	LogFile     string
	CatalogPath string
	Exercises   []PlannedExercise

	ServeAddr string
	History   bool
	NoUI      bool
}

// Load resolves configuration from args, BOXING_* environment variables and
// an optional YAML config file, in that order of precedence. It returns
// pflag.ErrHelp when help was requested.
func Load(args []string) (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	appDir := filepath.Join(homeDir, AppDirName)

	fs := pflag.NewFlagSet("boxing-trainer", pflag.ContinueOnError)
	fs.String("config", "", "config file (default ~/"+AppDirName+"/config.yaml)")
	fs.Int("work", timer.DefaultWorkSeconds, "work round length in seconds")
	fs.Int("rest", timer.DefaultRestSeconds, "rest length in seconds (0 skips rest)")
	fs.Bool("rest-between-exercises", false, "rest between the last round of an exercise and the next exercise")
	fs.String("db", filepath.Join(appDir, "history.db"), "session history database")
	fs.String("log-file", filepath.Join(appDir, "boxing-trainer.log"), "log file")
	fs.String("catalog", "", "YAML exercise catalog replacing the built-in one")
	fs.StringSlice("exercise", nil, "planned exercise as id:rounds (repeatable)")
	fs.String("serve", "", "serve the history API on this address, e.g. :8080")
	fs.Bool("history", false, "print the session history and exit")
	fs.Bool("no-ui", false, "run the workout without the terminal UI")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}
	v.SetEnvPrefix("BOXING")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	configFile := v.GetString("config")
	explicit := configFile != ""
	if !explicit {
		configFile = filepath.Join(appDir, "config.yaml")
	}
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		WorkSeconds:          v.GetInt("work"),
		RestSeconds:          v.GetInt("rest"),
		RestBetweenExercises: v.GetBool("rest-between-exercises"),
		DurationsOverridden:  v.IsSet("work") || v.IsSet("rest"),
		AppDir:               appDir,
		ConfigFile:           configFile,
		DBPath:               v.GetString("db"),
		LogFile:              v.GetString("log-file"),
		CatalogPath:          v.GetString("catalog"),
		ServeAddr:            v.GetString("serve"),
		History:              v.GetBool("history"),
		NoUI:                 v.GetBool("no-ui"),
	}

	cfg.Exercises, err = ParsePlan(v.GetStringSlice("exercise"))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects negative durations and empty paths
func (c *Config) Validate() error {
	if c.WorkSeconds < 0 {
		return fmt.Errorf("work must not be negative, got %d", c.WorkSeconds)
	}
	if c.RestSeconds < 0 {
		return fmt.Errorf("rest must not be negative, got %d", c.RestSeconds)
	}
	if c.DBPath == "" {
		return errors.New("db path must not be empty")
	}
	return nil
}

// ParsePlan parses "id:rounds" entries. Entries may also be comma separated.
// A missing round count means one round.
func ParsePlan(entries []string) ([]PlannedExercise, error) {
	var plan []PlannedExercise
	for _, entry := range entries {
		for _, item := range strings.Split(entry, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			id, roundsStr, hasRounds := strings.Cut(item, ":")
			rounds := 1
			if hasRounds {
				n, err := strconv.Atoi(roundsStr)
				if err != nil {
					return nil, fmt.Errorf("exercise %q: invalid rounds %q: %w", id, roundsStr, err)
				}
				rounds = n
			}
			if id == "" {
				return nil, fmt.Errorf("exercise %q: missing id", item)
			}
			if rounds < 1 {
				return nil, fmt.Errorf("exercise %q: rounds must be at least 1, got %d", id, rounds)
			}
			plan = append(plan, PlannedExercise{ID: id, Rounds: rounds})
		}
	}
	return plan, nil
}
