// Package config reads the optional TOML configuration file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Unset keys are nil so
// callers can tell them apart from zero values.
type FileConfig struct {
	Coach   CoachConfig   `toml:"coach"`
	Storage StorageConfig `toml:"storage"`
	LLM     LLMConfig     `toml:"llm"`
}

// CoachConfig holds defaults for the planning and dashboard commands.
type CoachConfig struct {
	Subject        *string `toml:"subject"`
	Days           *int    `toml:"days"`
	DailyMinutes   *int    `toml:"daily-minutes"`
	MinutesPerWeek *int    `toml:"minutes-per-week"`
}

// StorageConfig selects where the profile and stats live.
type StorageConfig struct {
	Backend     *string `toml:"backend"`
	DB          *string `toml:"db"`
	PostgresURL *string `toml:"postgres-url"`
}

// LLMConfig selects the quiz generation provider.
type LLMConfig struct {
	Provider *string `toml:"provider"`
	Model    *string `toml:"model"`
}

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		fmt.Fprintf(os.Stderr, "warning: unknown config keys in %s: %s\n", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

// Validate checks the values that have a fixed range.
func (c FileConfig) Validate() error {
	if b := c.Storage.Backend; b != nil && *b != BackendSQLite && *b != BackendPostgres {
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendSQLite, BackendPostgres, *b)
	}
	if c.Storage.Backend != nil && *c.Storage.Backend == BackendPostgres && c.Storage.PostgresURL == nil {
		if os.Getenv("STEMCOACH_POSTGRES_URL") == "" {
			return fmt.Errorf("storage.postgres-url is required for the postgres backend")
		}
	}
	if d := c.Coach.Days; d != nil && (*d < 1 || *d > 365) {
		return fmt.Errorf("coach.days must be between 1 and 365, got %d", *d)
	}
	if m := c.Coach.DailyMinutes; m != nil && (*m < 1 || *m > 1440) {
		return fmt.Errorf("coach.daily-minutes must be between 1 and 1440, got %d", *m)
	}
	if m := c.Coach.MinutesPerWeek; m != nil && *m < 0 {
		return fmt.Errorf("coach.minutes-per-week must not be negative, got %d", *m)
	}
	return nil
}

// DefaultTemplate is the commented starter file written by `config init`.
func DefaultTemplate() string {
	return `# stemcoach configuration
# Uncomment a value to enable it. Flags and environment variables override these.

[coach]
# subject = "Physics"        # Default subject for plan and quiz
# days = 7                   # Study plan length
# daily-minutes = 60         # Minutes per plan day
# minutes-per-week = 0       # Minutes studied this week, for the dashboard tip

[storage]
# backend = "sqlite"         # "sqlite" or "postgres"
# db = ""                    # SQLite path (default under $XDG_DATA_HOME/stemcoach)
# postgres-url = ""          # Used when backend = "postgres"

[llm]
# provider = ""              # anthropic, openai, gemini, openrouter or mock
# model = ""                 # Provider model id or friendly name
`
}
