package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/stemcoach/internal/coach"
	"github.com/abhisek/stemcoach/internal/config"
	"github.com/abhisek/stemcoach/internal/profile"
	"github.com/abhisek/stemcoach/internal/store"
	"github.com/abhisek/stemcoach/internal/studystats"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stemcoach",
	Short: "AI study coach for STEM students",
	Long: `stemcoach tracks a learner's profile, study streak, quiz scores and mistakes,
and turns them into a readiness score, study plans and practice quizzes.

Quiz generation needs an LLM API key in one of ANTHROPIC_API_KEY,
OPENAI_API_KEY, GEMINI_API_KEY or OPENROUTER_API_KEY (or STEMCOACH_LLM_PROVIDER=mock).`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, launch{})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides STEMCOACH_DB env var)")
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/stemcoach/config.toml)")
	pf.String("backend", config.BackendSQLite, `Profile and stats backend: "sqlite" or "postgres"`)
	pf.String("postgres-url", "", "Postgres URL for the postgres backend (overrides STEMCOACH_POSTGRES_URL)")

	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(signalCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(readinessCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(toolCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadFileConfig reads the --config file, or the default path. A missing
// file yields an empty config.
func loadFileConfig(cmd *cobra.Command) (config.FileConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return config.LoadConfig(path)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STEMCOACH_DB env var, then storage.db from the config file, then the
// default XDG path.
func resolveDBPath(cmd *cobra.Command, file config.FileConfig) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if os.Getenv("STEMCOACH_DB") == "" && file.Storage.DB != nil && *file.Storage.DB != "" {
		return *file.Storage.DB, store.EnsureDir(*file.Storage.DB)
	}
	return store.DefaultDBPath()
}

// env is everything a command needs to reach the learner's data.
type env struct {
	file  config.FileConfig
	store *store.Store
	pg    *store.PostgresKV
	coach *coach.Service
}

// openEnv loads the config file and opens storage. Events always live in
// SQLite; the profile and stats live in SQLite or Postgres depending on
// the selected backend.
func openEnv(cmd *cobra.Command) (*env, error) {
	file, err := loadFileConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, file)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	e := &env{file: file, store: st}

	backend, _ := cmd.Flags().GetString("backend")
	applyStringConfig(cmd, "backend", &backend, file.Storage.Backend)

	var kv store.KV = st.KV()
	switch backend {
	case config.BackendSQLite:
	case config.BackendPostgres:
		url, err := postgresURL(cmd, file)
		if err != nil {
			e.Close()
			return nil, err
		}
		pg, err := store.OpenPostgresKV(cmd.Context(), url)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		e.pg = pg
		kv = pg
	default:
		e.Close()
		return nil, fmt.Errorf("unknown backend %q (want %q or %q)", backend, config.BackendSQLite, config.BackendPostgres)
	}

	events := st.EventRepo()
	e.coach = coach.New(profile.NewStore(kv), studystats.NewStore(kv), coach.WithEvents(events))
	return e, nil
}

// postgresURL resolves --postgres-url, then STEMCOACH_POSTGRES_URL, then
// storage.postgres-url.
func postgresURL(cmd *cobra.Command, file config.FileConfig) (string, error) {
	url, _ := cmd.Flags().GetString("postgres-url")
	if !cmd.Flags().Changed("postgres-url") {
		if v := os.Getenv("STEMCOACH_POSTGRES_URL"); v != "" {
			url = v
		} else if file.Storage.PostgresURL != nil {
			url = *file.Storage.PostgresURL
		}
	}
	if url == "" {
		return "", fmt.Errorf("the postgres backend needs --postgres-url, STEMCOACH_POSTGRES_URL or storage.postgres-url")
	}
	return url, nil
}

func (e *env) Events() store.EventRepo {
	return e.store.EventRepo()
}

func (e *env) Close() {
	if e.pg != nil {
		e.pg.Close()
	}
	e.store.Close()
}

// applyStringConfig copies a config file value into target unless the
// flag was set on the command line.
func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
