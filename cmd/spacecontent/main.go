package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/spacecontent/internal/content"
	"github.com/nhle/spacecontent/internal/logging"
	"github.com/nhle/spacecontent/internal/model"
	"github.com/nhle/spacecontent/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "spacecontent",
	Short: "Manage the todo lists, generic lists and notes of a space",
	Long: `spacecontent keeps the todo lists, generic lists and notes of a space
in a local SQLite database.

Examples:
  # Show everything in the default space
  spacecontent show

  # Create a todo list and add an item due on a given day
  spacecontent --space work add-list "Work Tasks"
  spacecontent --space work add-item <list-id> "Task A" --due 2025-01-15

  # Lists with items due today
  spacecontent --space work due`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  openApp,
	PersistentPostRunE: closeApp,
}

var (
	// Global flags that apply to all commands
	configPath string
	dbPath     string
	spaceID    string
	logLevel   string
)

// app holds what every command needs once the root pre-run has finished.
var app struct {
	db     *store.SQLiteStore
	store  *content.Store
	logger *zap.Logger
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", model.DefaultConfigPath(), "Config file path")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database file path (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&spaceID, "space", "s", "", "Space to operate on (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug|info|warn|error (overrides config)")
}

func openApp(cmd *cobra.Command, _ []string) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if spaceID != "" {
		cfg.Space.Default = spaceID
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}

	if cfg.Database.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}
	db, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	app.db = db
	app.logger = logger
	app.store = content.New(db.Repositories(), content.WithLogger(logger))

	if err := app.store.LoadSpaceContent(commandContext(cmd), cfg.Space.Default); err != nil {
		// Cobra skips the post-run when the pre-run fails.
		_ = closeApp(cmd, nil)
		return err
	}
	return nil
}

// closeApp releases what openApp acquired. It is safe to call more than once.
func closeApp(*cobra.Command, []string) error {
	if app.logger != nil {
		_ = app.logger.Sync()
		app.logger = nil
	}
	if app.db == nil {
		return nil
	}
	db := app.db
	app.db = nil
	return db.Close()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func main() {
	err := rootCmd.Execute()
	// A failing command skips the post-run hook.
	_ = closeApp(nil, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
