package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/timetrack/internal/config"
)

var (
	dbPath     string
	configPath string
	logLevel   string

	// cfg is the loaded configuration; nil until the root pre-run has run.
	cfg *config.Config

	// RootCmd is the root command for timetrack
	RootCmd = &cobra.Command{
		Use:   "timetrack",
		Short: "Track time spent on named work items",
		Long: `timetrack records start/stop intervals against named work items.

At most one item is tracked at any moment: starting an item stops
whichever item was running before.

Quick Start:
  1. timetrack add "Writing"
  2. timetrack start "Writing"
  3. timetrack stop

Examples:
  # Register items
  timetrack add Writing Reading

  # Start (or switch to) an item
  timetrack start Reading

  # See what is running
  timetrack status

  # List items and their entries
  timetrack list
  timetrack log Reading

  # Back up and restore
  timetrack export --output backup.json
  timetrack import backup.json`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadSettings,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			path, err := getDBPath()
			if err == nil {
				if _, statErr := os.Stat(path); statErr == nil {
					fmt.Fprintln(out, "timetrack: time tracking for named work items")
					fmt.Fprintln(out)
					fmt.Fprintln(out, "Tip: Run 'timetrack status' to see what is being tracked.")
					fmt.Fprintln(out, "     Run 'timetrack --help' for all commands.")
					return nil
				}
			}
			fmt.Fprintln(out, "timetrack: time tracking for named work items")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Run 'timetrack add <label>' to create your first item.")
			fmt.Fprintln(out, "Run 'timetrack --help' for the full reference.")
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.timetrack/timetrack.db)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ~/.config/timetrack/config.toml)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default from config, else warn)")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// loadSettings loads the config file and applies the logging level.
// Flags take precedence over config values.
func loadSettings(cmd *cobra.Command, args []string) error {
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	if err := setupLogging(level); err != nil {
		return err
	}

	logger.Debug("loaded config", "path", configPath, "db", cfg.Database.Path, "color", cfg.Display.Color)
	return nil
}

// currentConfig returns the loaded config, or the defaults when commands run
// without the root pre-run.
func currentConfig() *config.Config {
	if cfg == nil {
		return config.DefaultConfig()
	}
	return cfg
}

// getDBPath returns the database path from the flag, the config file, or
// the default, in that order.
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if p := currentConfig().Database.Path; p != "" {
		return p, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}

	// Create .timetrack directory if it doesn't exist
	dir := filepath.Join(home, ".timetrack")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "failed to create timetrack directory")
	}

	return filepath.Join(dir, "timetrack.db"), nil
}
