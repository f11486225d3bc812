package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/timetrack/internal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the timetrack config file",
	Args:  cobra.NoArgs,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: `Write a config file with the default settings to the --config path,
or to config.toml in the timetrack config directory.

An existing file is left alone unless --force is given.`,
	Example: `  timetrack config init
  timetrack --config ./timetrack.toml config init --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := getConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd, configPathCmd)
	RootCmd.AddCommand(configCmd)
}

// getConfigPath returns the --config path, or config.toml in config.Dir.
func getConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	dir, err := config.Dir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get config directory")
	}
	return filepath.Join(dir, config.FileName), nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		return errors.Errorf("config file %s already exists (use --force to overwrite)", path)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	logger.Debug("wrote config", "path", path)

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
