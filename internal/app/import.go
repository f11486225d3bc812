package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/timetrack/internal/snapshots"
	"github.com/blackwell-systems/timetrack/internal/tracker"
)

var importNoBackup bool

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace all items and entries with an export",
	Long: `Replace all items and entries with the contents of a file written by
'timetrack export'.

Unless --no-backup is given, the current state is saved to the snapshots
directory next to the database first.`,
	Example: `  timetrack import backup.json
  timetrack import --no-backup backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importNoBackup, "no-backup", false, "skip saving the current state first")
	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	file := args[0]

	data, err := snapshots.LoadFile(file)
	if err != nil {
		return err
	}
	imported, err := data.Tracker(appClock)
	if err != nil {
		return err
	}

	snapshotDir, err := getSnapshotDir()
	if err != nil {
		return err
	}

	return replaceTracker(commandContext(cmd), true, func(current *tracker.Tracker) (*tracker.Tracker, error) {
		if !importNoBackup && len(current.Items()) > 0 {
			path, err := snapshots.WriteFile(snapshotDir, snapshots.FromTracker(current))
			if err != nil {
				return nil, err
			}
			logger.Info("backed up tracker", "path", path)
			fmt.Fprintf(out, "Backed up current state to %s\n", path)
		}

		fmt.Fprintf(out, "Imported %d items from %s\n", len(imported.Items()), file)
		return imported, nil
	})
}
