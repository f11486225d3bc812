package app

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/timetrack/internal/snapshots"
	"github.com/blackwell-systems/timetrack/internal/tracker"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all items and entries as JSON",
	Long: `Write all items and their entries as JSON, to stdout or to a file.

The output can be loaded back with 'timetrack import'.`,
	Example: `  timetrack export > backup.json
  timetrack export --output backup.json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	var data *snapshots.SnapshotData
	err := withTracker(commandContext(cmd), false, func(t *tracker.Tracker) error {
		data = snapshots.FromTracker(t)
		return nil
	})
	if err != nil {
		return err
	}

	if exportOutput == "" {
		return snapshots.Write(cmd.OutOrStdout(), data)
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		return errors.Wrap(err, "failed to create export file")
	}
	if err := snapshots.Write(f, data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "failed to write export file")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d items to %s\n", len(data.Items), exportOutput)
	return nil
}
