package app

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/timetrack/internal/output"
	"github.com/blackwell-systems/timetrack/internal/tracker"
)

var logCmd = &cobra.Command{
	Use:   "log LABEL",
	Short: "Show the entries recorded for an item",
	Long: `Show every start/stop interval recorded for an item, oldest first.
An entry that is still running is marked as such.`,
	Example: `  timetrack log Writing`,
	Args:    cobra.ExactArgs(1),
	RunE:    runLog,
}

func init() {
	RootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	label := args[0]

	return withTracker(commandContext(cmd), false, func(t *tracker.Tracker) error {
		item, ok := t.Item(label)
		if !ok {
			return itemNotFound(errors.Wrapf(tracker.ErrItemNotFound, "%q", label), label)
		}
		fmt.Fprint(out, output.RenderEntryTable(item, t.Clock().Now(), renderOptions()))
		return nil
	})
}
