package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/timetrack/internal/tracker"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop tracking the current item",
	Long: `Stop tracking whichever item is currently tracked.

Does nothing when no item is tracked.`,
	Example: `  timetrack stop`,
	Args:    cobra.NoArgs,
	RunE:    runStop,
}

func init() {
	RootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	return withTracker(commandContext(cmd), true, func(t *tracker.Tracker) error {
		item := t.StopTrackingCurrentItem()
		if item == nil {
			fmt.Fprintln(out, "Nothing is being tracked.")
			return nil
		}

		last, _ := item.LastEntry()
		end, _ := last.End()
		fmt.Fprintf(out, "Stopped %s after %s\n", item.Label(), end.Sub(last.Start()).Round(time.Second))
		logger.Info("stopped tracking", "item", item.Label())
		return nil
	})
}
