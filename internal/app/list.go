package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/timetrack/internal/output"
	"github.com/blackwell-systems/timetrack/internal/tracker"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List items and whether they are tracked",
	Example: `  timetrack list`,
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	RootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	return withTracker(commandContext(cmd), false, func(t *tracker.Tracker) error {
		fmt.Fprint(out, output.RenderItemTable(t.Items(), t.Clock().Now(), renderOptions()))
		return nil
	})
}
