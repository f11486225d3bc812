package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/timetrack/internal/tracker"
)

var addCmd = &cobra.Command{
	Use:   "add LABEL...",
	Short: "Register one or more items",
	Long: `Register new items to track time against.

Labels are trimmed and must be unique. If any label is rejected, none of
the given labels are added.`,
	Example: `  # Add a single item
  timetrack add Writing

  # Add several items, quoting labels with spaces
  timetrack add "Deep work" Email Review`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	RootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	return withTracker(commandContext(cmd), true, func(t *tracker.Tracker) error {
		for _, label := range args {
			if err := t.AddItem(label); err != nil {
				return err
			}
		}
		items := t.Items()
		for _, item := range items[len(items)-len(args):] {
			fmt.Fprintf(out, "Added %s\n", item.Label())
		}
		return nil
	})
}
