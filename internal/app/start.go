package app

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/timetrack/internal/tracker"
)

var startCmd = &cobra.Command{
	Use:     "start LABEL",
	Aliases: []string{"track"},
	Short:   "Start tracking an item",
	Long: `Start tracking the item with the given label.

If another item is being tracked it is stopped first, at the same instant
the new entry starts. Starting the item that is already tracked does nothing.`,
	Example: `  timetrack start Writing`,
	Args:    cobra.ExactArgs(1),
	RunE:    runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	label := args[0]

	return withTracker(commandContext(cmd), true, func(t *tracker.Tracker) error {
		previous, _ := t.CurrentlyTracked()

		if err := t.TrackItem(label); err != nil {
			if errors.Is(err, tracker.ErrItemNotFound) {
				return itemNotFound(err, label)
			}
			return err
		}

		item, _ := t.Item(label)
		if previous == item {
			fmt.Fprintf(out, "Already tracking %s\n", label)
			return nil
		}
		if previous != nil {
			fmt.Fprintf(out, "Stopped %s\n", previous.Label())
		}

		last, _ := item.LastEntry()
		fmt.Fprintf(out, "Started %s at %s\n", label, last.Start().Local().Format(renderOptions().TimeFormat))
		logger.Info("started tracking", "item", label)
		return nil
	})
}
