package app

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/timetrack/internal/output"
	"github.com/blackwell-systems/timetrack/internal/tracker"
	"github.com/blackwell-systems/timetrack/internal/watcher"
)

var statusFollow bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the currently tracked item",
	Long: `Display the item that is currently being tracked and when its
open entry started.

With --follow, the status is printed again whenever another timetrack
command changes the database, until interrupted with Ctrl+C.`,
	Example: `  # Show status once
  timetrack status

  # Keep status updated in a spare terminal
  timetrack status --follow`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVarP(&statusFollow, "follow", "f", false, "reprint when the database changes")

	RootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	last, err := printStatus(cmd, out, "")
	if err != nil {
		return err
	}
	if !statusFollow {
		return nil
	}

	path, err := getDBPath()
	if err != nil {
		return err
	}

	w, err := watcher.New(path)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("following database changes", "db", path)
	return w.Run(ctx, func() {
		line, err := printStatus(cmd, out, last)
		if err != nil {
			logger.Warn("failed to refresh status", "err", err)
			return
		}
		last = line
	})
}

// printStatus loads the tracker and writes its status line unless it equals
// previous. It returns the rendered line.
func printStatus(cmd *cobra.Command, out io.Writer, previous string) (string, error) {
	var line string
	err := withTracker(commandContext(cmd), false, func(t *tracker.Tracker) error {
		item, _ := t.CurrentlyTracked()
		line = output.RenderStatus(item, t.Clock().Now(), renderOptions())
		return nil
	})
	if err != nil {
		return "", err
	}

	if line != previous {
		fmt.Fprint(out, line)
	}
	return line, nil
}
