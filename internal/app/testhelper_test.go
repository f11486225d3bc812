package app

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/timetrack/internal/clock"
	"github.com/blackwell-systems/timetrack/internal/config"
)

var t1 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)

// setupTestEnv points the commands at a temp database, a mock clock and
// uncolored output, restoring the globals on cleanup.
func setupTestEnv(t *testing.T) *clock.Mock {
	t.Helper()

	origDBPath, origClock, origCfg := dbPath, appClock, cfg
	t.Cleanup(func() {
		dbPath, appClock, cfg = origDBPath, origClock, origCfg
	})

	dbPath = filepath.Join(t.TempDir(), "timetrack.db")

	clk := clock.NewMock(t1)
	appClock = clk

	cfg = config.DefaultConfig()
	cfg.Display.Color = config.ColorNever
	cfg.Display.TimeFormat = "15:04"

	return clk
}

// runCmd runs a command function with captured stdout.
func runCmd(t *testing.T, fn func(*cobra.Command, []string) error, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	err := fn(cmd, args)
	return buf.String(), err
}

// mustRun is runCmd that fails the test on error.
func mustRun(t *testing.T, fn func(*cobra.Command, []string) error, args ...string) string {
	t.Helper()
	out, err := runCmd(t, fn, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}
