package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/timetrack/internal/config"
	"github.com/blackwell-systems/timetrack/internal/store"
	"github.com/blackwell-systems/timetrack/internal/tracker"
)

func TestRunAdd(t *testing.T) {
	setupTestEnv(t)

	out := mustRun(t, runAdd, "Writing", "Reading")
	assert.Contains(t, out, "Added Writing")
	assert.Contains(t, out, "Added Reading")

	out = mustRun(t, runList)
	assert.Contains(t, out, "Writing")
	assert.Contains(t, out, "Reading")
}

func TestRunAdd_PrintsTrimmedLabel(t *testing.T) {
	setupTestEnv(t)

	out := mustRun(t, runAdd, " A ", "B")
	assert.Equal(t, "Added A\nAdded B\n", out)
}

func TestRunAdd_DuplicateAddsNothing(t *testing.T) {
	setupTestEnv(t)
	mustRun(t, runAdd, "Writing")

	_, err := runCmd(t, runAdd, "Email", "Writing")
	assert.ErrorIs(t, err, tracker.ErrDuplicateItem)

	out := mustRun(t, runList)
	assert.NotContains(t, out, "Email", "a rejected batch must not be saved")
}

func TestRunAdd_EmptyLabel(t *testing.T) {
	setupTestEnv(t)

	_, err := runCmd(t, runAdd, "  ")
	assert.ErrorIs(t, err, tracker.ErrEmptyLabel)
}

func TestRunStart_UnknownItem(t *testing.T) {
	setupTestEnv(t)

	_, err := runCmd(t, runStart, "Missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, tracker.ErrItemNotFound), "error = %v", err)
	assert.Contains(t, err.Error(), "timetrack add")
}

func TestRunStartStop_WritingScenario(t *testing.T) {
	clk := setupTestEnv(t)
	mustRun(t, runAdd, "Writing")

	out := mustRun(t, runStart, "Writing")
	assert.Contains(t, out, "Started Writing at 09:00")

	out = mustRun(t, runStatus)
	assert.Contains(t, out, "Tracking Writing since 09:00")

	clk.Advance(45 * time.Minute)
	out = mustRun(t, runStop)
	assert.Contains(t, out, "Stopped Writing after 45m0s")

	out = mustRun(t, runStatus)
	assert.Contains(t, out, "Nothing is being tracked")

	out = mustRun(t, runLog, "Writing")
	assert.Contains(t, out, "09:00")
	assert.Contains(t, out, "09:45")
	assert.Contains(t, out, "45m0s")
}

func TestRunStart_SwitchesItems(t *testing.T) {
	clk := setupTestEnv(t)
	mustRun(t, runAdd, "A", "B")
	mustRun(t, runStart, "A")

	clk.Advance(10 * time.Minute)
	out := mustRun(t, runStart, "B")
	assert.Contains(t, out, "Stopped A")
	assert.Contains(t, out, "Started B at 09:10")

	out = mustRun(t, runStatus)
	assert.Contains(t, out, "Tracking B")

	lines := strings.Split(mustRun(t, runList), "\n")
	var aLine, bLine string
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "A "):
			aLine = line
		case strings.HasPrefix(line, "B "):
			bLine = line
		}
	}
	assert.Contains(t, aLine, "idle")
	assert.Contains(t, bLine, "tracking")
}

func TestRunStart_AlreadyTracked(t *testing.T) {
	clk := setupTestEnv(t)
	mustRun(t, runAdd, "A")
	mustRun(t, runStart, "A")

	clk.Advance(time.Minute)
	out := mustRun(t, runStart, "A")
	assert.Contains(t, out, "Already tracking A")

	out = mustRun(t, runLog, "A")
	assert.Equal(t, 1, strings.Count(out, "running"))
}

func TestRunStop_NothingTracked(t *testing.T) {
	setupTestEnv(t)

	out := mustRun(t, runStop)
	assert.Contains(t, out, "Nothing is being tracked")

	mustRun(t, runAdd, "A")
	out = mustRun(t, runStop)
	assert.Contains(t, out, "Nothing is being tracked")
}

func TestRunLog_UnknownItem(t *testing.T) {
	setupTestEnv(t)

	_, err := runCmd(t, runLog, "Missing")
	assert.ErrorIs(t, err, tracker.ErrItemNotFound)
}

func TestRunList_Empty(t *testing.T) {
	setupTestEnv(t)

	out := mustRun(t, runList)
	assert.Contains(t, out, "No items yet")
}

func TestReadOnlyCommandsOnFreshDatabase(t *testing.T) {
	setupTestEnv(t)

	out := mustRun(t, runStatus)
	assert.Contains(t, out, "Nothing is being tracked")

	out = mustRun(t, runList)
	assert.Contains(t, out, "No items yet")
}

func TestWithTracker_Locked(t *testing.T) {
	setupTestEnv(t)

	origTimeout := lockTimeout
	lockTimeout = 50 * time.Millisecond
	defer func() { lockTimeout = origTimeout }()

	err := store.WithLock(context.Background(), dbPath, func() error {
		_, err := runCmd(t, runList)
		return err
	})
	assert.ErrorIs(t, err, store.ErrLocked)
}

func TestPrintStatus_SkipsUnchangedLine(t *testing.T) {
	setupTestEnv(t)
	mustRun(t, runAdd, "A")

	var first string
	out := mustRun(t, func(cmd *cobra.Command, args []string) error {
		line, err := printStatus(cmd, cmd.OutOrStdout(), "")
		first = line
		return err
	})
	assert.Contains(t, out, "Nothing is being tracked")

	out = mustRun(t, func(cmd *cobra.Command, args []string) error {
		_, err := printStatus(cmd, cmd.OutOrStdout(), first)
		return err
	})
	assert.Empty(t, out)
}

func TestRunExportImport(t *testing.T) {
	clk := setupTestEnv(t)
	mustRun(t, runAdd, "Writing", "Reading")
	mustRun(t, runStart, "Writing")
	clk.Advance(20 * time.Minute)

	file := filepath.Join(t.TempDir(), "export.json")
	exportOutput = file
	defer func() { exportOutput = "" }()

	out := mustRun(t, runExport)
	assert.Contains(t, out, "Exported 2 items")

	// Diverge from the export, then import it back.
	mustRun(t, runStop)
	mustRun(t, runAdd, "Email")

	out = mustRun(t, runImport, file)
	assert.Contains(t, out, "Backed up current state to")
	assert.Contains(t, out, "Imported 2 items")

	out = mustRun(t, runStatus)
	assert.Contains(t, out, "Tracking Writing since 09:00")

	out = mustRun(t, runList)
	assert.NotContains(t, out, "Email")

	snapshotDir, err := getSnapshotDir()
	require.NoError(t, err)
	backups, err := os.ReadDir(snapshotDir)
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestRunExport_Stdout(t *testing.T) {
	setupTestEnv(t)
	mustRun(t, runAdd, "Writing")

	out := mustRun(t, runExport)
	assert.Contains(t, out, `"label": "Writing"`)
	assert.Contains(t, out, `"version": 1`)
}

func TestRunImport_InvalidFileChangesNothing(t *testing.T) {
	setupTestEnv(t)
	mustRun(t, runAdd, "Writing")

	file := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"version": 1, "items": [{"label": ""}]}`), 0644))

	_, err := runCmd(t, runImport, file)
	assert.ErrorIs(t, err, tracker.ErrEmptyLabel)

	out := mustRun(t, runList)
	assert.Contains(t, out, "Writing")
}

func TestRunConfigInit(t *testing.T) {
	setupTestEnv(t)

	origConfigPath := configPath
	defer func() { configPath, configForce = origConfigPath, false }()
	configPath = filepath.Join(t.TempDir(), "nested", config.FileName)

	out := mustRun(t, runConfigInit)
	assert.Contains(t, out, "Wrote "+configPath)

	loaded, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)

	_, err = runCmd(t, runConfigInit)
	assert.ErrorContains(t, err, "already exists")

	configForce = true
	mustRun(t, runConfigInit)
}
