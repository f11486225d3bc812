package app

import (
	"context"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/timetrack/internal/clock"
	"github.com/blackwell-systems/timetrack/internal/output"
	"github.com/blackwell-systems/timetrack/internal/store"
	"github.com/blackwell-systems/timetrack/internal/tracker"
)

var (
	// appClock is the tracker's time source; tests replace it with a mock.
	appClock clock.Clock = clock.System()

	// lockTimeout bounds how long a command waits for another one to finish.
	lockTimeout = 5 * time.Second
)

// withTracker loads the tracker, runs fn on it and, when save is set and fn
// succeeds, writes it back. The whole cycle holds the database lock.
func withTracker(ctx context.Context, save bool, fn func(*tracker.Tracker) error) error {
	return replaceTracker(ctx, save, func(t *tracker.Tracker) (*tracker.Tracker, error) {
		return t, fn(t)
	})
}

// replaceTracker is withTracker for callers that swap in a different
// tracker, such as import. The tracker fn returns is the one saved.
func replaceTracker(ctx context.Context, save bool, fn func(*tracker.Tracker) (*tracker.Tracker, error)) error {
	path, err := getDBPath()
	if err != nil {
		return errors.Wrap(err, "failed to get database path")
	}

	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	logger.Debug("acquiring database lock", "db", path)
	return store.WithLock(lockCtx, path, func() error {
		st, err := store.New(path)
		if err != nil {
			return err
		}
		defer st.Close()

		// Read-only commands leave a fresh database untouched.
		if save {
			if err := st.CreateSchema(); err != nil {
				return err
			}
		}

		t, err := st.LoadTracker(appClock)
		if errors.Is(err, store.ErrNotInitialized) && !save {
			t, err = tracker.New(appClock), nil
		}
		if err != nil {
			return err
		}
		logger.Debug("loaded tracker", "items", len(t.Items()))

		t, err = fn(t)
		if err != nil {
			return err
		}
		if !save {
			return nil
		}

		if err := st.SaveTracker(t); err != nil {
			return err
		}
		logger.Debug("saved tracker", "items", len(t.Items()))
		return nil
	})
}

// getSnapshotDir returns the directory import backups are written to,
// next to the database.
func getSnapshotDir() (string, error) {
	path, err := getDBPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(path), "snapshots"), nil
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// renderOptions builds output options from the config.
func renderOptions() output.Options {
	c := currentConfig()
	return output.Options{
		Color:      output.ColorForMode(c.Display.Color),
		TimeFormat: c.Display.TimeFormat,
	}
}

// itemNotFound adds a hint to a missing-item error.
func itemNotFound(err error, label string) error {
	return errors.Wrapf(err, "run 'timetrack add %q' to create it", label)
}
