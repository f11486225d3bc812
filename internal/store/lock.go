package store

import (
	"context"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

// ErrLocked is returned when another process holds the database lock until
// the context is done.
var ErrLocked = errors.New("timetrack database is locked by another process")

// lockRetryDelay is the delay between lock attempts.
const lockRetryDelay = 20 * time.Millisecond

// WithLock runs fn while holding an exclusive lock on dbPath + ".lock".
// Loading, changing and saving a tracker must happen under one lock so two
// commands cannot overwrite each other's snapshot.
func WithLock(ctx context.Context, dbPath string, fn func() error) error {
	lock := flock.New(dbPath + ".lock")

	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if ctx.Err() != nil {
			return errors.Wrapf(ErrLocked, "%s", dbPath)
		}
		return errors.Wrap(err, "failed to acquire database lock")
	}
	if !locked {
		return errors.Wrapf(ErrLocked, "%s", dbPath)
	}
	defer lock.Unlock()

	return fn()
}
