package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// DefaultDebounce is how long the Watcher waits after the last event before
// calling back.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches a database file and the SQLite side files next to it.
type Watcher struct {
	fs       *fsnotify.Watcher
	names    map[string]bool
	debounce time.Duration
}

// New creates a Watcher for the database at dbPath. The file need not exist
// yet, but its directory must.
func New(dbPath string) (*Watcher, error) {
	if dbPath == "" {
		return nil, errors.New("database path cannot be empty")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create file watcher")
	}

	// Watch the directory: SQLite replaces and truncates the side files,
	// which drops watches placed on the files themselves.
	dir := filepath.Dir(dbPath)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, errors.Wrapf(err, "failed to watch %s", dir)
	}

	base := filepath.Base(dbPath)
	return &Watcher{
		fs: fsw,
		names: map[string]bool{
			base:              true,
			base + "-wal":     true,
			base + "-journal": true,
		},
		debounce: DefaultDebounce,
	}, nil
}

// SetDebounce changes the quiet period before a callback.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run calls onChange after each burst of writes to the database until ctx
// is done. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if w.matches(event) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			return errors.Wrap(err, "file watcher error")

		case <-timer.C:
			onChange()
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// matches reports whether the event is a write to a watched file. Creates
// are ignored: readers opening the database create the side files too.
func (w *Watcher) matches(event fsnotify.Event) bool {
	if !w.names[filepath.Base(event.Name)] {
		return false
	}
	return event.Has(fsnotify.Write)
}
