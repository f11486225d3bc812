package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T) (*Watcher, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "timetrack.db")

	w, err := New(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	w.SetDebounce(20 * time.Millisecond)
	return w, dbPath
}

func TestNew_EmptyPath(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "timetrack.db"))
	assert.Error(t, err)
}

func TestMatches(t *testing.T) {
	w, dbPath := newTestWatcher(t)
	dir := filepath.Dir(dbPath)

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{name: "db write", event: fsnotify.Event{Name: dbPath, Op: fsnotify.Write}, want: true},
		{name: "wal write", event: fsnotify.Event{Name: dbPath + "-wal", Op: fsnotify.Write}, want: true},
		{name: "wal create", event: fsnotify.Event{Name: dbPath + "-wal", Op: fsnotify.Create}, want: false},
		{name: "db chmod", event: fsnotify.Event{Name: dbPath, Op: fsnotify.Chmod}, want: false},
		{name: "lock file", event: fsnotify.Event{Name: dbPath + ".lock", Op: fsnotify.Write}, want: false},
		{name: "other file", event: fsnotify.Event{Name: filepath.Join(dir, "notes.txt"), Op: fsnotify.Write}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.matches(tt.event))
		})
	}
}

func TestRun_CallsBackOnWrite(t *testing.T) {
	w, dbPath := newTestWatcher(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() { changes <- struct{}{} })
	}()

	require.NoError(t, os.WriteFile(dbPath, []byte("snapshot"), 0644))

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change callback after writing the database file")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestRun_IgnoresUnrelatedFiles(t *testing.T) {
	w, dbPath := newTestWatcher(t)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	called := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() { called <- struct{}{} })
	}()

	other := filepath.Join(filepath.Dir(dbPath), "other.txt")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))

	require.NoError(t, <-done)
	assert.Empty(t, called)
}

func TestRun_DebouncesBursts(t *testing.T) {
	w, dbPath := newTestWatcher(t)
	w.SetDebounce(150 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 10)
	go func() {
		_ = w.Run(ctx, func() { changes <- struct{}{} })
	}()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(dbPath, []byte{byte(i)}, 0644))
	}

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change callback")
	}

	// The burst should have produced exactly one callback.
	time.Sleep(300 * time.Millisecond)
	assert.Empty(t, changes)
}
