package snapshots

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/blackwell-systems/timetrack/internal/tracker"
)

// FromTracker captures the tracker's items and entries, stamped with the
// tracker's clock.
func FromTracker(t *tracker.Tracker) *SnapshotData {
	data := &SnapshotData{
		Version:   FormatVersion,
		CreatedAt: t.Clock().Now(),
		Items:     make([]*ItemSnapshot, 0, len(t.Items())),
	}

	for _, item := range t.Items() {
		is := &ItemSnapshot{
			Label:   item.Label(),
			Entries: make([]EntrySnapshot, 0, len(item.Entries())),
		}
		for _, e := range item.Entries() {
			es := EntrySnapshot{Start: e.Start()}
			if end, ok := e.End(); ok {
				es.End = &end
			}
			is.Entries = append(is.Entries, es)
		}
		data.Items = append(data.Items, is)
	}

	return data
}

// Write encodes the snapshot as indented JSON.
func Write(w io.Writer, data *SnapshotData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return errors.Wrap(err, "failed to marshal snapshot data")
	}
	return nil
}

// maxNameAttempts bounds the suffixes tried for snapshots created within the
// same second.
const maxNameAttempts = 100

// WriteFile writes the snapshot into dir as YYYY-MM-DD-HHMMSS.json, named
// after its creation time, and returns the file path. Existing files are
// never overwritten; a -N suffix is added instead.
func WriteFile(dir string, data *SnapshotData) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "failed to create snapshot directory")
	}

	f, path, err := createUnique(dir, data.CreatedAt.Format("2006-01-02-150405"))
	if err != nil {
		return "", err
	}

	if err := Write(f, data); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrap(err, "failed to write snapshot file")
	}

	return path, nil
}

// createUnique creates base.json in dir, or base-1.json, base-2.json and so
// on when the name is taken.
func createUnique(dir, base string) (*os.File, string, error) {
	for i := 0; i < maxNameAttempts; i++ {
		name := base + ".json"
		if i > 0 {
			name = fmt.Sprintf("%s-%d.json", base, i)
		}
		path := filepath.Join(dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return f, path, nil
		}
		if !os.IsExist(err) {
			return nil, "", errors.Wrap(err, "failed to create snapshot file")
		}
	}
	return nil, "", errors.Errorf("too many snapshots named %s in %s", base, dir)
}
