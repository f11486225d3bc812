package snapshots

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/blackwell-systems/timetrack/internal/clock"
	"github.com/blackwell-systems/timetrack/internal/tracker"
)

// Read decodes a snapshot and checks its format version.
func Read(r io.Reader) (*SnapshotData, error) {
	var data SnapshotData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(err, "failed to parse snapshot")
	}
	if data.Version != FormatVersion {
		return nil, errors.Errorf("unsupported snapshot version %d (want %d)", data.Version, FormatVersion)
	}
	return &data, nil
}

// LoadFile reads a snapshot file.
func LoadFile(path string) (*SnapshotData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open snapshot file")
	}
	defer f.Close()

	return Read(f)
}

// Tracker rebuilds a tracker from the snapshot. Snapshots that break a
// tracker invariant are rejected.
func (d *SnapshotData) Tracker(clk clock.Clock) (*tracker.Tracker, error) {
	items := make([]*tracker.Item, 0, len(d.Items))
	for i, is := range d.Items {
		if is == nil {
			return nil, errors.Wrapf(tracker.ErrInvalidState, "snapshot item %d is null", i)
		}
		entries := make([]tracker.Entry, 0, len(is.Entries))
		for _, es := range is.Entries {
			entries = append(entries, tracker.RestoreEntry(es.Start, es.End))
		}
		items = append(items, tracker.RestoreItem(is.Label, entries))
	}

	t, err := tracker.Restore(clk, items)
	if err != nil {
		return nil, errors.Wrap(err, "snapshot is invalid")
	}
	return t, nil
}
