// Package snapshots reads and writes tracker state as JSON files.
//
// Snapshots back the export and import commands, and a snapshot of the
// current state is written before an import replaces it.
package snapshots

import "time"

// FormatVersion is the version written to new snapshot files.
const FormatVersion = 1

// SnapshotData represents the JSON structure stored in snapshot files.
type SnapshotData struct {
	Version   int             `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	Items     []*ItemSnapshot `json:"items"`
}

// ItemSnapshot represents an item in a snapshot file.
type ItemSnapshot struct {
	Label   string          `json:"label"`
	Entries []EntrySnapshot `json:"entries"`
}

// EntrySnapshot represents one entry; End is omitted while it is open.
type EntrySnapshot struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}
