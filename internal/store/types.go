package store

import "time"

// ItemRecord is a row of the items table.
type ItemRecord struct {
	ID       int64
	Label    string
	Position int
}

// EntryRecord is a row of the entries table. EndedAt is nil for an open entry.
type EntryRecord struct {
	ItemID    int64
	Seq       int
	StartedAt time.Time
	EndedAt   *time.Time
}
