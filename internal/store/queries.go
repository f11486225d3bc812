package store

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/blackwell-systems/timetrack/internal/clock"
	"github.com/blackwell-systems/timetrack/internal/tracker"
)

// Snapshot operations

// SaveTracker replaces the stored state with the tracker's items and entries
// in a single transaction.
func (s *Store) SaveTracker(t *tracker.Tracker) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return wrapQueryErr(err, "failed to clear entries")
	}
	if _, err := tx.Exec(`DELETE FROM items`); err != nil {
		return wrapQueryErr(err, "failed to clear items")
	}

	for pos, item := range t.Items() {
		result, err := tx.Exec(`INSERT INTO items (label, position) VALUES (?, ?)`, item.Label(), pos)
		if err != nil {
			return errors.Wrapf(err, "failed to insert item %q", item.Label())
		}
		itemID, err := result.LastInsertId()
		if err != nil {
			return errors.Wrap(err, "failed to get item id")
		}

		for seq, entry := range item.Entries() {
			var endedAt sql.NullString
			if end, ok := entry.End(); ok {
				endedAt = sql.NullString{String: formatTime(end), Valid: true}
			}

			_, err := tx.Exec(`
				INSERT INTO entries (item_id, seq, started_at, ended_at)
				VALUES (?, ?, ?, ?)
			`, itemID, seq, formatTime(entry.Start()), endedAt)
			if err != nil {
				return errors.Wrapf(err, "failed to insert entry %d of %q", seq, item.Label())
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit tracker snapshot")
	}
	return nil
}

// LoadTracker rebuilds the stored tracker, reading time from clk.
func (s *Store) LoadTracker(clk clock.Clock) (*tracker.Tracker, error) {
	records, err := s.ListItems()
	if err != nil {
		return nil, err
	}

	items := make([]*tracker.Item, 0, len(records))
	for _, rec := range records {
		entryRecords, err := s.ListEntries(rec.ID)
		if err != nil {
			return nil, err
		}

		entries := make([]tracker.Entry, 0, len(entryRecords))
		for _, er := range entryRecords {
			entries = append(entries, tracker.RestoreEntry(er.StartedAt, er.EndedAt))
		}
		items = append(items, tracker.RestoreItem(rec.Label, entries))
	}

	t, err := tracker.Restore(clk, items)
	if err != nil {
		return nil, errors.Wrap(err, "stored tracker state is invalid")
	}
	return t, nil
}

// Item operations

// ListItems returns all items ordered by position.
func (s *Store) ListItems() ([]*ItemRecord, error) {
	rows, err := s.db.Query(`SELECT id, label, position FROM items ORDER BY position`)
	if err != nil {
		return nil, wrapQueryErr(err, "failed to list items")
	}
	defer rows.Close()

	var items []*ItemRecord
	for rows.Next() {
		var rec ItemRecord
		if err := rows.Scan(&rec.ID, &rec.Label, &rec.Position); err != nil {
			return nil, errors.Wrap(err, "failed to scan item row")
		}
		items = append(items, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating items")
	}

	return items, nil
}

// Entry operations

// ListEntries returns the entries of one item, oldest first.
func (s *Store) ListEntries(itemID int64) ([]*EntryRecord, error) {
	query := `
		SELECT item_id, seq, started_at, ended_at
		FROM entries
		WHERE item_id = ?
		ORDER BY seq
	`

	rows, err := s.db.Query(query, itemID)
	if err != nil {
		return nil, wrapQueryErr(err, "failed to list entries")
	}
	defer rows.Close()

	var entries []*EntryRecord
	for rows.Next() {
		var rec EntryRecord
		var startedAt string
		var endedAt sql.NullString

		if err := rows.Scan(&rec.ItemID, &rec.Seq, &startedAt, &endedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan entry row")
		}

		rec.StartedAt, err = parseTime(startedAt)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse started_at for item %d", itemID)
		}

		if endedAt.Valid {
			end, err := parseTime(endedAt.String)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to parse ended_at for item %d", itemID)
			}
			rec.EndedAt = &end
		}

		entries = append(entries, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating entries")
	}

	return entries, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
