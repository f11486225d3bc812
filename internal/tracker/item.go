package tracker

import (
	"github.com/pkg/errors"

	"github.com/blackwell-systems/timetrack/internal/clock"
)

// Item is a labeled unit of work with its tracking history.
type Item struct {
	label   string
	entries []Entry
}

// NewItem creates an untracked item with no entries.
func NewItem(label string) *Item {
	return &Item{label: label}
}

// RestoreItem rebuilds an item from persisted entries, oldest first.
// The entries are checked by Restore, not here.
func RestoreItem(label string, entries []Entry) *Item {
	item := &Item{label: label}
	item.entries = append(item.entries, entries...)
	return item
}

// Label returns the item's label.
func (i *Item) Label() string {
	return i.label
}

// Track opens a new entry at the clock's current reading.
// Returns ErrAlreadyTracked if the last entry is still open.
func (i *Item) Track(clk clock.Clock) error {
	if i.IsTracked() {
		return ErrAlreadyTracked
	}
	i.entries = append(i.entries, NewEntry(clk))
	return nil
}

// IsTracked reports whether the item's last entry is open.
func (i *Item) IsTracked() bool {
	if len(i.entries) == 0 {
		return false
	}
	return !i.entries[len(i.entries)-1].HasEnded()
}

// EndTracking closes the last entry. It is a no-op on an item without
// entries and returns ErrAlreadyEnded if the last entry is already closed.
func (i *Item) EndTracking(clk clock.Clock) error {
	if len(i.entries) == 0 {
		return nil
	}
	return i.entries[len(i.entries)-1].EndTracking(clk)
}

// Entries returns a copy of the item's entries, oldest first.
func (i *Item) Entries() []Entry {
	out := make([]Entry, len(i.entries))
	copy(out, i.entries)
	return out
}

// LastEntry returns the most recent entry, and false if there are none.
func (i *Item) LastEntry() (Entry, bool) {
	if len(i.entries) == 0 {
		return Entry{}, false
	}
	return i.entries[len(i.entries)-1], true
}

// validate checks that only the last entry may be open.
func (i *Item) validate() error {
	for idx, e := range i.entries {
		if !e.HasEnded() && idx != len(i.entries)-1 {
			return errors.Wrapf(ErrInvalidState, "item %q: entry %d is open but not last", i.label, idx)
		}
	}
	return nil
}
