package tracker

import (
	"time"

	"github.com/blackwell-systems/timetrack/internal/clock"
)

// Entry is one start/stop interval of an item. The zero value is not useful;
// entries are created by NewEntry or RestoreEntry.
type Entry struct {
	start time.Time
	end   time.Time
	ended bool
}

// NewEntry starts an entry at the clock's current reading.
func NewEntry(clk clock.Clock) Entry {
	return Entry{start: clk.Now()}
}

// RestoreEntry rebuilds an entry from persisted values. A nil end yields an
// open entry.
func RestoreEntry(start time.Time, end *time.Time) Entry {
	e := Entry{start: start}
	if end != nil {
		e.end = *end
		e.ended = true
	}
	return e
}

// EndTracking closes the entry at the clock's current reading. An entry ends
// at most once; later calls return ErrAlreadyEnded and keep the first end.
func (e *Entry) EndTracking(clk clock.Clock) error {
	if e.ended {
		return ErrAlreadyEnded
	}
	e.end = clk.Now()
	e.ended = true
	return nil
}

// HasEnded reports whether the entry has an end time.
func (e Entry) HasEnded() bool {
	return e.ended
}

// Start returns the instant the entry was opened.
func (e Entry) Start() time.Time {
	return e.start
}

// End returns the instant the entry was closed, and false if it is still open.
func (e Entry) End() (time.Time, bool) {
	return e.end, e.ended
}
