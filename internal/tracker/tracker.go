package tracker

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/blackwell-systems/timetrack/internal/clock"
)

// Tracker owns all items and the clock. It is the only component that should
// start or stop tracking, which keeps at most one item tracked at a time.
type Tracker struct {
	items []*Item
	clock clock.Clock
}

// New creates an empty Tracker reading time from clk.
func New(clk clock.Clock) *Tracker {
	return &Tracker{clock: clk}
}

// Restore rebuilds a Tracker from previously saved items, keeping their order.
// It returns ErrInvalidState (or ErrEmptyLabel/ErrDuplicateItem) when the
// items break an invariant.
func Restore(clk clock.Clock, items []*Item) (*Tracker, error) {
	t := &Tracker{clock: clk}
	t.items = append(t.items, items...)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Clock returns the tracker's time source.
func (t *Tracker) Clock() clock.Clock {
	return t.clock
}

// AddItem registers a new untracked item. Labels are trimmed and must be
// unique within the tracker.
func (t *Tracker) AddItem(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return ErrEmptyLabel
	}
	if _, ok := t.Item(label); ok {
		return errors.Wrapf(ErrDuplicateItem, "%q", label)
	}
	t.items = append(t.items, NewItem(label))
	return nil
}

// Item returns the item with the given label.
func (t *Tracker) Item(label string) (*Item, bool) {
	for _, item := range t.items {
		if item.label == label {
			return item, true
		}
	}
	return nil, false
}

// Items returns the tracker's items in insertion order.
func (t *Tracker) Items() []*Item {
	out := make([]*Item, len(t.items))
	copy(out, t.items)
	return out
}

// TrackItem starts tracking the item with the given label. Any other tracked
// item is stopped first, at the same clock reading the new entry starts with.
// Tracking the item that is already tracked changes nothing.
func (t *Tracker) TrackItem(label string) error {
	item, ok := t.Item(label)
	if !ok {
		return errors.Wrapf(ErrItemNotFound, "%q", label)
	}
	if item.IsTracked() {
		return nil
	}

	now := clock.Fixed(t.clock.Now())
	if current, ok := t.CurrentlyTracked(); ok {
		if err := current.EndTracking(now); err != nil {
			return errors.Wrapf(err, "stop %q", current.label)
		}
	}
	return item.Track(now)
}

// CurrentlyTracked returns the first tracked item, if any.
func (t *Tracker) CurrentlyTracked() (*Item, bool) {
	for _, item := range t.items {
		if item.IsTracked() {
			return item, true
		}
	}
	return nil, false
}

// StopTrackingCurrentItem ends the tracked item's open entry and returns the
// item. It returns nil and changes nothing when no item is tracked.
func (t *Tracker) StopTrackingCurrentItem() *Item {
	item, ok := t.CurrentlyTracked()
	if !ok {
		return nil
	}
	// A tracked item's last entry is open, so this cannot fail.
	_ = item.EndTracking(t.clock)
	return item
}

// Validate checks the tracker invariants: labels are non-empty, trimmed and
// unique, only the last entry of an item is open, and at most one item is
// tracked.
func (t *Tracker) Validate() error {
	seen := make(map[string]bool, len(t.items))
	var tracked []string

	for _, item := range t.items {
		if strings.TrimSpace(item.label) == "" {
			return ErrEmptyLabel
		}
		if item.label != strings.TrimSpace(item.label) {
			return errors.Wrapf(ErrInvalidState, "label %q has surrounding whitespace", item.label)
		}
		if seen[item.label] {
			return errors.Wrapf(ErrDuplicateItem, "%q", item.label)
		}
		seen[item.label] = true

		if err := item.validate(); err != nil {
			return err
		}
		if item.IsTracked() {
			tracked = append(tracked, item.label)
		}
	}

	if len(tracked) > 1 {
		return errors.Wrapf(ErrInvalidState, "%d items tracked at once: %s", len(tracked), strings.Join(tracked, ", "))
	}
	return nil
}
