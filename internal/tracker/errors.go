package tracker

import "github.com/pkg/errors"

var (
	// ErrItemNotFound is returned when no item has the requested label.
	ErrItemNotFound = errors.New("item not found")

	// ErrDuplicateItem is returned when adding a label that already exists.
	ErrDuplicateItem = errors.New("item already exists")

	// ErrEmptyLabel is returned when a label is blank.
	ErrEmptyLabel = errors.New("item label must not be empty")

	// ErrAlreadyTracked is returned by Item.Track when the item's last entry is still open.
	ErrAlreadyTracked = errors.New("item is already tracked")

	// ErrAlreadyEnded is returned when ending an entry that has already ended.
	ErrAlreadyEnded = errors.New("entry has already ended")

	// ErrInvalidState is returned when restored items break a tracker invariant.
	ErrInvalidState = errors.New("invalid tracker state")
)
