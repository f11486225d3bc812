// Package clock provides the time source used by the tracker.
//
// Code that needs "now" takes a Clock instead of calling time.Now directly,
// so tests can substitute a Mock whose instant they control.
package clock

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock returns the current instant.
type Clock interface {
	Now() time.Time
}

// System returns a Clock backed by the wall clock.
func System() Clock {
	return clockwork.NewRealClock()
}

// Fixed returns a Clock that always reads t. It is used to apply one reading
// to several state changes.
func Fixed(t time.Time) Clock {
	return fixed(t)
}

type fixed time.Time

func (f fixed) Now() time.Time { return time.Time(f) }

// Mock is a Clock whose reading is set by the caller. A single Mock is
// meant to be shared between a test and the code under test: every Set or
// Advance is visible to the next Now call.
type Mock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMock creates a Mock that reads t until changed.
func NewMock(t time.Time) *Mock {
	return &Mock{now: t}
}

// Now returns the configured instant.
func (m *Mock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set replaces the configured instant.
func (m *Mock) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the configured instant forward by d and returns the new reading.
func (m *Mock) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}

// Ensure both implementations satisfy Clock.
var (
	_ Clock = (*Mock)(nil)
	_ Clock = clockwork.NewRealClock()
)
