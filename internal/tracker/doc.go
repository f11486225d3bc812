// Package tracker implements the time-tracking state machine.
//
// A Tracker owns a list of Items, each identified by a unique label. An Item
// owns an ordered list of Entries, one per start/stop interval. Only the last
// entry of an item may be open, and across a Tracker at most one item is
// tracked at any time. Tracking is started and stopped through the Tracker,
// which reads the current instant from its clock.Clock.
//
// The package holds state in memory only and does no locking; callers that
// share a Tracker between goroutines must serialize access themselves.
//
// Example:
//
//	t := tracker.New(clock.System())
//	_ = t.AddItem("Writing")
//	if err := t.TrackItem("Writing"); err != nil {
//		return err
//	}
//	// ...
//	t.StopTrackingCurrentItem()
package tracker
