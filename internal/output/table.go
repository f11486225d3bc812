// Package output provides terminal output utilities for timetrack.
//
// This package includes:
//   - Table rendering for items and their entries
//   - The one-line status of the currently tracked item
//   - Human-readable relative times and interval lengths
//
// Rendering functions take the current instant from the caller (normally the
// tracker's clock) so output is deterministic under a mock clock.
package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"

	"github.com/blackwell-systems/timetrack/internal/config"
	"github.com/blackwell-systems/timetrack/internal/tracker"
)

// ANSI color codes for status display
const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
)

// DefaultTimeFormat is used when Options.TimeFormat is empty.
const DefaultTimeFormat = "2006-01-02 15:04"

// Options controls rendering.
type Options struct {
	Color      bool
	TimeFormat string
}

func (o Options) timeFormat() string {
	if o.TimeFormat == "" {
		return DefaultTimeFormat
	}
	return o.TimeFormat
}

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// ColorForMode resolves a config color mode to a yes/no decision.
func ColorForMode(mode string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return IsColorEnabled()
	}
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(opts Options, color, text string) string {
	if opts.Color {
		return color + text + colorReset
	}
	return text
}

// RenderStatus renders the status line for the tracked item, or a hint when
// nothing is tracked (item nil).
func RenderStatus(item *tracker.Item, now time.Time, opts Options) string {
	if item == nil {
		return "Nothing is being tracked.\n"
	}

	last, ok := item.LastEntry()
	if !ok {
		return "Nothing is being tracked.\n"
	}

	return fmt.Sprintf("%s %s since %s (%s)\n",
		colorize(opts, colorGreen, "Tracking"),
		item.Label(),
		last.Start().Local().Format(opts.timeFormat()),
		formatRelativeTime(last.Start(), now))
}

// RenderItemTable renders all items with their tracking status.
// Items are shown in tracker order.
func RenderItemTable(items []*tracker.Item, now time.Time, opts Options) string {
	if len(items) == 0 {
		return "No items yet. Run 'timetrack add <label>' to create one.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-24s %-10s %-8s %s\n",
		"Item", "Status", "Entries", "Last Activity"))
	sb.WriteString(strings.Repeat("─", 64))
	sb.WriteString("\n")

	for _, item := range items {
		status := "idle"
		if item.IsTracked() {
			status = "tracking"
		}
		// Pad before coloring so escape codes don't break alignment.
		statusCol := fmt.Sprintf("%-10s", status)
		if item.IsTracked() {
			statusCol = colorize(opts, colorGreen, statusCol)
		} else {
			statusCol = colorize(opts, colorGray, statusCol)
		}

		sb.WriteString(fmt.Sprintf("%s %s %-8d %s\n",
			pad(truncate(item.Label(), 24), 24),
			statusCol,
			len(item.Entries()),
			lastActivity(item, now)))
	}

	return sb.String()
}

// RenderEntryTable renders the entries of one item, oldest first.
func RenderEntryTable(item *tracker.Item, now time.Time, opts Options) string {
	entries := item.Entries()
	if len(entries) == 0 {
		return fmt.Sprintf("%s has no entries.\n", item.Label())
	}

	layout := opts.timeFormat()
	width := len(layout)
	if width < 8 {
		width = 8
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-4s %-*s %-*s %s\n", "#", width, "Start", width, "End", "Length"))
	sb.WriteString(strings.Repeat("─", 4+2*width+16))
	sb.WriteString("\n")

	for i, e := range entries {
		start := e.Start().Local().Format(layout)
		end := "—"
		length := colorize(opts, colorGreen, "running")
		if t, ok := e.End(); ok {
			end = t.Local().Format(layout)
			length = formatLength(t.Sub(e.Start()))
		} else {
			length += " " + formatRelativeTime(e.Start(), now)
		}

		sb.WriteString(fmt.Sprintf("%-4d %s %s %s\n", i+1, pad(start, width), pad(end, width), length))
	}

	return sb.String()
}

// lastActivity describes the most recent start or end of an item.
func lastActivity(item *tracker.Item, now time.Time) string {
	last, ok := item.LastEntry()
	if !ok {
		return "never"
	}
	if end, ended := last.End(); ended {
		return "stopped " + formatRelativeTime(end, now)
	}
	return "started " + formatRelativeTime(last.Start(), now)
}

// formatRelativeTime formats t relative to now, e.g. "5 minutes ago".
func formatRelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// formatLength formats an interval length to the second, e.g. "1h5m0s".
func formatLength(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return d.Round(time.Second).String()
}

// truncate cuts s to at most width terminal columns, ending in "..." when
// there is room for it.
func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// pad fills s with spaces up to width terminal columns.
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}
