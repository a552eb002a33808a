// Package console holds the console's state cells: the log buffer, the job
// controller and the query tester. The cells do no I/O and are only ever
// touched from the TUI's update loop, so they need no locking; network
// submission happens in the TUI's commands and feeds back in as messages.
package console

import "scrape-console/internal/model"

// LogBuffer is an append-only record of telemetry lines in arrival order.
// It is session-local and unbounded; nothing is evicted between clears.
type LogBuffer struct {
	entries []model.LogEntry
}

func NewLogBuffer() *LogBuffer {
	return &LogBuffer{}
}

// Append adds an entry at the end. Prior entries are never mutated,
// removed or reordered.
func (b *LogBuffer) Append(entry model.LogEntry) {
	b.entries = append(b.entries, entry)
}

// Snapshot returns a copy of the current sequence. Entries appended after
// the snapshot is taken are not visible in it.
func (b *LogBuffer) Snapshot() []model.LogEntry {
	out := make([]model.LogEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Clear resets the buffer. Called once per job start, never mid-job.
func (b *LogBuffer) Clear() {
	b.entries = nil
}

func (b *LogBuffer) Len() int {
	return len(b.entries)
}
