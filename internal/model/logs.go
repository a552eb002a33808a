// internal/model/logs.go
package model

import "time"

// LogEntry is a single telemetry line, tagged with local receipt time.
// The text is the backend's frame verbatim; no schema is assumed.
type LogEntry struct {
	ReceivedAt time.Time
	Text       string
}
