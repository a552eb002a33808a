// internal/backend/logs.go
package backend

import (
	"context"
	"time"

	"github.com/gorilla/websocket"

	"scrape-console/internal/model"
)

const (
	initialBackoff = 1 * time.Second
	maxBackoff     = 30 * time.Second
)

// StreamEvent reports a telemetry connection lifecycle change. Connection
// state is deliberately separate from job state: a dropped stream means the
// console is blind, not that the job finished.
type StreamEvent struct {
	Connected bool
	Err       error // set when the connection dropped or a dial failed
}

// StreamLogs opens the telemetry stream and delivers every inbound frame in
// arrival order. The connection redials with capped exponential backoff
// after a drop; frames sent while no connection is up are lost. The
// returned cancel func releases the connection and must be called on every
// exit path from the console.
func (c *Client) StreamLogs(ctx context.Context) (<-chan model.LogEntry, <-chan StreamEvent, func()) {
	entries := make(chan model.LogEntry)
	events := make(chan StreamEvent, 1)

	ctx, cancel := context.WithCancel(ctx)

	go func() {
		defer close(entries)
		defer close(events)

		url := c.wsBase + "/ws/logs"
		backoff := initialBackoff

		for {
			conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				if !send(ctx, events, StreamEvent{Err: err}) {
					return
				}
				if !sleep(ctx, backoff) {
					return
				}
				backoff = min(backoff*2, maxBackoff)
				continue
			}
			backoff = initialBackoff

			if !send(ctx, events, StreamEvent{Connected: true}) {
				conn.Close()
				return
			}

			// ReadMessage blocks without regard for ctx; closing the
			// connection is what unblocks it on cancellation.
			watchDone := make(chan struct{})
			go func() {
				select {
				case <-ctx.Done():
					conn.Close()
				case <-watchDone:
				}
			}()

			readErr := c.readFrames(ctx, conn, entries)
			close(watchDone)
			conn.Close()

			if ctx.Err() != nil {
				return
			}
			if !send(ctx, events, StreamEvent{Err: readErr}) {
				return
			}
			if !sleep(ctx, backoff) {
				return
			}
			backoff = min(backoff*2, maxBackoff)
		}
	}()

	return entries, events, cancel
}

// readFrames forwards frames until the connection fails. Every frame is
// delivered exactly as received: no trimming, no empty-frame filtering.
// The backend owns the text; presentation is the feed's problem.
func (c *Client) readFrames(ctx context.Context, conn *websocket.Conn, entries chan<- model.LogEntry) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		entry := model.LogEntry{
			ReceivedAt: time.Now(),
			Text:       string(data),
		}
		select {
		case entries <- entry:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func send(ctx context.Context, events chan<- StreamEvent, ev StreamEvent) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
