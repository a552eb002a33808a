package console

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"scrape-console/internal/model"
)

func entry(text string) model.LogEntry {
	return model.LogEntry{ReceivedAt: time.Now(), Text: text}
}

func TestLogBufferKeepsArrivalOrder(t *testing.T) {
	buf := NewLogBuffer()

	const n = 50
	for i := 0; i < n; i++ {
		buf.Append(entry(fmt.Sprintf("line %d", i)))
	}

	snap := buf.Snapshot()
	assert.Len(t, snap, n)
	for i, e := range snap {
		assert.Equal(t, fmt.Sprintf("line %d", i), e.Text)
	}
}

func TestLogBufferSnapshotIsRenderTimeConsistent(t *testing.T) {
	buf := NewLogBuffer()
	buf.Append(entry("first"))

	snap := buf.Snapshot()
	buf.Append(entry("second"))

	// The earlier snapshot must not see the later append.
	assert.Len(t, snap, 1)
	assert.Equal(t, 2, buf.Len())
}

func TestLogBufferClear(t *testing.T) {
	buf := NewLogBuffer()
	buf.Append(entry("old run output"))
	buf.Clear()

	assert.Equal(t, 0, buf.Len())
	assert.Empty(t, buf.Snapshot())

	buf.Append(entry("new run output"))
	assert.Equal(t, "new run output", buf.Snapshot()[0].Text)
}
