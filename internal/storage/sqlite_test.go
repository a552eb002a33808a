package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordStartAndRecent(t *testing.T) {
	store := openTestStore(t)

	id, err := store.RecordStart(Run{
		Target:    "http://example.com/listings",
		Mode:      "auto",
		DryRun:    true,
		Limit:     3,
		StartedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	runs, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, "http://example.com/listings", run.Target)
	assert.Equal(t, "auto", run.Mode)
	assert.True(t, run.DryRun)
	assert.Equal(t, 3, run.Limit)
	assert.Equal(t, OutcomeRunning, run.Outcome)
	assert.True(t, run.FinishedAt.IsZero())
}

func TestSettle(t *testing.T) {
	store := openTestStore(t)

	id, err := store.RecordStart(Run{Target: "http://x", Mode: "person", StartedAt: time.Now()})
	require.NoError(t, err)

	require.NoError(t, store.Settle(id, OutcomeSuccess))

	runs, err := store.Recent(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, OutcomeSuccess, runs[0].Outcome)
	assert.False(t, runs[0].FinishedAt.IsZero())
}

func TestSettleKeepsFirstOutcome(t *testing.T) {
	store := openTestStore(t)

	id, err := store.RecordStart(Run{Target: "http://x", Mode: "auto", StartedAt: time.Now()})
	require.NoError(t, err)

	require.NoError(t, store.Settle(id, OutcomeStopped))
	// A late success marker arrives after the user already stopped the run.
	require.NoError(t, store.Settle(id, OutcomeSuccess))

	runs, err := store.Recent(1)
	require.NoError(t, err)
	assert.Equal(t, OutcomeStopped, runs[0].Outcome)
}

func TestRecentNewestFirst(t *testing.T) {
	store := openTestStore(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		_, err := store.RecordStart(Run{
			Target:    "http://x",
			Mode:      "auto",
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	runs, err := store.Recent(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.True(t, runs[0].StartedAt.After(runs[1].StartedAt))
}
