package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrape-console/internal/backend"
	"scrape-console/internal/console"
	"scrape-console/internal/model"
)

// fakeAPI records control calls without any network.
type fakeAPI struct {
	started        []model.JobRequest
	stopped        int
	startErr       error
	stopErr        error
	streamReleased bool
}

func (f *fakeAPI) StartScrape(_ context.Context, req model.JobRequest) error {
	f.started = append(f.started, req)
	return f.startErr
}

func (f *fakeAPI) StopScrape(context.Context) error {
	f.stopped++
	return f.stopErr
}

func (f *fakeAPI) Query(_ context.Context, _ model.QueryTarget, _ string) (string, error) {
	return "", nil
}

func (f *fakeAPI) StreamLogs(context.Context) (<-chan model.LogEntry, <-chan backend.StreamEvent, func()) {
	entries := make(chan model.LogEntry)
	events := make(chan backend.StreamEvent)
	return entries, events, func() { f.streamReleased = true }
}

var fakeMarkers = console.Markers{
	Success: "Scraper finished with exit code",
	Failure: "Error running scraper",
}

func newTestModel(t *testing.T, api *fakeAPI) Model {
	t.Helper()
	m := NewModel(api, nil, fakeMarkers)
	m.width = 120
	m.height = 40
	m.urlInput.SetValue("http://example.com")
	return m
}

func line(text string) logLineMsg {
	return logLineMsg{entry: model.LogEntry{ReceivedAt: time.Now(), Text: text}}
}

// pressEnter drives the job form's start action.
func pressEnter(m Model) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func TestStartFromFormFlipsRunningAndIssuesCommand(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)

	m, cmd := pressEnter(m)
	require.NotNil(t, cmd, "start must fire a command")
	assert.True(t, m.job.Running())

	// Execute the command the way the runtime would.
	msg := cmd()
	action, ok := msg.(jobActionMsg)
	require.True(t, ok)
	require.NoError(t, action.err)

	require.Len(t, api.started, 1)
	assert.Equal(t, "http://example.com", api.started[0].URL)
	assert.Equal(t, model.ModeAuto, api.started[0].Mode)
}

func TestStartWithEmptyTargetIsRefused(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)
	m.urlInput.SetValue("")

	m, cmd := pressEnter(m)
	assert.Nil(t, cmd)
	assert.False(t, m.job.Running())
	assert.NotEmpty(t, m.alert)
	assert.Empty(t, api.started)
}

func TestStartWhileRunningDoesNotDoubleIssue(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)

	m, cmd := pressEnter(m)
	require.NotNil(t, cmd)
	cmd()

	m, cmd = pressEnter(m)
	assert.Nil(t, cmd, "second start while running must be a no-op")
	require.Len(t, api.started, 1)
}

func TestTerminalMarkerFlipsIdle(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)

	m, _ = pressEnter(m)
	require.True(t, m.job.Running())

	for _, text := range []string{"fetching page 1", "fetching page 2", "parsing records"} {
		next, _ := m.Update(line(text))
		m = next.(Model)
	}
	assert.True(t, m.job.Running())
	assert.Equal(t, 3, m.logs.Len())

	next, _ := m.Update(line("Scraper finished with exit code 0"))
	m = next.(Model)

	assert.False(t, m.job.Running())
	assert.Equal(t, 4, m.logs.Len())
}

func TestStopIsImmediateEvenBeforeCommandResolves(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)

	m, _ = pressEnter(m)
	require.True(t, m.job.Running())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	m = next.(Model)
	require.NotNil(t, cmd)

	// Idle before the stop command has even run.
	assert.False(t, m.job.Running())

	cmd()
	assert.Equal(t, 1, api.stopped)

	// A late success marker still appends but cannot resurrect anything.
	next, _ = m.Update(line("Scraper finished with exit code 0"))
	m = next.(Model)
	assert.False(t, m.job.Running())
	assert.Equal(t, 1, m.logs.Len())
}

func TestFailedStartCommandForcesIdleAndAlerts(t *testing.T) {
	api := &fakeAPI{startErr: assert.AnError}
	m := newTestModel(t, api)

	m, cmd := pressEnter(m)
	require.NotNil(t, cmd)
	require.True(t, m.job.Running())

	next, _ := m.Update(cmd())
	m = next.(Model)

	assert.False(t, m.job.Running())
	assert.Contains(t, m.alert, "Command failed")
}

func TestStreamDropDoesNotTouchJobState(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)

	m, _ = pressEnter(m)
	require.True(t, m.job.Running())

	next, _ := m.Update(streamEventMsg{event: backend.StreamEvent{Err: assert.AnError}})
	m = next.(Model)

	assert.True(t, m.job.Running(), "a dropped stream is not job completion")
	assert.False(t, m.streamConnected)
}

func TestCloseReleasesStream(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)

	require.False(t, api.streamReleased)
	m.Close()
	assert.True(t, api.streamReleased)
}

func TestQueryResultLandsUnlessStale(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)

	gen := m.query.Begin()

	next, _ := m.Update(queryResultMsg{gen: gen, text: "abc"})
	m = next.(Model)
	text, ok := m.query.Result()
	require.True(t, ok)
	assert.Equal(t, "abc", text)

	// A response from a retired generation is dropped.
	gen2 := m.query.Begin()
	next, _ = m.Update(queryResultMsg{gen: gen2 - 1, text: "stale"})
	m = next.(Model)
	_, ok = m.query.Result()
	assert.False(t, ok)

	next, _ = m.Update(queryResultMsg{gen: gen2, err: assert.AnError})
	m = next.(Model)
	text, ok = m.query.Result()
	require.True(t, ok)
	assert.Equal(t, console.FailureText, text)
}
