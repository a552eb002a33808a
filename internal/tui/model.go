package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"scrape-console/internal/backend"
	"scrape-console/internal/console"
	"scrape-console/internal/model"
	"scrape-console/internal/storage"
)

// Panel focus order: job form -> logs -> query tester -> reference.
type panel int

const (
	panelJob panel = iota
	panelLogs
	panelQuery
	panelReference
	panelCount
)

// Job form field order, top to bottom.
type jobField int

const (
	fieldURL jobField = iota
	fieldMode
	fieldHeadless
	fieldDryRun
	fieldLimit
	fieldCount
)

// Model represents the console's TUI state.
type Model struct {
	api   backend.API
	store *storage.Store

	// State cells; only touched from Update.
	logs  *console.LogBuffer
	job   *console.JobController
	query *console.QueryClient

	// Job form
	urlInput   textinput.Model
	limitInput textinput.Model
	mode       model.ScrapeMode
	headless   bool
	dryRun     bool
	field      jobField

	// Query tester
	queryInput  textinput.Model
	queryTarget model.QueryTarget
	spin        spinner.Model

	// Live log feed
	logView         viewport.Model
	follow          bool
	streamConnected bool
	streamNote      string

	entriesChan  <-chan model.LogEntry
	eventsChan   <-chan backend.StreamEvent
	streamCancel func()

	// Run history
	currentRunID int64
	runs         []storage.Run

	focused panel
	alert   string
	width   int
	height  int
}

// Message types for the Bubbletea update loop
type logLineMsg struct {
	entry model.LogEntry
}

type streamEventMsg struct {
	event backend.StreamEvent
}

type streamClosedMsg struct{}

type jobActionMsg struct {
	message string
	err     error
}

type queryResultMsg struct {
	gen  int
	text string
	err  error
}

// NewModel creates the console model and opens the telemetry stream for the
// program's lifetime. The stream's cancel func is released on quit.
func NewModel(api backend.API, store *storage.Store, markers console.Markers) Model {
	logs := console.NewLogBuffer()

	urlInput := textinput.New()
	urlInput.Placeholder = "https://www.example.com/listings"
	urlInput.CharLimit = 512
	urlInput.Prompt = ""
	urlInput.Focus()

	limitInput := textinput.New()
	limitInput.Placeholder = "none"
	limitInput.CharLimit = 6
	limitInput.Prompt = ""

	queryInput := textinput.New()
	queryInput.Placeholder = "ask about people or properties..."
	queryInput.CharLimit = 512
	queryInput.Prompt = ""

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	entriesChan, eventsChan, cancel := api.StreamLogs(context.Background())

	m := Model{
		api:          api,
		store:        store,
		logs:         logs,
		job:          console.NewJobController(logs, markers),
		query:        console.NewQueryClient(),
		urlInput:     urlInput,
		limitInput:   limitInput,
		mode:         model.ModeAuto,
		queryInput:   queryInput,
		queryTarget:  model.QueryAll,
		spin:         spin,
		follow:       true,
		streamNote:   "connecting...",
		entriesChan:  entriesChan,
		eventsChan:   eventsChan,
		streamCancel: cancel,
		focused:      panelJob,
	}
	m.refreshRuns()
	return m
}

// Close releases the telemetry stream. Deferred by the entrypoint so the
// stream is released on every exit path, not just the quit key.
func (m Model) Close() {
	if m.streamCancel != nil {
		m.streamCancel()
	}
}

// Init initializes the model and returns initial commands
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForLogLine(m.entriesChan),
		waitForStreamEvent(m.eventsChan),
		m.spin.Tick,
		textinput.Blink,
	)
}
