package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"scrape-console/internal/console"
	"scrape-console/internal/model"
	"scrape-console/internal/storage"
)

// Update handles messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLogView()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case logLineMsg:
		// Append first, then inspect for terminal markers: both must see
		// the same line before the next one is processed.
		m.logs.Append(msg.entry)
		outcome := m.job.Observe(msg.entry.Text)
		if outcome != console.OutcomeNone {
			m.settleRun(runOutcome(outcome))
		}
		m.refreshLogView()
		return m, waitForLogLine(m.entriesChan)

	case streamEventMsg:
		if msg.event.Connected {
			m.streamConnected = true
			m.streamNote = ""
		} else {
			// A dropped stream means the console is blind, not that the
			// job finished; the run flag is untouched.
			m.streamConnected = false
			m.streamNote = fmt.Sprintf("disconnected, retrying (%v)", msg.event.Err)
		}
		return m, waitForStreamEvent(m.eventsChan)

	case streamClosedMsg:
		m.streamConnected = false
		m.streamNote = "stream closed"
		return m, nil

	case jobActionMsg:
		if msg.err != nil {
			// The command never reached the backend: force idle and raise
			// an alert. No retry.
			m.job.CommandFailed()
			m.settleRun(storage.OutcomeFailure)
			m.alert = fmt.Sprintf("Command failed: %v", msg.err)
		} else {
			m.alert = msg.message
		}
		return m, nil

	case queryResultMsg:
		if msg.err != nil {
			m.query.Fail(msg.gen)
		} else {
			m.query.Complete(msg.gen, msg.text)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey routes key presses to the focused panel.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.streamCancel != nil {
			m.streamCancel()
		}
		return m, tea.Quit

	case "tab":
		m.focused = (m.focused + 1) % panelCount
		m.syncInputFocus()
		return m, nil

	case "shift+tab":
		m.focused = (m.focused + panelCount - 1) % panelCount
		m.syncInputFocus()
		return m, nil

	case "ctrl+x":
		return m.stopJob()
	}

	switch m.focused {
	case panelJob:
		return m.handleJobKey(msg)
	case panelLogs:
		return m.handleLogsKey(msg)
	case panelQuery:
		return m.handleQueryKey(msg)
	case panelReference:
		if msg.String() == "r" {
			m.refreshRuns()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleJobKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		m.field = (m.field + fieldCount - 1) % fieldCount
		m.syncInputFocus()
		return m, nil

	case "down":
		m.field = (m.field + 1) % fieldCount
		m.syncInputFocus()
		return m, nil

	case "enter":
		switch m.field {
		case fieldMode:
			m.mode = m.mode.Next()
			return m, nil
		case fieldHeadless:
			m.headless = !m.headless
			return m, nil
		case fieldDryRun:
			m.dryRun = !m.dryRun
			return m, nil
		default:
			return m.startJob()
		}

	case " ", "left", "right":
		switch m.field {
		case fieldMode:
			m.mode = m.mode.Next()
			return m, nil
		case fieldHeadless:
			m.headless = !m.headless
			return m, nil
		case fieldDryRun:
			m.dryRun = !m.dryRun
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.field {
	case fieldURL:
		m.urlInput, cmd = m.urlInput.Update(msg)
	case fieldLimit:
		m.limitInput, cmd = m.limitInput.Update(msg)
	}
	return m, cmd
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "f":
		m.follow = !m.follow
		if m.follow {
			m.logView.GotoBottom()
		}
		return m, nil
	case "home":
		m.follow = false
		m.logView.GotoTop()
		return m, nil
	case "end":
		m.follow = true
		m.logView.GotoBottom()
		return m, nil
	case "up", "down", "pgup", "pgdown":
		m.follow = false
	}

	var cmd tea.Cmd
	m.logView, cmd = m.logView.Update(msg)
	return m, cmd
}

func (m Model) handleQueryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// Resubmission while in flight is allowed; the generation counter
		// retires the older exchange.
		gen := m.query.Begin()
		return m, tea.Batch(
			submitQuery(m.api, m.queryTarget, gen, m.queryInput.Value()),
			m.spin.Tick,
		)

	case "ctrl+t":
		m.queryTarget = m.queryTarget.Next()
		return m, nil
	}

	var cmd tea.Cmd
	m.queryInput, cmd = m.queryInput.Update(msg)
	return m, cmd
}

// startJob validates the form, flips the run flag and fires the start
// command. The log buffer is cleared here, once, for the new run.
func (m Model) startJob() (tea.Model, tea.Cmd) {
	req, err := m.buildRequest()
	if err != nil {
		m.alert = err.Error()
		return m, nil
	}

	if err := m.job.Start(req); err != nil {
		m.alert = err.Error()
		return m, nil
	}

	m.alert = ""
	m.refreshLogView()
	m.recordRun(req)

	return m, startJob(m.api, req)
}

// stopJob flips to idle immediately and fires the stop command; it does not
// wait for, or verify, the backend actually stopping.
func (m Model) stopJob() (tea.Model, tea.Cmd) {
	if err := m.job.Stop(); err != nil {
		m.alert = err.Error()
		return m, nil
	}

	m.alert = ""
	m.settleRun(storage.OutcomeStopped)

	return m, stopJob(m.api)
}

// buildRequest assembles a JobRequest from the form fields.
func (m Model) buildRequest() (model.JobRequest, error) {
	req := model.JobRequest{
		URL:      strings.TrimSpace(m.urlInput.Value()),
		Mode:     m.mode,
		Headless: m.headless,
		DryRun:   m.dryRun,
	}

	if raw := strings.TrimSpace(m.limitInput.Value()); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return model.JobRequest{}, fmt.Errorf("limit must be a positive integer, got %q", raw)
		}
		req.Limit = limit
	}

	if err := req.Validate(); err != nil {
		return model.JobRequest{}, err
	}
	return req, nil
}

// recordRun writes the submitted command to run history.
func (m *Model) recordRun(req model.JobRequest) {
	if m.store == nil {
		return
	}
	id, err := m.store.RecordStart(storage.Run{
		Target:    req.URL,
		Mode:      string(req.Mode),
		DryRun:    req.DryRun,
		Limit:     req.Limit,
		StartedAt: time.Now(),
	})
	if err == nil {
		m.currentRunID = id
	}
	m.refreshRuns()
}

// settleRun records the current run's outcome, if one is open.
func (m *Model) settleRun(outcome storage.RunOutcome) {
	if m.store == nil || m.currentRunID == 0 {
		return
	}
	m.store.Settle(m.currentRunID, outcome)
	m.currentRunID = 0
	m.refreshRuns()
}

func (m *Model) refreshRuns() {
	if m.store == nil {
		return
	}
	if runs, err := m.store.Recent(20); err == nil {
		m.runs = runs
	}
}

func runOutcome(o console.Outcome) storage.RunOutcome {
	if o == console.OutcomeFailure {
		return storage.OutcomeFailure
	}
	return storage.OutcomeSuccess
}

// syncInputFocus keeps exactly the text input under the cursor focused.
func (m *Model) syncInputFocus() {
	m.urlInput.Blur()
	m.limitInput.Blur()
	m.queryInput.Blur()

	switch m.focused {
	case panelJob:
		switch m.field {
		case fieldURL:
			m.urlInput.Focus()
		case fieldLimit:
			m.limitInput.Focus()
		}
	case panelQuery:
		m.queryInput.Focus()
	}
}

// refreshLogView re-renders the viewport from the buffer's snapshot.
func (m *Model) refreshLogView() {
	snapshot := m.logs.Snapshot()
	lines := make([]string, len(snapshot))
	for i, entry := range snapshot {
		lines[i] = styleLogEntry(entry, m.logView.Width)
	}
	m.logView.SetContent(strings.Join(lines, "\n"))
	if m.follow {
		m.logView.GotoBottom()
	}
}
