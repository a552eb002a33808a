package tui

import "github.com/charmbracelet/lipgloss"

// View renders the TUI interface
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := m.renderHeader()

	// 45% top, 55% bottom for rows; the log feed gets the bigger share.
	bodyHeight := m.height - 1
	topHeight := int(float64(bodyHeight) * 0.45)
	bottomHeight := bodyHeight - topHeight

	// 40% left, 60% right on top; 60/40 on the bottom.
	jobWidth := int(float64(m.width) * 0.4)
	queryWidth := m.width - jobWidth
	logWidth := int(float64(m.width) * 0.6)
	refWidth := m.width - logWidth

	topRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderJobPanel(jobWidth, topHeight),
		m.renderQueryPanel(queryWidth, topHeight),
	)
	bottomRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderLogPanel(logWidth, bottomHeight),
		m.renderReferencePanel(refWidth, bottomHeight),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, topRow, bottomRow)
}

// renderHeader renders the one-line status bar above the panels.
func (m Model) renderHeader() string {
	title := headerStyle.Render("Scrape Console")

	var jobState string
	if m.job.Running() {
		jobState = runningStyle.Render("● job running")
	} else {
		jobState = dimStyle.Render("○ idle")
	}

	var streamState string
	if m.streamConnected {
		streamState = runningStyle.Render("stream: connected")
	} else {
		streamState = warnStyle.Render("stream: " + m.streamNote)
	}

	line := title + "  " + jobState + "  " + streamState
	if m.alert != "" {
		line += "  " + stoppedStyle.Render(m.alert)
	}
	return line
}

// panelFrame picks the border style for a panel based on focus.
func (m Model) panelFrame(p panel) lipgloss.Style {
	if m.focused == p {
		return focusedPanelStyle
	}
	return panelStyle
}

// resizeLogView keeps the viewport sized to the log panel's content area.
func (m *Model) resizeLogView() {
	bodyHeight := m.height - 1
	bottomHeight := bodyHeight - int(float64(bodyHeight)*0.45)
	logWidth := int(float64(m.width) * 0.6)

	// Account for the panel border, padding and title rows.
	w := logWidth - 8
	if w < 20 {
		w = 20
	}
	h := bottomHeight - 8
	if h < 3 {
		h = 3
	}
	m.logView.Width = w
	m.logView.Height = h
	m.refreshLogView()
}
