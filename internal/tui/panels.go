package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"scrape-console/internal/model"
	"scrape-console/internal/storage"
)

// renderJobPanel renders the job control form.
func (m Model) renderJobPanel(width, height int) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Job Control") + "\n\n")

	onOff := func(v bool) string {
		if v {
			return runningStyle.Render("on")
		}
		return dimStyle.Render("off")
	}

	limitValue := m.limitInput.View()
	if !m.dryRun {
		limitValue = dimStyle.Render("n/a (dry run only)")
	}

	rows := []struct {
		field jobField
		label string
		value string
	}{
		{fieldURL, "Target URL", m.urlInput.View()},
		{fieldMode, "Mode", string(m.mode)},
		{fieldHeadless, "Headless", onOff(m.headless)},
		{fieldDryRun, "Dry run", onOff(m.dryRun)},
		{fieldLimit, "Limit", limitValue},
	}

	for _, row := range rows {
		label := fmt.Sprintf("%-11s", row.label)
		if m.focused == panelJob && m.field == row.field {
			s.WriteString(selectedStyle.Render(">"+label) + " " + row.value)
		} else {
			s.WriteString(" " + label + " " + row.value)
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	if m.job.Running() {
		s.WriteString(runningStyle.Render("Job running") + dimStyle.Render("  (completion is inferred from the log stream)"))
	} else {
		s.WriteString(dimStyle.Render("Idle"))
	}

	help := "\n[↑/↓] field  [enter] toggle/start  [ctrl+x] stop  [tab] next panel  [ctrl+c] quit"
	s.WriteString(helpStyle.Render(help))

	return m.panelFrame(panelJob).
		Width(width - 4).
		Height(height - 4).
		Render(s.String())
}

// renderQueryPanel renders the query tester.
func (m Model) renderQueryPanel(width, height int) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Query Tester") + "\n\n")

	s.WriteString(fmt.Sprintf(" %-8s %s\n", "Target", string(m.queryTarget)))
	s.WriteString(fmt.Sprintf(" %-8s %s\n\n", "Query", m.queryInput.View()))

	if m.query.InFlight() {
		s.WriteString(m.spin.View() + " waiting for answer...\n")
	} else if result, ok := m.query.Result(); ok {
		style := dimStyle
		if result != "" {
			style = style.UnsetForeground()
		}
		for _, line := range wrapText(result, width-10) {
			s.WriteString(style.Render(line) + "\n")
		}
	} else {
		s.WriteString(dimStyle.Render("No query submitted yet.") + "\n")
	}

	help := "\n[enter] submit  [ctrl+t] cycle target"
	s.WriteString(helpStyle.Render(help))

	return m.panelFrame(panelQuery).
		Width(width - 4).
		Height(height - 4).
		Render(s.String())
}

// renderLogPanel renders the live telemetry feed.
func (m Model) renderLogPanel(width, height int) string {
	var s strings.Builder

	follow := dimStyle.Render("follow off")
	if m.follow {
		follow = runningStyle.Render("follow on")
	}
	s.WriteString(titleStyle.Render("Live Logs") +
		dimStyle.Render(fmt.Sprintf("  %d lines  ", m.logs.Len())) + follow + "\n\n")

	s.WriteString(m.logView.View())

	help := "\n[↑/↓/pgup/pgdn] scroll  [f] follow  [home/end] jump"
	s.WriteString(helpStyle.Render(help))

	return m.panelFrame(panelLogs).
		Width(width - 4).
		Height(height - 4).
		Render(s.String())
}

// renderReferencePanel renders run history plus the endpoint catalog.
func (m Model) renderReferencePanel(width, height int) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Recent Runs") + "\n\n")

	if len(m.runs) == 0 {
		s.WriteString(dimStyle.Render("No runs recorded yet.") + "\n")
	}

	maxRuns := (height - 4) / 2
	if maxRuns > 6 {
		maxRuns = 6
	}
	for i, run := range m.runs {
		if i >= maxRuns {
			break
		}
		s.WriteString(fmt.Sprintf(" %s  %-8s %s %s\n",
			run.StartedAt.Format("15:04:05"),
			run.Mode,
			outcomeStyle(run.Outcome).Render(string(run.Outcome)),
			dimStyle.Render(truncate(run.Target, width-30)),
		))
	}

	s.WriteString("\n" + titleStyle.Render("Endpoints") + "\n\n")
	for _, ep := range model.EndpointCatalog() {
		s.WriteString(fmt.Sprintf(" %-4s %s\n", ep.Method, dimStyle.Render(ep.Path)))
	}

	return m.panelFrame(panelReference).
		Width(width - 4).
		Height(height - 4).
		Render(s.String())
}

func outcomeStyle(outcome storage.RunOutcome) lipgloss.Style {
	switch outcome {
	case storage.OutcomeSuccess:
		return runningStyle
	case storage.OutcomeFailure:
		return stoppedStyle
	case storage.OutcomeStopped:
		return warnStyle
	default:
		return dimStyle
	}
}
