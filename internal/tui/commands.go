package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"scrape-console/internal/backend"
	"scrape-console/internal/model"
)

const commandTimeout = 10 * time.Second

// startJob issues the start command. Fire-and-forget: a nil error means
// only that the backend accepted the request; completion is inferred from
// telemetry, never from this response.
func startJob(api backend.API, req model.JobRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		if err := api.StartScrape(ctx, req); err != nil {
			return jobActionMsg{err: err}
		}
		return jobActionMsg{message: fmt.Sprintf("Start command sent (%s mode)", req.Mode)}
	}
}

// stopJob issues the stop command. The console is already idle by the time
// this runs; only a transport failure is worth reporting.
func stopJob(api backend.API) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		if err := api.StopScrape(ctx); err != nil {
			return jobActionMsg{err: err}
		}
		return jobActionMsg{message: "Stop command sent"}
	}
}

// submitQuery runs one query exchange. The generation token travels with
// the response so stale answers can be discarded.
func submitQuery(api backend.API, target model.QueryTarget, gen int, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		text, err := api.Query(ctx, target, query)
		return queryResultMsg{gen: gen, text: text, err: err}
	}
}

// waitForLogLine waits for the next telemetry line
func waitForLogLine(entries <-chan model.LogEntry) tea.Cmd {
	return func() tea.Msg {
		entry, ok := <-entries
		if !ok {
			return streamClosedMsg{}
		}
		return logLineMsg{entry: entry}
	}
}

// waitForStreamEvent waits for the next stream lifecycle change
func waitForStreamEvent(events <-chan backend.StreamEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return streamEventMsg{event: event}
	}
}
