package backend

import (
	"context"

	"scrape-console/internal/model"
)

// startPayload is the control channel's start body. Limit is a pointer so
// it serializes as null when absent; the backend only honors it for dry
// runs, and the console only transmits it then.
type startPayload struct {
	URL      string `json:"url"`
	Headless bool   `json:"headless"`
	DryRun   bool   `json:"dry_run"`
	Limit    *int   `json:"limit"`
}

// startPath maps a scrape mode to its control endpoint.
func startPath(mode model.ScrapeMode) string {
	switch mode {
	case model.ModePerson:
		return "/api/scrape/person"
	case model.ModeProperty:
		return "/api/scrape/property"
	default:
		return "/api/start-scrape"
	}
}

// StartScrape issues a start command. The command is unconfirmed: a nil
// error means only that the backend accepted the request for transmission.
// Whether the job actually runs is learned from the telemetry stream.
func (c *Client) StartScrape(ctx context.Context, req model.JobRequest) error {
	payload := startPayload{
		URL:      req.URL,
		Headless: req.Headless,
		DryRun:   req.DryRun,
	}
	if req.DryRun && req.Limit > 0 {
		limit := req.Limit
		payload.Limit = &limit
	}

	resp, err := c.postJSON(ctx, startPath(req.Mode), payload)
	if err != nil {
		return err
	}
	discard(resp)
	return nil
}

// StopScrape issues a stop command. Like StartScrape, the response body is
// ignored; the backend reports "stopped" or "not_running" but the console's
// idle state does not depend on either.
func (c *Client) StopScrape(ctx context.Context) error {
	resp, err := c.postJSON(ctx, "/api/stop-scrape", nil)
	if err != nil {
		return err
	}
	discard(resp)
	return nil
}
