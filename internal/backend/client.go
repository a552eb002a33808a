package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds the scraper backend endpoints.
type Config struct {
	APIBase string // HTTP control/query base
	WSBase  string // telemetry stream base
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		APIBase: "http://localhost:8000",
		WSBase:  "ws://localhost:8000",
		Timeout: 15 * time.Second,
	}
}

// Client talks to the scraper backend over its HTTP and WebSocket channels.
type Client struct {
	httpc   *http.Client
	apiBase string
	wsBase  string
}

// NewClient creates a backend client. No connectivity check is performed:
// the console must come up even when the backend is down, and the telemetry
// stream reports reachability on its own.
func NewClient(cfg Config) *Client {
	return &Client{
		httpc:   &http.Client{Timeout: cfg.Timeout},
		apiBase: strings.TrimRight(cfg.APIBase, "/"),
		wsBase:  strings.TrimRight(cfg.WSBase, "/"),
	}
}

// postJSON issues a POST and discards the response body. A nil body sends an
// empty request. Non-2xx statuses are reported as errors; callers that are
// fire-and-forget treat any returned error as a transport failure.
func (c *Client) postJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%s: unexpected status %s", path, resp.Status)
	}
	return resp, nil
}

// discard drains and closes a response body so the connection can be reused.
func discard(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
