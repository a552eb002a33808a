// internal/backend/interface.go
package backend

import (
	"context"

	"scrape-console/internal/model"
)

// API is the backend surface the console uses; an interface so tests can
// substitute a fake.
type API interface {
	StartScrape(ctx context.Context, req model.JobRequest) error
	StopScrape(ctx context.Context) error
	Query(ctx context.Context, target model.QueryTarget, query string) (string, error)
	StreamLogs(ctx context.Context) (<-chan model.LogEntry, <-chan StreamEvent, func())
}

// Ensure Client implements the interface
var _ API = (*Client)(nil)
