package model

import (
	"errors"
	"fmt"
	"strings"
)

// ScrapeMode selects which extraction pipeline the backend runs.
type ScrapeMode string

const (
	ModeAuto     ScrapeMode = "auto"
	ModePerson   ScrapeMode = "person"
	ModeProperty ScrapeMode = "property"
)

// Valid reports whether the mode is one the backend understands.
func (m ScrapeMode) Valid() bool {
	switch m {
	case ModeAuto, ModePerson, ModeProperty:
		return true
	}
	return false
}

// Next cycles through the modes, for the console's mode selector.
func (m ScrapeMode) Next() ScrapeMode {
	switch m {
	case ModeAuto:
		return ModePerson
	case ModePerson:
		return ModeProperty
	default:
		return ModeAuto
	}
}

// JobRequest describes one start command for the scraper backend.
// Limit is meaningful only for dry runs; it is transmitted as null otherwise.
type JobRequest struct {
	URL      string
	Mode     ScrapeMode
	Headless bool
	DryRun   bool
	Limit    int // 0 means unbounded
}

// Validate checks the request before it may be issued.
func (r JobRequest) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return errors.New("target URL is required")
	}
	if !r.Mode.Valid() {
		return fmt.Errorf("unknown scrape mode %q", r.Mode)
	}
	if r.Limit < 0 {
		return fmt.Errorf("limit must be positive, got %d", r.Limit)
	}
	return nil
}
