package console

import (
	"errors"
	"strings"

	"scrape-console/internal/model"
)

var (
	ErrAlreadyRunning = errors.New("a job is already running")
	ErrNotRunning     = errors.New("no job is running")
)

// Markers are the terminal substrings that signal run completion in the
// telemetry text. They come from configuration: the literals are the
// backend's wording, not ours.
type Markers struct {
	Success string
	Failure string
}

// Outcome classifies a terminal telemetry line.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeFailure
)

// JobController owns the single source of truth for whether a job is
// running. The control channel is asymmetric: commands are at most once and
// unconfirmed, and completion truth lives only in the telemetry stream, so
// the flag moves on three triggers only — an accepted start, an explicit
// stop (optimistic), and a terminal marker observed in the stream.
type JobController struct {
	logs    *LogBuffer
	markers Markers
	running bool
}

func NewJobController(logs *LogBuffer, markers Markers) *JobController {
	return &JobController{logs: logs, markers: markers}
}

func (c *JobController) Running() bool {
	return c.running
}

// Start validates the request and flips idle to running, clearing the log
// buffer for the new run. The network submission is the caller's job;
// Start records only that a start was accepted for transmission.
func (c *JobController) Start(req model.JobRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if c.running {
		return ErrAlreadyRunning
	}
	c.logs.Clear()
	c.running = true
	return nil
}

// Stop flips the flag to idle immediately, without waiting for the backend.
// The external job may keep producing telemetry afterwards; those lines
// still append but no longer move the flag.
func (c *JobController) Stop() error {
	if !c.running {
		return ErrNotRunning
	}
	c.running = false
	return nil
}

// CommandFailed forces the flag back to idle after a start or stop
// submission failed in transport, before any response was obtained.
func (c *JobController) CommandFailed() {
	c.running = false
}

// Observe inspects one delivered telemetry line for a terminal marker and
// flips the flag to idle when one is present, regardless of current value.
// Must be called after the line has been appended to the log buffer, once
// per line, in delivery order.
func (c *JobController) Observe(text string) Outcome {
	outcome := c.terminalOutcome(text)
	if outcome != OutcomeNone {
		c.running = false
	}
	return outcome
}

// terminalOutcome is the single marker-matching predicate. Failure is
// checked first: a backend that embeds both wordings in one line is
// reporting a failure.
func (c *JobController) terminalOutcome(text string) Outcome {
	if c.markers.Failure != "" && strings.Contains(text, c.markers.Failure) {
		return OutcomeFailure
	}
	if c.markers.Success != "" && strings.Contains(text, c.markers.Success) {
		return OutcomeSuccess
	}
	return OutcomeNone
}
