package tui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"scrape-console/internal/model"
)

var (
	// Log level patterns
	errorPattern   = regexp.MustCompile(`(?i)\b(error|err|fatal|fail|failed|exception|traceback)\b`)
	warningPattern = regexp.MustCompile(`(?i)\b(warn|warning|caution|retry|retrying)\b`)
	finishPattern  = regexp.MustCompile(`(?i)\b(finished|stopped|done|complete|completed)\b`)

	urlPattern = regexp.MustCompile(`https?://[^\s]+`)

	timestampStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	errorLogStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
	warningLogStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAB387"))
	finishLogStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	defaultLogStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CDD6F4"))
	urlHighlight    = lipgloss.NewStyle().Foreground(lipgloss.Color("#89DCEB"))
)

// styleLogEntry formats one telemetry line for the feed: receipt time plus
// the text, colored by a rough guess at severity. The stored entry stays
// untouched; trailing newlines are dropped here only so one entry renders
// as one viewport row.
func styleLogEntry(entry model.LogEntry, maxWidth int) string {
	timestamp := timestampStyle.Render(entry.ReceivedAt.Format("15:04:05"))

	text := strings.TrimRight(entry.Text, "\r\n")
	if maxWidth > 12 && len(text) > maxWidth-9 {
		text = truncate(text, maxWidth-9)
	}

	var style lipgloss.Style
	switch {
	case errorPattern.MatchString(text):
		style = errorLogStyle
	case warningPattern.MatchString(text):
		style = warningLogStyle
	case finishPattern.MatchString(text):
		style = finishLogStyle
	default:
		style = defaultLogStyle
	}

	styled := urlPattern.ReplaceAllStringFunc(style.Render(text), func(match string) string {
		return urlHighlight.Render(match)
	})

	return timestamp + " " + styled
}
