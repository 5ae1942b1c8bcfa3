// Package cli implements the certpaths command-line interface.
//
// The CLI loads a certification catalog, assembles one graph per vendor and
// renders filtered views of it. It is built using cobra, styled with
// lipgloss, and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - validate: Check a catalog import and summarize it
//   - layout: Assemble a vendor graph and write it as JSON
//   - render: Generate SVG, DOT, JSON, PDF or PNG output for a filtered view
//   - filters, search: Inspect filter choices and search suggestions
//   - paths: Show prerequisite chains and a study order
//   - browse: Explore the catalog interactively
//   - cache: Manage the artifact cache
//
// # Configuration
//
// Settings come from certpaths.toml, CERTPATHS_* environment variables and
// flags, in increasing priority. See package config.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// newRunID returns a short id that tags the log lines of one pipeline run,
// so repeated runs in watch mode can be told apart.
func newRunID() string {
	return uuid.NewString()[:8]
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Loaded 50 certifications (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
