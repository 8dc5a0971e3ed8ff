// Package logging builds the leveled console logger used for
// diagnostics on stderr. User-facing output stays on stdout.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Options holds console logger configuration.
type Options struct {
	Level           string
	Format          string
	ReportTimestamp bool
}

// New creates a charmbracelet/log logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       ParseFormat(opts.Format),
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          "taskdeck",
	})
}

// ParseLevel parses a string log level, defaulting to warn.
func ParseLevel(s string) log.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// ParseFormat parses a string formatter name, defaulting to text.
func ParseFormat(s string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
