// Package logging builds the leveled console logger used across the CLI.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

const prefix = "todo"

// New returns a logger writing to w. Unknown level or format strings fall
// back to warn and text.
func New(w io.Writer, level, format string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:     ParseLevel(level),
		Formatter: ParseFormatter(format),
		Prefix:    prefix,
	})
}

// ParseLevel parses a string log level to a charmbracelet/log Level.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// ParseFormatter parses a formatter name ("text", "json", "logfmt").
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
