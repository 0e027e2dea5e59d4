// Package logger holds the process-wide zerolog instance. The CLI
// initializes it once; library packages fetch it with Get and log
// unconditionally.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var logger *zerolog.Logger

// Init configures the global logger. level is one of "debug", "info",
// "warn", "error"; anything else falls back to warn. Output goes to stderr
// so report text on stdout stays clean.
func Init(level string, noColor bool) {
	var lvl zerolog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = zerolog.DebugLevel
	case "info":
		lvl = zerolog.InfoLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	default:
		lvl = zerolog.WarnLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
	}

	l := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	logger = &l
}

// Get returns the global logger. Before Init it returns a logger that
// discards everything, so tests and library code never need a nil check.
func Get() *zerolog.Logger {
	if logger == nil {
		l := zerolog.New(io.Discard)
		logger = &l
	}
	return logger
}
