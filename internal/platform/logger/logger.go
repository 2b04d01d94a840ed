// Package logger builds the process zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New builds a logger writing to w at level. format "console" gives
// human-readable output; anything else is JSON. An unknown level falls back
// to info. The logger also becomes the global log.Logger.
func New(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}

	l := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	log.Logger = l
	return l
}

// Output picks the log destination. stdio transport owns stdout for protocol
// frames, so logs always go to stderr there; SSE mode logs to stdout.
func Output(transport string) io.Writer {
	if transport == "stdio" {
		return os.Stderr
	}
	return os.Stdout
}
