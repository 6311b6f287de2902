package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/rs/zerolog"
)

// New returns a Logger writing to w. "console" selects human readable
// zerolog output; any other format yields slog JSON.
func New(format string, w io.Writer, debug bool) Logger {
	if format == "console" {
		level := zerolog.InfoLevel
		if debug {
			level = zerolog.DebugLevel
		}
		zl := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}).
			Level(level).
			With().Timestamp().Logger()
		return NewZerologLogger(zl)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return NewSlogLogger(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})))
}
