// Package logging defines the structured-logging interface used across
// eventdesk, with a log/slog and a zerolog implementation.
package logging

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "events refreshed", "count", n, "generation", gen)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Output formats accepted by New.
const (
	FormatText    = "text"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New builds a Logger writing to w. FormatText uses slog's text handler;
// FormatConsole and FormatJSON use zerolog.
func New(w io.Writer, level, format string) (Logger, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		l, err := NewSlogText(w, level)
		if err != nil {
			return nil, err
		}
		return l, nil

	case FormatConsole, FormatJSON:
		zl, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
		out := w
		if format == FormatConsole {
			out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
		}
		return NewZerologLogger(zerolog.New(out).Level(zl).With().Timestamp().Logger()), nil

	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewZerologLogger(zerolog.Nop())
}
