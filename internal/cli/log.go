// Package cli implements the toon command-line interface.
//
// The CLI converts between JSON and TOON, reports token savings, and
// manages the config file. It is built on cobra, with structured
// logging via charmbracelet/log passed through context.Context.
//
// # Commands
//
//   - encode: JSON in, TOON out
//   - decode: TOON in, JSON out
//   - stats: compare the token and byte cost of both renderings
//   - config: manage the toon.toml config file
//
// All commands support --verbose (-v) for debug-level logging and
// --config for an explicit config file path.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w with millisecond timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, falling back to
// log.Default() so commands always have a valid logger.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
