// Package logging builds the diagnostic logger. User-facing status output is
// written by the commands themselves; this logger carries debug and warning
// detail to stderr and travels on the command context.
package logging

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w. Verbose lowers the level from
// warn to debug.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// WithLogger attaches l to ctx.
func WithLogger(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// From returns the logger attached to ctx, or a disabled logger.
func From(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
