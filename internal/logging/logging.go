package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Options captures the knobs for building a run logger.
type Options struct {
	Level  string    // "debug", "info", "warn", "error"; defaults to info
	Format string    // "console" or "json"; defaults to console
	Output io.Writer // defaults to os.Stderr
}

// New builds the root logger for one run. Console format wraps the
// writer in zerolog's human-readable console writer; json emits raw
// lines. Log output never goes to stdout, which carries only the report.
func New(opts Options) zerolog.Logger {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		if parsed, err := zerolog.ParseLevel(opts.Level); err == nil {
			level = parsed
		}
	}

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}
	if opts.Format != "json" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// WithComponent returns a child logger annotated with the given
// component name.
func WithComponent(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}
