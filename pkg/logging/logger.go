package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/offlinefirst/keytap/pkg/config"
)

// timeLayout keeps millisecond precision so log lines can be lined up with
// record timestamps.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Options describe how to configure a logger instance.
type Options struct {
	Level  string
	Format string
	// Output defaults to stderr; stdout is reserved for records.
	Output io.Writer
}

// FromConfig builds a logger from the logging section of a loaded config.
func FromConfig(cfg config.LoggingConfig, out io.Writer) (*slog.Logger, error) {
	return New(Options{Level: cfg.Level, Format: cfg.Format, Output: out})
}

// New creates a structured logger backed by Go's slog package.
func New(opts Options) (*slog.Logger, error) {
	lvl, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	format, err := config.NormalizeFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := slog.HandlerOptions{
		Level:       lvl,
		ReplaceAttr: replaceTimeAttr,
	}

	var handler slog.Handler
	if format == "console" {
		handler = slog.NewTextHandler(out, &handlerOpts)
	} else {
		handler = slog.NewJSONHandler(out, &handlerOpts)
	}

	return slog.New(handler).With("app", "keytap"), nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(level string) (slog.Leveler, error) {
	normalized, err := config.NormalizeLogLevel(level)
	if err != nil {
		return nil, err
	}

	var lvl slog.Level
	switch normalized {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return lvl, nil
}

func replaceTimeAttr(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key == slog.TimeKey && attr.Value.Kind() == slog.KindTime {
		attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(timeLayout))
	}
	if attr.Value.Kind() == slog.KindDuration {
		attr.Value = slog.StringValue(attr.Value.Duration().String())
	}
	return attr
}
