package capture

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/offlinefirst/keytap/pkg/config"
	"github.com/offlinefirst/keytap/pkg/events"
	"github.com/offlinefirst/keytap/pkg/keys"
	"github.com/offlinefirst/keytap/pkg/output"
)

// Termination causes reported in Summary.Termination.
const (
	TerminationCompleted   = "completed"
	TerminationLimit       = "limit"
	TerminationDuration    = "duration"
	TerminationInterrupted = "interrupted"
	TerminationError       = "error"
)

// Options controls a capture session.
type Options struct {
	Config config.Config
	Logger *slog.Logger
	Clock  func() time.Time
	// Stdout receives records when output.path is "-". Defaults to os.Stdout.
	Stdout io.Writer
	// MaxEvents stops the session after that many records; zero means no limit.
	MaxEvents int
	// Script overrides the text typed by the synthetic source.
	Script string
	// Interval paces synthetic keystrokes in real time when positive.
	Interval time.Duration
}

// Summary reports how a session went.
type Summary struct {
	Events      events.Result
	Source      string
	Layout      string
	Format      string
	Output      string
	StartedAt   time.Time
	FinishedAt  time.Time
	Termination string
}

var openBackend = events.Open

// Run opens the configured source, resolves every key transition it delivers
// and writes one record per transition until the source ends, the duration or
// event limit is hit, or ctx is cancelled. Cancellation and the configured
// limits end the session cleanly; only source, sink and setup failures are
// returned as errors.
func Run(ctx context.Context, opts Options) (Summary, error) {
	if opts.Logger == nil {
		return Summary{}, errors.New("logger must be provided")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	cfg := opts.Config

	summary := Summary{
		StartedAt: clock().UTC(),
		Output:    displayPath(cfg.Output.Path),
	}
	fail := func(err error) (Summary, error) {
		summary.FinishedAt = clock().UTC()
		summary.Termination = TerminationError
		return summary, err
	}

	backend, err := openBackend(events.SourceOptions{
		Name:      cfg.Listen.Source,
		Layout:    keys.LayoutID(cfg.Listen.Layout),
		InputSink: cfg.Listen.InputSink,
		NoLegacy:  cfg.Listen.NoLegacy,
		Devices:   cfg.Listen.Devices,
		Clock:     clock,
		Script:    opts.Script,
		Interval:  opts.Interval,
	})
	if err != nil {
		return fail(fmt.Errorf("open source: %w", err))
	}
	summary.Source = backend.Name
	summary.Layout = backend.LayoutName

	dest, closeDest, err := openDestination(cfg.Output.Path, opts.Stdout)
	if err != nil {
		return fail(err)
	}
	closed := false
	defer func() {
		if !closed {
			_ = closeDest()
		}
	}()

	format, err := output.ResolveFormat(cfg.Output.Format, dest)
	if err != nil {
		return fail(err)
	}
	writer, err := output.New(dest, format)
	if err != nil {
		return fail(err)
	}
	summary.Format = format

	tap, err := events.NewTap(events.Options{
		Source:    backend.Source,
		Resolver:  keys.NewResolver(backend.Layout),
		Clock:     clock,
		QueueSize: cfg.Output.QueueSize,
		MaxEvents: opts.MaxEvents,
	})
	if err != nil {
		return fail(fmt.Errorf("initialise event tap: %w", err))
	}

	runCtx := ctx
	if cfg.Listen.DurationSeconds > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Listen.DurationSeconds)*time.Second)
		defer cancel()
	}

	opts.Logger.Info("listening for key input",
		"source", summary.Source,
		"layout", summary.Layout,
		"format", summary.Format,
		"output", summary.Output,
		"max_events", opts.MaxEvents,
		"duration_seconds", cfg.Listen.DurationSeconds,
		"interval", opts.Interval,
	)

	res, err := tap.Capture(runCtx, writer)
	summary.Events = res
	summary.FinishedAt = clock().UTC()

	closed = true
	closeErr := closeDest()

	switch {
	case err == nil && res.LimitReached:
		summary.Termination = TerminationLimit
	case err == nil:
		summary.Termination = TerminationCompleted
	case errors.Is(err, context.DeadlineExceeded):
		summary.Termination = TerminationDuration
		err = nil
	case errors.Is(err, context.Canceled) && ctx.Err() != nil:
		summary.Termination = TerminationInterrupted
		err = nil
	default:
		summary.Termination = TerminationError
	}
	if err == nil && closeErr != nil {
		summary.Termination = TerminationError
		err = fmt.Errorf("close output: %w", closeErr)
	}

	attrs := []any{
		"termination", summary.Termination,
		"events", res.EventCount,
		"down", res.DownCount,
		"up", res.UpCount,
		"elapsed", summary.FinishedAt.Sub(summary.StartedAt),
	}
	if err != nil {
		opts.Logger.Error("capture stopped", append(attrs, "error", err)...)
		return summary, err
	}
	opts.Logger.Info("capture stopped", attrs...)
	for stage, count := range res.Stages {
		opts.Logger.Debug("resolution stage usage", "stage", string(stage), "events", count)
	}
	return summary, nil
}

// openDestination returns the record sink for path plus a closer that flushes
// it. "-" and blank select stdout; files are appended to.
func openDestination(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		if stdout == nil {
			stdout = os.Stdout
		}
		return stdout, func() error { return nil }, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("ensure output directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open output file: %w", err)
	}
	buf := bufio.NewWriter(file)
	return buf, func() error {
		flushErr := buf.Flush()
		closeErr := file.Close()
		if flushErr != nil {
			return flushErr
		}
		return closeErr
	}, nil
}

func displayPath(path string) string {
	if path == "" || path == "-" {
		return "stdout"
	}
	return path
}
