package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/offlinefirst/keytap/pkg/capture"
	"github.com/offlinefirst/keytap/pkg/config"
	"github.com/offlinefirst/keytap/pkg/events"
	"github.com/offlinefirst/keytap/pkg/output"
)

func newListenCommand() command {
	return command{
		name:        "listen",
		description: "Capture key presses and print one record per transition",
		configure: func(fs *flag.FlagSet) {
			fs.String("source", "", "Event source ("+strings.Join(events.Sources(), ", ")+")")
			fs.String("output", "", "Record destination file, - for stdout")
			fs.String("format", "", "Record format (json, console, auto)")
			fs.String("layout", "", "Static layout for evdev and synthetic sources")
			fs.Duration("duration", 0, "Stop after this long (0 runs until interrupted)")
			fs.Int("count", 0, "Stop after this many records (0 means no limit)")
			fs.String("script", "", "Text typed by the synthetic source")
			fs.Duration("interval", 0, "Delay between synthetic keystrokes (0 replays at once)")
			fs.Bool("plan-only", false, "Print the resolved configuration without starting capture")
		},
		run: runListen,
	}
}

var (
	timeNow       = time.Now
	captureRun    = capture.Run
	signalContext = func() (context.Context, context.CancelFunc) {
		return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	}
)

func runListen(fs *flag.FlagSet, args []string, ctx *AppContext, stdout io.Writer, stderr io.Writer) error {
	if ctx == nil {
		return fmt.Errorf("application context unavailable")
	}
	if len(args) > 0 {
		return fmt.Errorf("listen takes no arguments, got %q", strings.Join(args, " "))
	}

	cfg, err := applyListenFlags(ctx.Config, fs)
	if err != nil {
		return err
	}
	count := intFlag(fs, "count")
	if count < 0 {
		return fmt.Errorf("-count must not be negative")
	}

	interval := durationFlag(fs, "interval")
	if interval < 0 {
		return fmt.Errorf("-interval must not be negative")
	}

	planOnly := boolFlag(fs, "plan-only")
	ctx.Logger.Info("listen command invoked", "plan_only", planOnly, "source", cfg.Listen.Source, "config_source", cfg.Source)

	if planOnly {
		printListenPlan(cfg, count, interval, stdout)
		return nil
	}

	runCtx, stop := signalContext()
	defer stop()

	summary, err := captureRun(runCtx, capture.Options{
		Config:    cfg,
		Logger:    ctx.Logger,
		Clock:     timeNow,
		Stdout:    stdout,
		MaxEvents: count,
		Script:    stringFlag(fs, "script"),
		Interval:  interval,
	})
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	fmt.Fprintf(stderr, "Captured %d records (%d down, %d up) from %s [%s] -> %s (termination: %s)\n",
		summary.Events.EventCount, summary.Events.DownCount, summary.Events.UpCount,
		summary.Source, summary.Layout, summary.Output, summary.Termination)
	return nil
}

// applyListenFlags overlays explicitly set flags on the loaded configuration.
func applyListenFlags(cfg config.Config, fs *flag.FlagSet) (config.Config, error) {
	set := visitedFlags(fs)
	if set["source"] {
		cfg.Listen.Source = strings.ToLower(strings.TrimSpace(stringFlag(fs, "source")))
	}
	if set["layout"] {
		cfg.Listen.Layout = strings.TrimSpace(stringFlag(fs, "layout"))
	}
	if set["output"] {
		cfg.Output.Path = strings.TrimSpace(stringFlag(fs, "output"))
		if cfg.Output.Path == "" {
			cfg.Output.Path = "-"
		}
	}
	if set["format"] {
		cfg.Output.Format = output.NormalizeFormat(stringFlag(fs, "format"))
	}
	if set["duration"] {
		d := durationFlag(fs, "duration")
		if d < 0 {
			return cfg, fmt.Errorf("-duration must not be negative")
		}
		cfg.Listen.DurationSeconds = int((d + time.Second - 1) / time.Second)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func printListenPlan(cfg config.Config, count int, interval time.Duration, stdout io.Writer) {
	fmt.Fprintf(stdout, "Resolved configuration (source: %s)\n", cfg.Source)
	fmt.Fprintf(stdout, "  listen.source: %s (resolves to %s)\n", cfg.Listen.Source, events.ResolveSourceName(cfg.Listen.Source))
	fmt.Fprintf(stdout, "  listen.layout: %s\n", cfg.Listen.Layout)
	fmt.Fprintf(stdout, "  listen.input_sink: %t\n", cfg.Listen.InputSink)
	fmt.Fprintf(stdout, "  listen.no_legacy: %t\n", cfg.Listen.NoLegacy)
	if len(cfg.Listen.Devices) > 0 {
		fmt.Fprintf(stdout, "  listen.devices: %s\n", strings.Join(cfg.Listen.Devices, ", "))
	}
	fmt.Fprintf(stdout, "  listen.duration_seconds: %d\n", cfg.Listen.DurationSeconds)
	fmt.Fprintf(stdout, "  output.path: %s\n", cfg.Output.Path)
	fmt.Fprintf(stdout, "  output.format: %s\n", cfg.Output.Format)
	fmt.Fprintf(stdout, "  output.queue_size: %d\n", cfg.Output.QueueSize)
	fmt.Fprintf(stdout, "  count: %d\n", count)
	fmt.Fprintf(stdout, "  interval: %s\n", interval)
	fmt.Fprintf(stdout, "  logging.level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(stdout, "  logging.format: %s\n", cfg.Logging.Format)
}
