package capture

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/offlinefirst/keytap/pkg/config"
	"github.com/offlinefirst/keytap/pkg/events"
	"github.com/offlinefirst/keytap/pkg/keys"
	"github.com/offlinefirst/keytap/pkg/logging"
)

var base = time.Date(2024, 6, 10, 6, 13, 20, 0, time.UTC)

func syntheticConfig() config.Config {
	cfg := config.Default()
	cfg.Listen.Source = events.SourceSynthetic
	cfg.Output.Format = "json"
	return cfg
}

func withBackend(t *testing.T, source events.EventSource) {
	t.Helper()
	orig := openBackend
	openBackend = func(opts events.SourceOptions) (events.Backend, error) {
		return events.Backend{Name: "stub", Source: source, LayoutName: "none"}, nil
	}
	t.Cleanup(func() { openBackend = orig })
}

func countLines(t *testing.T, data []byte) int {
	t.Helper()
	scanner := bufio.NewScanner(bytes.NewReader(data))
	n := 0
	for scanner.Scan() {
		if !json.Valid(scanner.Bytes()) {
			t.Fatalf("line %d is not valid JSON: %q", n+1, scanner.Text())
		}
		n++
	}
	return n
}

func TestRunSyntheticToStdout(t *testing.T) {
	var stdout bytes.Buffer
	summary, err := Run(context.Background(), Options{
		Config: syntheticConfig(),
		Logger: logging.Discard(),
		Clock:  func() time.Time { return base },
		Stdout: &stdout,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Termination != TerminationCompleted {
		t.Fatalf("expected completed, got %q", summary.Termination)
	}
	if summary.Source != events.SourceSynthetic || summary.Layout != string(keys.LayoutEnUS) || summary.Format != "json" {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Output != "stdout" {
		t.Fatalf("expected stdout output, got %q", summary.Output)
	}
	if summary.Events.EventCount == 0 || summary.Events.DownCount != summary.Events.UpCount {
		t.Fatalf("expected balanced down/up counts, got %+v", summary.Events)
	}
	if got := countLines(t, stdout.Bytes()); got != summary.Events.EventCount {
		t.Fatalf("expected %d lines, got %d", summary.Events.EventCount, got)
	}
	if !strings.Contains(stdout.String(), `"keyName":"Shift"`) {
		t.Fatalf("expected shift record in output")
	}
}

func TestRunStopsAtEventLimit(t *testing.T) {
	var stdout bytes.Buffer
	summary, err := Run(context.Background(), Options{
		Config:    syntheticConfig(),
		Logger:    logging.Discard(),
		Clock:     func() time.Time { return base },
		Stdout:    &stdout,
		MaxEvents: 3,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Termination != TerminationLimit || summary.Events.EventCount != 3 {
		t.Fatalf("expected limit after 3 events, got %+v", summary)
	}
	if got := countLines(t, stdout.Bytes()); got != 3 {
		t.Fatalf("expected 3 lines, got %d", got)
	}
}

func TestRunAppendsToFile(t *testing.T) {
	cfg := syntheticConfig()
	cfg.Output.Path = filepath.Join(t.TempDir(), "sessions", "keys.jsonl")

	var total int
	for i := 0; i < 2; i++ {
		summary, err := Run(context.Background(), Options{
			Config:    cfg,
			Logger:    logging.Discard(),
			Clock:     func() time.Time { return base },
			MaxEvents: 2,
		})
		if err != nil {
			t.Fatalf("Run %d returned error: %v", i, err)
		}
		total += summary.Events.EventCount
	}

	data, err := os.ReadFile(cfg.Output.Path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if got := countLines(t, data); got != total || total != 4 {
		t.Fatalf("expected 4 appended lines, got %d (total %d)", got, total)
	}
}

func TestRunInterruptedIsClean(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	withBackend(t, events.EventSourceFunc(func(ctx context.Context, emit func(events.RawKey) error) error {
		if err := emit(events.RawKey{Time: base, VK: keys.VirtualKey('A'), Scan: 0x1E}); err != nil {
			return err
		}
		cancel()
		<-ctx.Done()
		return ctx.Err()
	}))

	var stdout bytes.Buffer
	summary, err := Run(ctx, Options{Config: syntheticConfig(), Logger: logging.Discard(), Stdout: &stdout})
	if err != nil {
		t.Fatalf("expected clean interruption, got %v", err)
	}
	if summary.Termination != TerminationInterrupted {
		t.Fatalf("expected interrupted, got %q", summary.Termination)
	}
	if summary.Events.EventCount != 1 {
		t.Fatalf("expected the delivered event to be written, got %d", summary.Events.EventCount)
	}
}

func TestRunDurationLimit(t *testing.T) {
	withBackend(t, events.EventSourceFunc(func(ctx context.Context, emit func(events.RawKey) error) error {
		<-ctx.Done()
		return ctx.Err()
	}))

	cfg := syntheticConfig()
	cfg.Listen.DurationSeconds = 1
	summary, err := Run(context.Background(), Options{Config: cfg, Logger: logging.Discard(), Stdout: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("expected clean stop, got %v", err)
	}
	if summary.Termination != TerminationDuration {
		t.Fatalf("expected duration termination, got %q", summary.Termination)
	}
}

func TestRunPropagatesSourceErrors(t *testing.T) {
	lost := errors.New("device lost")
	withBackend(t, events.EventSourceFunc(func(ctx context.Context, emit func(events.RawKey) error) error {
		return lost
	}))

	summary, err := Run(context.Background(), Options{Config: syntheticConfig(), Logger: logging.Discard(), Stdout: &bytes.Buffer{}})
	if !errors.Is(err, lost) {
		t.Fatalf("expected source error, got %v", err)
	}
	if summary.Termination != TerminationError {
		t.Fatalf("expected error termination, got %q", summary.Termination)
	}
}

func TestRunRejectsUnknownSource(t *testing.T) {
	cfg := syntheticConfig()
	cfg.Listen.Source = "bluetooth"
	_, err := Run(context.Background(), Options{Config: cfg, Logger: logging.Discard(), Stdout: &bytes.Buffer{}})
	if !errors.Is(err, events.ErrUnsupportedSource) {
		t.Fatalf("expected ErrUnsupportedSource, got %v", err)
	}
}

func TestRunRequiresLogger(t *testing.T) {
	if _, err := Run(context.Background(), Options{Config: syntheticConfig()}); err == nil {
		t.Fatalf("expected error without logger")
	}
}

func TestRunCallerDeadlineCountsAsDuration(t *testing.T) {
	withBackend(t, events.EventSourceFunc(func(ctx context.Context, emit func(events.RawKey) error) error {
		<-ctx.Done()
		return ctx.Err()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	summary, err := Run(ctx, Options{Config: syntheticConfig(), Logger: logging.Discard(), Stdout: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("expected clean stop, got %v", err)
	}
	if summary.Termination != TerminationDuration {
		t.Fatalf("expected duration termination, got %q", summary.Termination)
	}
}

func TestRunPacesSyntheticKeystrokes(t *testing.T) {
	started := time.Now()
	summary, err := Run(context.Background(), Options{
		Config:    syntheticConfig(),
		Logger:    logging.Discard(),
		Stdout:    &bytes.Buffer{},
		MaxEvents: 3,
		Interval:  20 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Events.EventCount != 3 {
		t.Fatalf("expected 3 events, got %d", summary.Events.EventCount)
	}
	if elapsed := time.Since(started); elapsed < 40*time.Millisecond {
		t.Fatalf("expected keystrokes paced by the interval, finished in %s", elapsed)
	}
}
