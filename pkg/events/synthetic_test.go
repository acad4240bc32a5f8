package events

import (
	"context"
	"testing"
	"time"

	"github.com/offlinefirst/keytap/pkg/keys"
)

func runSynthetic(t *testing.T, opts SourceOptions) []KeyEvent {
	t.Helper()
	backend, err := Open(opts)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	tap, err := NewTap(Options{Source: backend.Source, Resolver: keys.NewResolver(backend.Layout)})
	if err != nil {
		t.Fatalf("new tap: %v", err)
	}
	sink := &collectSink{}
	if _, err := tap.Capture(context.Background(), sink); err != nil {
		t.Fatalf("capture: %v", err)
	}
	return sink.events
}

func names(events []KeyEvent) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		if e.Direction == DirectionDown {
			out = append(out, e.KeyName)
		}
	}
	return out
}

func TestSyntheticDefaultScript(t *testing.T) {
	base := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	events := runSynthetic(t, SourceOptions{Name: SourceSynthetic, Clock: func() time.Time { return base }})
	if len(events) != 44 {
		t.Fatalf("expected 44 records, got %d", len(events))
	}
	if events[0].KeyName != "Shift" || events[1].KeyName != "H" || events[3].Direction != DirectionUp {
		t.Fatalf("unexpected opening sequence: %+v", events[:4])
	}
	if !events[1].Timestamp.Equal(base.Add(time.Millisecond)) {
		t.Fatalf("expected scripted timestamps, got %s", events[1].Timestamp)
	}

	tail := names(events[len(events)-12:])
	want := []string{"Enter", "F1", "Up Arrow", "Left Windows", "\\", "VK_FF"}
	if len(tail) != len(want) {
		t.Fatalf("expected %v, got %v", want, tail)
	}
	for i := range want {
		if tail[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, tail)
		}
	}
	for _, e := range events {
		if e.Device != nil {
			t.Fatalf("synthetic input should carry no device")
		}
	}
}

func TestSyntheticLayoutSensitive(t *testing.T) {
	fr := names(runSynthetic(t, SourceOptions{Name: SourceSynthetic, Layout: keys.LayoutFrFR, Script: "!"}))
	if len(fr) == 0 || fr[0] != "!" {
		t.Fatalf("expected ! from OEM_8 on AZERTY, got %v", fr)
	}
	if fr[len(fr)-2] != "<" {
		t.Fatalf("expected < for the 102nd key on AZERTY, got %v", fr)
	}
	de := names(runSynthetic(t, SourceOptions{Name: SourceSynthetic, Layout: keys.LayoutDeDE, Script: "@"}))
	if de[0] != "Alt" || de[1] != "Q" {
		t.Fatalf("expected AltGr+Q on QWERTZ, got %v", de)
	}
}

func TestSyntheticCancelled(t *testing.T) {
	backend, err := Open(SourceOptions{Name: SourceSynthetic, Interval: time.Hour})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	count := 0
	err = backend.Source.Stream(ctx, func(RawKey) error {
		count++
		cancel()
		return nil
	})
	if err != context.Canceled {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single delivery before cancellation, got %d", count)
	}
}
