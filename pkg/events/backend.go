package events

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/offlinefirst/keytap/pkg/keys"
)

// Source names accepted by Open.
const (
	SourceAuto      = "auto"
	SourceRawInput  = "rawinput"
	SourceEvdev     = "evdev"
	SourceSynthetic = "synthetic"
)

// SourceOptions selects and configures an event source.
type SourceOptions struct {
	Name string
	// Layout names the static layout used by the evdev and synthetic
	// sources. The raw input source always reads the live system layout.
	Layout keys.LayoutID
	// InputSink keeps receiving input while another window has focus.
	InputSink bool
	// NoLegacy suppresses legacy keyboard messages for the registration.
	NoLegacy bool
	// Devices restricts evdev capture to these device paths.
	Devices []string
	Clock   func() time.Time
	// Script is the text typed by the synthetic source.
	Script string
	// Interval paces synthetic keystrokes in real time when positive.
	Interval time.Duration
}

// Backend pairs an event source with the layout context its events must be
// resolved against.
type Backend struct {
	Name       string
	Source     EventSource
	Layout     keys.LayoutContext
	LayoutName string
}

// Sources lists the source names accepted by Open.
func Sources() []string {
	return []string{SourceAuto, SourceRawInput, SourceEvdev, SourceSynthetic}
}

// ResolveSourceName maps "auto" and blank to the platform default.
func ResolveSourceName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == SourceAuto {
		if runtime.GOOS == "windows" {
			return SourceRawInput
		}
		return SourceSynthetic
	}
	return name
}

// Open builds the backend for the requested source.
func Open(opts SourceOptions) (Backend, error) {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	name := ResolveSourceName(opts.Name)
	switch name {
	case SourceRawInput:
		return openRawInput(opts)
	case SourceEvdev:
		return openEvdev(opts)
	case SourceSynthetic:
		return openSynthetic(opts)
	default:
		return Backend{}, fmt.Errorf("source %q: %w", opts.Name, ErrUnsupportedSource)
	}
}

func staticLayout(id keys.LayoutID) (*keys.StaticLayout, error) {
	if id == "" {
		id = keys.LayoutEnUS
	}
	layout, err := keys.NewStaticLayout(id)
	if err != nil {
		return nil, fmt.Errorf("layout %q: %w", id, err)
	}
	return layout, nil
}
