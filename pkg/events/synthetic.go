package events

import (
	"context"
	"time"

	"github.com/offlinefirst/keytap/pkg/keys"
)

// DefaultScript is typed by the synthetic source when no script is set.
const DefaultScript = "Hello, World!"

// syntheticExtras follow the typed text: keys that exercise the catalog,
// extended prefixes and the fallback stages.
var syntheticExtras = []RawKey{
	{Scan: 0x1C},
	{Scan: 0x3B},
	{Scan: 0x48, Flags: FlagE0},
	{Scan: 0x5B, Flags: FlagE0},
	{Scan: 0x56},
	{VK: 0xFF, Scan: 0x00},
}

type syntheticSource struct {
	layout   *keys.StaticLayout
	script   string
	extras   []RawKey
	clock    func() time.Time
	interval time.Duration
}

func openSynthetic(opts SourceOptions) (Backend, error) {
	layout, err := staticLayout(opts.Layout)
	if err != nil {
		return Backend{}, err
	}
	script := opts.Script
	if script == "" {
		script = DefaultScript
	}
	return Backend{
		Name: SourceSynthetic,
		Source: &syntheticSource{
			layout:   layout,
			script:   script,
			extras:   syntheticExtras,
			clock:    opts.Clock,
			interval: opts.Interval,
		},
		Layout:     layout,
		LayoutName: string(layout.ID()),
	}, nil
}

// Stream replays the script as press/release pairs, holding Shift or AltGr
// around characters that need them, then the extra keys. It drives the
// layout's key state the way the OS would before each delivery.
func (s *syntheticSource) Stream(ctx context.Context, emit func(RawKey) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	start := s.clock().UTC()
	step := 0
	send := func(raw RawKey) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.interval > 0 && step > 0 {
			timer := time.NewTimer(s.interval)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		raw.Time = start.Add(time.Duration(step) * time.Millisecond)
		step++
		s.layout.Observe(raw.VK, raw.Scan, raw.Flags.Extended(), raw.Flags&FlagBreak == 0)
		return emit(raw)
	}
	tap := func(raw RawKey) error {
		if err := send(raw); err != nil {
			return err
		}
		raw.Flags |= FlagBreak
		return send(raw)
	}

	shift := RawKey{VK: keys.VK_SHIFT, Scan: 0x2A}
	altgr := RawKey{VK: keys.VK_MENU, Scan: 0x38, Flags: FlagE0}
	for _, r := range s.script {
		stroke, ok := s.layout.Keystroke(r)
		if !ok {
			continue
		}
		var held []RawKey
		if stroke.Shift {
			held = append(held, shift)
		}
		if stroke.AltGr {
			held = append(held, altgr)
		}
		for _, m := range held {
			if err := send(m); err != nil {
				return err
			}
		}
		if err := tap(RawKey{VK: stroke.VK, Scan: stroke.Scan}); err != nil {
			return err
		}
		for i := len(held) - 1; i >= 0; i-- {
			up := held[i]
			up.Flags |= FlagBreak
			if err := send(up); err != nil {
				return err
			}
		}
	}

	for _, extra := range s.extras {
		if extra.VK == 0 {
			vk, ok := s.layout.MapScanCode(extra.Scan, extra.Flags&FlagE0 != 0, extra.Flags&FlagE1 != 0)
			if !ok {
				continue
			}
			extra.VK = vk
		}
		if err := tap(extra); err != nil {
			return err
		}
	}
	return nil
}
