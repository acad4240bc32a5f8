//go:build linux

package events

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	evdev "github.com/holoplot/go-evdev"

	"github.com/offlinefirst/keytap/pkg/keys"
)

type evdevSource struct {
	paths  []string
	layout *keys.StaticLayout
	clock  func() time.Time
}

type evdevReading struct {
	raw RawKey
	err error
}

func openEvdev(opts SourceOptions) (Backend, error) {
	layout, err := staticLayout(opts.Layout)
	if err != nil {
		return Backend{}, err
	}
	return Backend{
		Name: SourceEvdev,
		Source: &evdevSource{
			paths:  opts.Devices,
			layout: layout,
			clock:  opts.Clock,
		},
		Layout:     layout,
		LayoutName: string(layout.ID()),
	}, nil
}

// Stream reads every keyboard on its own goroutine and delivers the merged
// transitions on the calling goroutine, which alone touches the layout state.
func (s *evdevSource) Stream(ctx context.Context, emit func(RawKey) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	paths := s.paths
	if len(paths) == 0 {
		keyboards, err := listEvdevKeyboards()
		if err != nil {
			return err
		}
		for _, kb := range keyboards {
			paths = append(paths, kb.Path)
		}
	}
	if len(paths) == 0 {
		return ErrNoKeyboards
	}

	devices := make([]*evdev.InputDevice, 0, len(paths))
	closeAll := func() {
		for _, d := range devices {
			d.Close()
		}
	}
	for _, path := range paths {
		d, err := evdev.Open(path)
		if err != nil {
			closeAll()
			if errors.Is(err, fs.ErrPermission) {
				return fmt.Errorf("open %s: %w", path, ErrInputPermission)
			}
			return fmt.Errorf("open %s: %w", path, err)
		}
		devices = append(devices, d)
	}

	readCtx, cancel := context.WithCancel(ctx)
	readings := make(chan evdevReading)
	var wg sync.WaitGroup
	for _, d := range devices {
		wg.Add(1)
		go func(d *evdev.InputDevice) {
			defer wg.Done()
			s.read(readCtx, d, readings)
		}(d)
	}
	defer func() {
		cancel()
		closeAll()
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r := <-readings:
			if r.err != nil {
				return r.err
			}
			s.layout.Observe(r.raw.VK, r.raw.Scan, r.raw.Flags.Extended(), r.raw.Flags&FlagBreak == 0)
			if err := emit(r.raw); err != nil {
				return err
			}
		}
	}
}

func (s *evdevSource) read(ctx context.Context, d *evdev.InputDevice, out chan<- evdevReading) {
	info := evdevDeviceInfo(d)
	for {
		ev, err := d.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			select {
			case out <- evdevReading{err: fmt.Errorf("read %s: %w", d.Path(), err)}:
			case <-ctx.Done():
			}
			return
		}
		if ev.Type != evdev.EV_KEY {
			continue
		}
		raw, ok := evdevRawKey(s.layout, uint16(ev.Code), ev.Value)
		if !ok {
			continue
		}
		sec, nsec := ev.Time.Unix()
		raw.Time = time.Unix(sec, nsec)
		raw.Device = info
		select {
		case out <- evdevReading{raw: raw}:
		case <-ctx.Done():
			return
		}
	}
}

func evdevDeviceInfo(d *evdev.InputDevice) *DeviceInfo {
	name, _ := d.Name()
	info := &DeviceInfo{Path: d.Path(), Product: name}
	if id, err := d.InputID(); err == nil && (id.Vendor != 0 || id.Product != 0) {
		info.VendorID, info.ProductID, info.HasIDs = id.Vendor, id.Product, true
	}
	return info
}

// isKeyboard requires EV_KEY with the letter block, which rules out power
// buttons and mice that also report key events.
func isKeyboard(d *evdev.InputDevice) bool {
	hasKeys := false
	for _, t := range d.CapableTypes() {
		if t == evdev.EV_KEY {
			hasKeys = true
			break
		}
	}
	if !hasKeys {
		return false
	}
	for _, code := range d.CapableEvents(evdev.EV_KEY) {
		if code == evdev.KEY_A {
			return true
		}
	}
	return false
}

func listEvdevKeyboards() ([]Keyboard, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("list input devices: %w", err)
	}
	var keyboards []Keyboard
	for _, p := range paths {
		d, err := evdev.Open(p.Path)
		if err != nil {
			continue
		}
		if isKeyboard(d) {
			keyboards = append(keyboards, Keyboard{DeviceInfo: *evdevDeviceInfo(d), Source: SourceEvdev})
		}
		d.Close()
	}
	return keyboards, nil
}
