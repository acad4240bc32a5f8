package cmd

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/offlinefirst/keytap/pkg/events"
	"github.com/offlinefirst/keytap/pkg/keys"
)

func TestResolveCatalogKey(t *testing.T) {
	root, stdout, _ := newTestRoot()
	if err := root.Execute([]string{"resolve", "-format", "console", "0x0D"}); err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "Enter") || !strings.Contains(out, "catalog") {
		t.Fatalf("unexpected resolve output %q", out)
	}
}

func TestResolveStaticLayoutDerivesScanCode(t *testing.T) {
	root, stdout, _ := newTestRoot()
	if err := root.Execute([]string{"resolve", "-layout", "de-DE", "-format", "json", "0xE2"}); err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	var got struct {
		VK     int    `json:"vk"`
		Scan   int    `json:"scan"`
		Layout string `json:"layout"`
		Name   string `json:"name"`
		Stage  string `json:"stage"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", stdout.String(), err)
	}
	if got.VK != 0xE2 || got.Scan != 0x56 || got.Layout != "de-DE" || got.Name != "<" || got.Stage != string(keys.StageTranslate) {
		t.Fatalf("unexpected resolution %+v", got)
	}
	if !strings.Contains(stdout.String(), `"name":"<"`) {
		t.Fatalf("expected unescaped name, got %q", stdout.String())
	}
}

func TestResolveWithoutLayoutUsesPlaceholder(t *testing.T) {
	orig := systemLayout
	systemLayout = func() keys.LayoutContext { return nil }
	defer func() { systemLayout = orig }()

	root, stdout, _ := newTestRoot()
	if err := root.Execute([]string{"resolve", "-format", "json", "255", "0"}); err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if !strings.Contains(stdout.String(), `"name":"VK_FF"`) || !strings.Contains(stdout.String(), `"stage":"placeholder"`) {
		t.Fatalf("unexpected output %q", stdout.String())
	}
}

func TestResolveRejectsBadArguments(t *testing.T) {
	for _, args := range [][]string{
		{"resolve"},
		{"resolve", "abc"},
		{"resolve", "0x10000"},
		{"resolve", "0x41", "0x1E", "extra"},
		{"resolve", "-layout", "xx-XX", "0x41"},
	} {
		root, _, _ := newTestRoot()
		if err := root.Execute(args); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestCatalogJSON(t *testing.T) {
	root, stdout, _ := newTestRoot()
	if err := root.Execute([]string{"catalog", "-format", "json"}); err != nil {
		t.Fatalf("catalog returned error: %v", err)
	}
	var entries []keys.CatalogEntry
	if err := json.Unmarshal(stdout.Bytes(), &entries); err != nil {
		t.Fatalf("decode catalog: %v", err)
	}
	if len(entries) != len(keys.Catalog()) {
		t.Fatalf("expected %d entries, got %d", len(keys.Catalog()), len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Code >= entries[i].Code {
			t.Fatalf("catalog not in ascending order at %d", i)
		}
	}
}

func TestCatalogConsole(t *testing.T) {
	root, stdout, _ := newTestRoot()
	if err := root.Execute([]string{"catalog", "-format", "console"}); err != nil {
		t.Fatalf("catalog returned error: %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "0x0D") || !strings.Contains(out, "Enter") {
		t.Fatalf("unexpected catalog table %q", out)
	}
}

func stubDevices(t *testing.T, keyboards []events.Keyboard, err error) {
	t.Helper()
	orig := listDevices
	listDevices = func() ([]events.Keyboard, error) { return keyboards, err }
	t.Cleanup(func() { listDevices = orig })
}

func TestDevicesConsole(t *testing.T) {
	stubDevices(t, []events.Keyboard{
		{DeviceInfo: events.DeviceInfo{Path: `\\?\HID#VID_046D&PID_C52B&MI_00`, Product: "USB Receiver", VendorID: 0x046D, ProductID: 0xC52B, HasIDs: true}, Source: events.SourceRawInput},
		{DeviceInfo: events.DeviceInfo{Path: "/dev/input/event3"}, Source: events.SourceEvdev},
	}, nil)

	root, stdout, _ := newTestRoot()
	if err := root.Execute([]string{"devices", "-format", "console"}); err != nil {
		t.Fatalf("devices returned error: %v", err)
	}
	out := stdout.String()
	for _, want := range []string{"VID:PID", "046D:C52B", "USB Receiver", "/dev/input/event3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestDevicesJSONUsesNullIDs(t *testing.T) {
	stubDevices(t, []events.Keyboard{{DeviceInfo: events.DeviceInfo{Path: "/dev/input/event3"}, Source: events.SourceEvdev}}, nil)

	root, stdout, _ := newTestRoot()
	if err := root.Execute([]string{"devices", "-format", "json"}); err != nil {
		t.Fatalf("devices returned error: %v", err)
	}
	want := `[{"source":"evdev","device":"/dev/input/event3","product":"","vendorId":null,"productId":null}]`
	if got := strings.TrimSpace(stdout.String()); got != want {
		t.Fatalf("unexpected devices json:\n got %s\nwant %s", got, want)
	}
}

func TestDevicesPermissionError(t *testing.T) {
	stubDevices(t, nil, events.ErrInputPermission)
	root, _, _ := newTestRoot()
	err := root.Execute([]string{"devices"})
	if !errors.Is(err, events.ErrInputPermission) || !strings.Contains(err.Error(), "doctor") {
		t.Fatalf("expected permission error with guidance, got %v", err)
	}
}

func TestDoctor(t *testing.T) {
	orig := detectEnvironment
	detectEnvironment = func() events.Environment {
		return events.Environment{
			Provider:   events.SourceEvdev,
			Default:    events.SourceSynthetic,
			Available:  true,
			Permission: "granted",
			Message:    "2 input devices readable",
			Layouts:    []string{"de-DE", "en-US", "fr-FR"},
		}
	}
	defer func() { detectEnvironment = orig }()

	root, stdout, _ := newTestRoot()
	if err := root.Execute([]string{"doctor"}); err != nil {
		t.Fatalf("doctor returned error: %v", err)
	}
	if !strings.Contains(stdout.String(), "provider: evdev") || !strings.Contains(stdout.String(), "layouts: de-DE, en-US, fr-FR") {
		t.Fatalf("unexpected doctor output %q", stdout.String())
	}

	root, stdout, _ = newTestRoot()
	if err := root.Execute([]string{"doctor", "-format", "json"}); err != nil {
		t.Fatalf("doctor json returned error: %v", err)
	}
	var env events.Environment
	if err := json.Unmarshal(stdout.Bytes(), &env); err != nil {
		t.Fatalf("decode doctor json: %v", err)
	}
	if env.Provider != events.SourceEvdev || !env.Available || len(env.Layouts) != 3 {
		t.Fatalf("unexpected environment %+v", env)
	}
}
