package permissions

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Status enumerates coarse permission results for input device access.
type Status string

const (
	// StatusUnknown indicates no explicit signal about permission state.
	StatusUnknown Status = "unknown"
	// StatusGranted signals that input can be read.
	StatusGranted Status = "granted"
	// StatusDenied indicates the devices exist but cannot be opened.
	StatusDenied Status = "denied"
	// StatusUnavailable reports that the capability is not supported.
	StatusUnavailable Status = "unavailable"
)

// InputAccessEnv overrides the probe, for CI and containers.
const InputAccessEnv = "KEYTAP_INPUT_ACCESS"

// ProbeResult represents the coarse state for a permission surface.
type ProbeResult struct {
	Status   Status
	Message  string
	Guidance string
}

// LookupEnvFunc exposes environment probing for testability.
type LookupEnvFunc func(string) (string, bool)

// DefaultLookupEnv is the standard environment resolver.
func DefaultLookupEnv(key string) (string, bool) {
	return lookupEnv(key)
}

// lookupEnv is declared for swapping in tests.
var lookupEnv = func(key string) (string, bool) {
	return os.LookupEnv(key)
}

var (
	goos        = runtime.GOOS
	inputGlob   = "/dev/input/event*"
	openForRead = func(path string) error {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		return f.Close()
	}
)

const inputGuidance = "add the user to the 'input' group or run with elevated privileges; set " + InputAccessEnv + " to override"

// ProbeInputDevices reports whether keyboard input can be captured. Windows
// raw input needs no grant; on Linux at least one evdev node must open.
func ProbeInputDevices(lookup LookupEnvFunc) ProbeResult {
	if lookup == nil {
		lookup = lookupEnv
	}
	if value, ok := lookup(InputAccessEnv); ok {
		return interpretPermissionFlag("input device", value)
	}
	switch goos {
	case "windows":
		return ProbeResult{Status: StatusGranted, Message: "raw input registration requires no grant"}
	case "linux":
		return probeEvdevNodes()
	default:
		return ProbeResult{Status: StatusUnavailable, Message: "keyboard capture unsupported on " + goos}
	}
}

func probeEvdevNodes() ProbeResult {
	paths, err := filepath.Glob(inputGlob)
	if err != nil || len(paths) == 0 {
		return ProbeResult{Status: StatusUnavailable, Message: "no evdev input nodes found"}
	}
	denied := 0
	for _, path := range paths {
		err := openForRead(path)
		if err == nil {
			return ProbeResult{Status: StatusGranted, Message: "evdev input nodes readable"}
		}
		if errors.Is(err, fs.ErrPermission) {
			denied++
		}
	}
	if denied > 0 {
		return ProbeResult{Status: StatusDenied, Message: "evdev input nodes not readable", Guidance: inputGuidance}
	}
	return ProbeResult{Status: StatusUnknown, Message: "evdev input nodes could not be opened"}
}

func interpretPermissionFlag(name, value string) ProbeResult {
	normalised := strings.ToLower(strings.TrimSpace(value))
	switch normalised {
	case "granted", "allow", "allowed", "yes", "true":
		return ProbeResult{Status: StatusGranted, Message: name + " permission pre-authorised via env override"}
	case "denied", "no", "false", "blocked":
		return ProbeResult{Status: StatusDenied, Message: name + " permission denied via env override", Guidance: inputGuidance}
	case "unavailable", "unsupported":
		return ProbeResult{Status: StatusUnavailable, Message: name + " permission unavailable on this platform"}
	default:
		return ProbeResult{Status: StatusUnknown, Message: name + " permission state unknown"}
	}
}

// StatusString returns the string representation for diagnostics output.
func (p ProbeResult) StatusString() string {
	if p.Status == "" {
		return string(StatusUnknown)
	}
	return string(p.Status)
}
