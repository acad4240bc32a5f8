package events

import "errors"

// ErrUnsupportedSource indicates the requested event source cannot run on
// this platform or is not a known source name.
var ErrUnsupportedSource = errors.New("event source not supported on this platform")

// ErrInputPermission indicates the process cannot read keyboard input devices.
var ErrInputPermission = errors.New("permission to read keyboard input devices required for event capture")

// ErrNoKeyboards is returned when a device-backed source finds nothing to read.
var ErrNoKeyboards = errors.New("no keyboard devices found")

// errLimitReached stops a source once the configured event count is delivered.
var errLimitReached = errors.New("event limit reached")
