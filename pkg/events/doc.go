// Package events captures raw keyboard transitions and turns each one into a
// KeyEvent record carrying device identity, codes, direction and a resolved
// key name. Sources are the Windows raw input subsystem (a hidden window and
// message pump), Linux evdev devices, or a deterministic synthetic script for
// other platforms and automated tests.
package events
