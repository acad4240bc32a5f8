package events

import "github.com/offlinefirst/keytap/pkg/keys"

// evdevExtended maps Linux input key codes outside the base block to PC
// set-1 make codes and their prefix. Codes 1-83 and 86-88 equal their set-1
// make code and need no entry.
var evdevExtended = map[uint16]struct {
	scan  keys.ScanCode
	flags Flags
}{
	96:  {0x1C, FlagE0}, // KEY_KPENTER
	97:  {0x1D, FlagE0}, // KEY_RIGHTCTRL
	98:  {0x35, FlagE0}, // KEY_KPSLASH
	99:  {0x37, FlagE0}, // KEY_SYSRQ
	100: {0x38, FlagE0}, // KEY_RIGHTALT
	102: {0x47, FlagE0}, // KEY_HOME
	103: {0x48, FlagE0}, // KEY_UP
	104: {0x49, FlagE0}, // KEY_PAGEUP
	105: {0x4B, FlagE0}, // KEY_LEFT
	106: {0x4D, FlagE0}, // KEY_RIGHT
	107: {0x4F, FlagE0}, // KEY_END
	108: {0x50, FlagE0}, // KEY_DOWN
	109: {0x51, FlagE0}, // KEY_PAGEDOWN
	110: {0x52, FlagE0}, // KEY_INSERT
	111: {0x53, FlagE0}, // KEY_DELETE
	113: {0x20, FlagE0}, // KEY_MUTE
	114: {0x2E, FlagE0}, // KEY_VOLUMEDOWN
	115: {0x30, FlagE0}, // KEY_VOLUMEUP
	119: {0x1D, FlagE1}, // KEY_PAUSE
	125: {0x5B, FlagE0}, // KEY_LEFTMETA
	126: {0x5C, FlagE0}, // KEY_RIGHTMETA
	127: {0x5D, FlagE0}, // KEY_COMPOSE
	128: {0x68, FlagE0}, // KEY_STOP
	155: {0x6C, FlagE0}, // KEY_MAIL
	156: {0x66, FlagE0}, // KEY_BOOKMARKS
	158: {0x6A, FlagE0}, // KEY_BACK
	159: {0x69, FlagE0}, // KEY_FORWARD
	163: {0x19, FlagE0}, // KEY_NEXTSONG
	164: {0x22, FlagE0}, // KEY_PLAYPAUSE
	165: {0x10, FlagE0}, // KEY_PREVIOUSSONG
	166: {0x24, FlagE0}, // KEY_STOPCD
	172: {0x32, FlagE0}, // KEY_HOMEPAGE
	173: {0x67, FlagE0}, // KEY_REFRESH
	183: {0x64, 0},      // KEY_F13
	184: {0x65, 0},
	185: {0x66, 0},
	186: {0x67, 0},
	187: {0x68, 0},
	188: {0x69, 0},
	189: {0x6A, 0},
	190: {0x6B, 0},
	191: {0x6C, 0},
	192: {0x6D, 0},
	193: {0x6E, 0},
	194: {0x76, 0},      // KEY_F24
	217: {0x65, FlagE0}, // KEY_SEARCH
	226: {0x6D, FlagE0}, // KEY_MEDIA
}

// evdevScanCode converts a Linux key code to a set-1 make code plus prefix
// flags.
func evdevScanCode(code uint16) (keys.ScanCode, Flags, bool) {
	if (code >= 1 && code <= 83) || (code >= 86 && code <= 88) {
		return keys.ScanCode(code), 0, true
	}
	if ext, ok := evdevExtended[code]; ok {
		return ext.scan, ext.flags, true
	}
	return 0, 0, false
}

// evdevRawKey translates one EV_KEY event through the layout. value is 0 for
// release, 1 for press and 2 for autorepeat, which is reported as a press.
func evdevRawKey(layout *keys.StaticLayout, code uint16, value int32) (RawKey, bool) {
	scan, flags, ok := evdevScanCode(code)
	if !ok {
		return RawKey{}, false
	}
	vk, ok := layout.MapScanCode(scan, flags&FlagE0 != 0, flags&FlagE1 != 0)
	if !ok {
		return RawKey{}, false
	}
	if value == 0 {
		flags |= FlagBreak
	}
	return RawKey{VK: vk, Scan: scan, Flags: flags}, true
}
