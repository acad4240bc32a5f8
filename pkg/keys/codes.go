package keys

import "fmt"

// VirtualKey is the layout-independent key identifier assigned by the OS.
// Raw input reports it as a 16-bit value; meaningful codes are 0-255.
type VirtualKey uint16

// ScanCode is the make code reported by the keyboard for a physical key
// position. The E0/E1 prefixes travel separately in the event flags.
type ScanCode uint16

// Virtual key codes referenced by the catalog, the static layouts and the
// synthetic source. Digits and letters use their ASCII values ('0'-'9',
// 'A'-'Z').
const (
	VK_BACK              VirtualKey = 0x08
	VK_TAB               VirtualKey = 0x09
	VK_CLEAR             VirtualKey = 0x0C
	VK_RETURN            VirtualKey = 0x0D
	VK_SHIFT             VirtualKey = 0x10
	VK_CONTROL           VirtualKey = 0x11
	VK_MENU              VirtualKey = 0x12
	VK_PAUSE             VirtualKey = 0x13
	VK_CAPITAL           VirtualKey = 0x14
	VK_ESCAPE            VirtualKey = 0x1B
	VK_SPACE             VirtualKey = 0x20
	VK_PRIOR             VirtualKey = 0x21
	VK_NEXT              VirtualKey = 0x22
	VK_END               VirtualKey = 0x23
	VK_HOME              VirtualKey = 0x24
	VK_LEFT              VirtualKey = 0x25
	VK_UP                VirtualKey = 0x26
	VK_RIGHT             VirtualKey = 0x27
	VK_DOWN              VirtualKey = 0x28
	VK_SNAPSHOT          VirtualKey = 0x2C
	VK_INSERT            VirtualKey = 0x2D
	VK_DELETE            VirtualKey = 0x2E
	VK_LWIN              VirtualKey = 0x5B
	VK_RWIN              VirtualKey = 0x5C
	VK_APPS              VirtualKey = 0x5D
	VK_NUMPAD0           VirtualKey = 0x60
	VK_NUMPAD1           VirtualKey = 0x61
	VK_NUMPAD2           VirtualKey = 0x62
	VK_NUMPAD3           VirtualKey = 0x63
	VK_NUMPAD4           VirtualKey = 0x64
	VK_NUMPAD5           VirtualKey = 0x65
	VK_NUMPAD6           VirtualKey = 0x66
	VK_NUMPAD7           VirtualKey = 0x67
	VK_NUMPAD8           VirtualKey = 0x68
	VK_NUMPAD9           VirtualKey = 0x69
	VK_MULTIPLY          VirtualKey = 0x6A
	VK_ADD               VirtualKey = 0x6B
	VK_SEPARATOR         VirtualKey = 0x6C
	VK_SUBTRACT          VirtualKey = 0x6D
	VK_DECIMAL           VirtualKey = 0x6E
	VK_DIVIDE            VirtualKey = 0x6F
	VK_F1                VirtualKey = 0x70
	VK_F12               VirtualKey = 0x7B
	VK_F13               VirtualKey = 0x7C
	VK_F24               VirtualKey = 0x87
	VK_NUMLOCK           VirtualKey = 0x90
	VK_SCROLL            VirtualKey = 0x91
	VK_LSHIFT            VirtualKey = 0xA0
	VK_RSHIFT            VirtualKey = 0xA1
	VK_LCONTROL          VirtualKey = 0xA2
	VK_RCONTROL          VirtualKey = 0xA3
	VK_LMENU             VirtualKey = 0xA4
	VK_RMENU             VirtualKey = 0xA5
	VK_BROWSER_BACK      VirtualKey = 0xA6
	VK_BROWSER_FORWARD   VirtualKey = 0xA7
	VK_BROWSER_REFRESH   VirtualKey = 0xA8
	VK_BROWSER_STOP      VirtualKey = 0xA9
	VK_BROWSER_SEARCH    VirtualKey = 0xAA
	VK_BROWSER_FAVORITES VirtualKey = 0xAB
	VK_BROWSER_HOME      VirtualKey = 0xAC
	VK_VOLUME_MUTE       VirtualKey = 0xAD
	VK_VOLUME_DOWN       VirtualKey = 0xAE
	VK_VOLUME_UP         VirtualKey = 0xAF
	VK_MEDIA_NEXT_TRACK  VirtualKey = 0xB0
	VK_MEDIA_PREV_TRACK  VirtualKey = 0xB1
	VK_MEDIA_STOP        VirtualKey = 0xB2
	VK_MEDIA_PLAY_PAUSE  VirtualKey = 0xB3
	VK_LAUNCH_MAIL       VirtualKey = 0xB4
	VK_LAUNCH_MEDIA      VirtualKey = 0xB5
	VK_LAUNCH_APP1       VirtualKey = 0xB6
	VK_LAUNCH_APP2       VirtualKey = 0xB7
	VK_OEM_1             VirtualKey = 0xBA
	VK_OEM_PLUS          VirtualKey = 0xBB
	VK_OEM_COMMA         VirtualKey = 0xBC
	VK_OEM_MINUS         VirtualKey = 0xBD
	VK_OEM_PERIOD        VirtualKey = 0xBE
	VK_OEM_2             VirtualKey = 0xBF
	VK_OEM_3             VirtualKey = 0xC0
	VK_OEM_4             VirtualKey = 0xDB
	VK_OEM_5             VirtualKey = 0xDC
	VK_OEM_6             VirtualKey = 0xDD
	VK_OEM_7             VirtualKey = 0xDE
	VK_OEM_8             VirtualKey = 0xDF
	VK_OEM_102           VirtualKey = 0xE2
)

// String renders the code the way the placeholder stage does, e.g. "VK_0D".
func (vk VirtualKey) String() string {
	return placeholder(vk)
}

// String renders the scan code as two or more hex digits, e.g. "0x1E".
func (sc ScanCode) String() string {
	return fmt.Sprintf("0x%02X", uint16(sc))
}
