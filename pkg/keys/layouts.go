package keys

import (
	"sort"
	"strings"
)

// LayoutID names a built-in static keyboard layout.
type LayoutID string

const (
	LayoutEnUS LayoutID = "en-US"
	LayoutFrFR LayoutID = "fr-FR"
	LayoutDeDE LayoutID = "de-DE"
)

// Scan code prefixes used as table keys, following the MAPVK_VSC_TO_VK_EX
// convention: E0 keys are 0xE0xx, E1 keys 0xE1xx.
const (
	prefixE0 ScanCode = 0xE000
	prefixE1 ScanCode = 0xE100
)

const (
	deadPlain uint8 = 1 << iota
	deadShift
	deadAltGr
)

type keymap struct {
	plain string
	shift string
	altgr string
	// caps marks keys whose case follows Caps Lock.
	caps bool
	dead uint8
}

type layout struct {
	id       LayoutID
	altGr    bool
	scanToVK map[ScanCode]VirtualKey
	vkToScan map[VirtualKey]ScanCode
	chars    map[VirtualKey]keymap
	names    map[ScanCode]string
	strokes  []Keystroke
}

var layouts = map[LayoutID]*layout{
	LayoutEnUS: newLayout(LayoutEnUS, false, nil, usChars(), nil),
	LayoutFrFR: newLayout(LayoutFrFR, true, frScanOverrides, frChars(), frNames),
	LayoutDeDE: newLayout(LayoutDeDE, true, deScanOverrides, deChars(), deNames),
}

// Layouts returns the identifiers of the built-in layouts, sorted.
func Layouts() []LayoutID {
	r := make([]LayoutID, 0, len(layouts))
	for k := range layouts {
		r = append(r, k)
	}
	sort.Slice(r, func(i, j int) bool { return r[i] < r[j] })
	return r
}

func newLayout(id LayoutID, altGr bool, scanOverrides map[ScanCode]VirtualKey, chars map[VirtualKey]keymap, names map[ScanCode]string) *layout {
	l := &layout{
		id:       id,
		altGr:    altGr,
		scanToVK: make(map[ScanCode]VirtualKey, len(baseScanToVK)),
		chars:    chars,
		names:    make(map[ScanCode]string, len(baseNames)),
	}
	for sc, vk := range baseScanToVK {
		l.scanToVK[sc] = vk
	}
	for sc, vk := range scanOverrides {
		l.scanToVK[sc] = vk
	}
	l.vkToScan = make(map[VirtualKey]ScanCode, len(l.scanToVK))
	for sc, vk := range l.scanToVK {
		if prev, ok := l.vkToScan[vk]; !ok || sc < prev {
			l.vkToScan[vk] = sc
		}
	}
	l.strokes = buildKeystrokes(l)
	for sc, name := range baseNames {
		l.names[sc] = name
	}
	for sc, name := range names {
		l.names[sc] = name
	}
	return l
}

// StaticLayout is a table-driven LayoutContext. It carries its own 256-entry
// key state vector, updated through Observe, in the same shape the OS keeps
// for a thread: 0x80 marks a pressed key, 0x01 a toggled lock key.
//
// A StaticLayout is not safe for concurrent use; it belongs to the goroutine
// that delivers events.
type StaticLayout struct {
	layout *layout
	state  [256]byte
}

// NewStaticLayout returns a layout context for a built-in layout.
func NewStaticLayout(id LayoutID) (*StaticLayout, error) {
	l, ok := layouts[id]
	if !ok {
		return nil, ErrUnknownLayout
	}
	return &StaticLayout{layout: l}, nil
}

// ID reports the layout identifier.
func (s *StaticLayout) ID() LayoutID {
	return s.layout.id
}

// MapScanCode converts a make code plus prefix flags to the virtual key the
// layout assigns to that physical key.
func (s *StaticLayout) MapScanCode(scan ScanCode, e0, e1 bool) (VirtualKey, bool) {
	key := scan & 0xFF
	switch {
	case e1:
		key |= prefixE1
	case e0:
		key |= prefixE0
	}
	vk, ok := s.layout.scanToVK[key]
	return vk, ok
}

// ScanCodeFor returns the make code and prefix flags of the physical key the
// layout maps to vk. Keys reachable from several scan codes report the
// lowest one, so the main block wins over the numeric keypad.
func (s *StaticLayout) ScanCodeFor(vk VirtualKey) (scan ScanCode, e0, e1 bool, ok bool) {
	sc, ok := s.layout.vkToScan[vk]
	if !ok {
		return 0, false, false, false
	}
	return sc & 0xFF, sc&0xFF00 == prefixE0, sc&0xFF00 == prefixE1, true
}

// Keystroke is the physical key and modifiers that type one character.
type Keystroke struct {
	Char  rune
	VK    VirtualKey
	Scan  ScanCode
	Shift bool
	AltGr bool
}

// Keystroke finds how to type r on this layout. Dead keys are never chosen.
func (s *StaticLayout) Keystroke(r rune) (Keystroke, bool) {
	for _, k := range s.layout.strokes {
		if k.Char == r {
			return k, true
		}
	}
	return Keystroke{}, false
}

// buildKeystrokes orders every single-rune output by preference: unshifted
// before shifted before AltGr, then by virtual key. Keypad keys are skipped.
func buildKeystrokes(l *layout) []Keystroke {
	vks := make([]VirtualKey, 0, len(l.chars))
	for vk := range l.chars {
		if vk >= VK_NUMPAD0 && vk <= VK_DIVIDE {
			continue
		}
		if _, ok := l.vkToScan[vk]; !ok {
			continue
		}
		vks = append(vks, vk)
	}
	sort.Slice(vks, func(i, j int) bool { return vks[i] < vks[j] })

	var strokes []Keystroke
	seen := make(map[rune]bool)
	add := func(vk VirtualKey, text string, dead bool, shift, altgr bool) {
		runes := []rune(text)
		if dead || len(runes) != 1 || seen[runes[0]] {
			return
		}
		seen[runes[0]] = true
		strokes = append(strokes, Keystroke{Char: runes[0], VK: vk, Scan: l.vkToScan[vk] & 0xFF, Shift: shift, AltGr: altgr})
	}
	for _, vk := range vks {
		km := l.chars[vk]
		add(vk, km.plain, km.dead&deadPlain != 0, false, false)
	}
	for _, vk := range vks {
		km := l.chars[vk]
		add(vk, km.shift, km.dead&deadShift != 0, true, false)
	}
	if l.altGr {
		for _, vk := range vks {
			km := l.chars[vk]
			add(vk, km.altgr, km.dead&deadAltGr != 0, false, true)
		}
	}
	return strokes
}

// rightShiftScan is the make code of the right Shift key; both Shift keys
// report VK_SHIFT and neither carries an E0 prefix.
const rightShiftScan ScanCode = 0x36

// Observe records a key transition in the state vector. Generic modifier
// codes also update their left/right variant, as the OS does.
func (s *StaticLayout) Observe(vk VirtualKey, scan ScanCode, extended, down bool) {
	codes := []VirtualKey{vk}
	switch vk {
	case VK_SHIFT:
		if scan == rightShiftScan {
			codes = append(codes, VK_RSHIFT)
		} else {
			codes = append(codes, VK_LSHIFT)
		}
	case VK_CONTROL:
		if extended {
			codes = append(codes, VK_RCONTROL)
		} else {
			codes = append(codes, VK_LCONTROL)
		}
	case VK_MENU:
		if extended {
			codes = append(codes, VK_RMENU)
		} else {
			codes = append(codes, VK_LMENU)
		}
	}
	for _, code := range codes {
		if int(code) >= len(s.state) {
			continue
		}
		if down {
			if s.state[code]&0x80 == 0 {
				s.state[code] ^= 0x01
			}
			s.state[code] |= 0x80
		} else {
			s.state[code] &^= 0x80
		}
	}
}

// KeyState returns a copy of the current state vector.
func (s *StaticLayout) KeyState() [256]byte {
	return s.state
}

// Reset clears all pressed and toggled keys.
func (s *StaticLayout) Reset() {
	s.state = [256]byte{}
}

func (s *StaticLayout) pressed(vk VirtualKey) bool {
	return s.state[vk]&0x80 != 0
}

func (s *StaticLayout) toggled(vk VirtualKey) bool {
	return s.state[vk]&0x01 != 0
}

// ToUnicode implements LayoutContext. Dead keys and keys without a mapping
// report false.
func (s *StaticLayout) ToUnicode(vk VirtualKey, _ ScanCode) (string, bool) {
	km, ok := s.layout.chars[vk]
	if !ok {
		return "", false
	}

	altgr := s.layout.altGr && (s.pressed(VK_RMENU) || (s.pressed(VK_CONTROL) && s.pressed(VK_MENU)))
	if altgr {
		if km.dead&deadAltGr != 0 || km.altgr == "" {
			return "", false
		}
		return km.altgr, true
	}

	shifted := s.pressed(VK_SHIFT)
	if km.caps && s.toggled(VK_CAPITAL) {
		shifted = !shifted
	}
	if shifted {
		if km.dead&deadShift != 0 || km.shift == "" {
			return "", false
		}
		return km.shift, true
	}
	if km.dead&deadPlain != 0 || km.plain == "" {
		return "", false
	}
	return km.plain, true
}

// KeyNameText implements LayoutContext. With the extended bit set the E0
// name is preferred and the plain name used when the key has no E0 variant.
// Character keys are named by their unshifted character in upper case.
func (s *StaticLayout) KeyNameText(scan ScanCode, extended bool) (string, bool) {
	code := scan & 0xFF
	if extended {
		if name, ok := s.layout.names[code|prefixE0]; ok {
			return name, true
		}
	}
	if name, ok := s.layout.names[code]; ok {
		return name, true
	}
	vk, ok := s.layout.scanToVK[code]
	if !ok {
		return "", false
	}
	km, ok := s.layout.chars[vk]
	if !ok || km.plain == "" {
		return "", false
	}
	return strings.ToUpper(km.plain), true
}

var baseScanToVK = map[ScanCode]VirtualKey{
	0x01: VK_ESCAPE,
	0x02: '1',
	0x03: '2',
	0x04: '3',
	0x05: '4',
	0x06: '5',
	0x07: '6',
	0x08: '7',
	0x09: '8',
	0x0A: '9',
	0x0B: '0',
	0x0C: VK_OEM_MINUS,
	0x0D: VK_OEM_PLUS,
	0x0E: VK_BACK,
	0x0F: VK_TAB,
	0x10: 'Q',
	0x11: 'W',
	0x12: 'E',
	0x13: 'R',
	0x14: 'T',
	0x15: 'Y',
	0x16: 'U',
	0x17: 'I',
	0x18: 'O',
	0x19: 'P',
	0x1A: VK_OEM_4,
	0x1B: VK_OEM_6,
	0x1C: VK_RETURN,
	0x1D: VK_CONTROL,
	0x1E: 'A',
	0x1F: 'S',
	0x20: 'D',
	0x21: 'F',
	0x22: 'G',
	0x23: 'H',
	0x24: 'J',
	0x25: 'K',
	0x26: 'L',
	0x27: VK_OEM_1,
	0x28: VK_OEM_7,
	0x29: VK_OEM_3,
	0x2A: VK_SHIFT,
	0x2B: VK_OEM_5,
	0x2C: 'Z',
	0x2D: 'X',
	0x2E: 'C',
	0x2F: 'V',
	0x30: 'B',
	0x31: 'N',
	0x32: 'M',
	0x33: VK_OEM_COMMA,
	0x34: VK_OEM_PERIOD,
	0x35: VK_OEM_2,
	0x36: VK_SHIFT,
	0x37: VK_MULTIPLY,
	0x38: VK_MENU,
	0x39: VK_SPACE,
	0x3A: VK_CAPITAL,
	0x3B: VK_F1,
	0x3C: VK_F1 + 1,
	0x3D: VK_F1 + 2,
	0x3E: VK_F1 + 3,
	0x3F: VK_F1 + 4,
	0x40: VK_F1 + 5,
	0x41: VK_F1 + 6,
	0x42: VK_F1 + 7,
	0x43: VK_F1 + 8,
	0x44: VK_F1 + 9,
	0x45: VK_NUMLOCK,
	0x46: VK_SCROLL,
	0x47: VK_NUMPAD7,
	0x48: VK_NUMPAD8,
	0x49: VK_NUMPAD9,
	0x4A: VK_SUBTRACT,
	0x4B: VK_NUMPAD4,
	0x4C: VK_NUMPAD5,
	0x4D: VK_NUMPAD6,
	0x4E: VK_ADD,
	0x4F: VK_NUMPAD1,
	0x50: VK_NUMPAD2,
	0x51: VK_NUMPAD3,
	0x52: VK_NUMPAD0,
	0x53: VK_DECIMAL,
	0x56: VK_OEM_102,
	0x57: VK_F1 + 10,
	0x58: VK_F12,
	0x64: VK_F13,
	0x65: VK_F13 + 1,
	0x66: VK_F13 + 2,
	0x67: VK_F13 + 3,
	0x68: VK_F13 + 4,
	0x69: VK_F13 + 5,
	0x6A: VK_F13 + 6,
	0x6B: VK_F13 + 7,
	0x6C: VK_F13 + 8,
	0x6D: VK_F13 + 9,
	0x6E: VK_F13 + 10,
	0x76: VK_F24,

	prefixE0 | 0x10: VK_MEDIA_PREV_TRACK,
	prefixE0 | 0x19: VK_MEDIA_NEXT_TRACK,
	prefixE0 | 0x1C: VK_RETURN,
	prefixE0 | 0x1D: VK_CONTROL,
	prefixE0 | 0x20: VK_VOLUME_MUTE,
	prefixE0 | 0x22: VK_MEDIA_PLAY_PAUSE,
	prefixE0 | 0x24: VK_MEDIA_STOP,
	prefixE0 | 0x2E: VK_VOLUME_DOWN,
	prefixE0 | 0x30: VK_VOLUME_UP,
	prefixE0 | 0x32: VK_BROWSER_HOME,
	prefixE0 | 0x35: VK_DIVIDE,
	prefixE0 | 0x37: VK_SNAPSHOT,
	prefixE0 | 0x38: VK_MENU,
	prefixE0 | 0x47: VK_HOME,
	prefixE0 | 0x48: VK_UP,
	prefixE0 | 0x49: VK_PRIOR,
	prefixE0 | 0x4B: VK_LEFT,
	prefixE0 | 0x4D: VK_RIGHT,
	prefixE0 | 0x4F: VK_END,
	prefixE0 | 0x50: VK_DOWN,
	prefixE0 | 0x51: VK_NEXT,
	prefixE0 | 0x52: VK_INSERT,
	prefixE0 | 0x53: VK_DELETE,
	prefixE0 | 0x5B: VK_LWIN,
	prefixE0 | 0x5C: VK_RWIN,
	prefixE0 | 0x5D: VK_APPS,
	prefixE0 | 0x65: VK_BROWSER_SEARCH,
	prefixE0 | 0x66: VK_BROWSER_FAVORITES,
	prefixE0 | 0x67: VK_BROWSER_REFRESH,
	prefixE0 | 0x68: VK_BROWSER_STOP,
	prefixE0 | 0x69: VK_BROWSER_FORWARD,
	prefixE0 | 0x6A: VK_BROWSER_BACK,
	prefixE0 | 0x6C: VK_LAUNCH_MAIL,
	prefixE0 | 0x6D: VK_LAUNCH_MEDIA,
	prefixE1 | 0x1D: VK_PAUSE,
}

var baseNames = map[ScanCode]string{
	0x01: "Esc",
	0x0E: "Backspace",
	0x0F: "Tab",
	0x1C: "Enter",
	0x1D: "Ctrl",
	0x2A: "Shift",
	0x36: "Right Shift",
	0x37: "Num *",
	0x38: "Alt",
	0x39: "Space",
	0x3A: "Caps Lock",
	0x3B: "F1",
	0x3C: "F2",
	0x3D: "F3",
	0x3E: "F4",
	0x3F: "F5",
	0x40: "F6",
	0x41: "F7",
	0x42: "F8",
	0x43: "F9",
	0x44: "F10",
	0x45: "Pause",
	0x46: "Scroll Lock",
	0x47: "Num 7",
	0x48: "Num 8",
	0x49: "Num 9",
	0x4A: "Num -",
	0x4B: "Num 4",
	0x4C: "Num 5",
	0x4D: "Num 6",
	0x4E: "Num +",
	0x4F: "Num 1",
	0x50: "Num 2",
	0x51: "Num 3",
	0x52: "Num 0",
	0x53: "Num Del",
	0x54: "Sys Req",
	0x57: "F11",
	0x58: "F12",
	0x64: "F13",
	0x65: "F14",
	0x66: "F15",
	0x67: "F16",
	0x68: "F17",
	0x69: "F18",
	0x6A: "F19",
	0x6B: "F20",
	0x6C: "F21",
	0x6D: "F22",
	0x6E: "F23",
	0x76: "F24",

	prefixE0 | 0x1C: "Num Enter",
	prefixE0 | 0x1D: "Right Ctrl",
	prefixE0 | 0x35: "Num /",
	prefixE0 | 0x37: "Prnt Scrn",
	prefixE0 | 0x38: "Right Alt",
	prefixE0 | 0x45: "Num Lock",
	prefixE0 | 0x46: "Break",
	prefixE0 | 0x47: "Home",
	prefixE0 | 0x48: "Up",
	prefixE0 | 0x49: "Page Up",
	prefixE0 | 0x4B: "Left",
	prefixE0 | 0x4D: "Right",
	prefixE0 | 0x4F: "End",
	prefixE0 | 0x50: "Down",
	prefixE0 | 0x51: "Page Down",
	prefixE0 | 0x52: "Insert",
	prefixE0 | 0x53: "Delete",
	prefixE0 | 0x5B: "Left Windows",
	prefixE0 | 0x5C: "Right Windows",
	prefixE0 | 0x5D: "Application",
}

// commonChars holds the keys that translate identically on every built-in
// layout.
func commonChars() map[VirtualKey]keymap {
	m := map[VirtualKey]keymap{
		VK_BACK:     {plain: "\b", shift: "\b"},
		VK_TAB:      {plain: "\t", shift: "\t"},
		VK_RETURN:   {plain: "\r", shift: "\r"},
		VK_ESCAPE:   {plain: "\x1b", shift: "\x1b"},
		VK_SPACE:    {plain: " ", shift: " "},
		VK_MULTIPLY: {plain: "*", shift: "*"},
		VK_ADD:      {plain: "+", shift: "+"},
		VK_SUBTRACT: {plain: "-", shift: "-"},
		VK_DIVIDE:   {plain: "/", shift: "/"},
	}
	for i := 0; i <= 9; i++ {
		d := string(rune('0' + i))
		m[VK_NUMPAD0+VirtualKey(i)] = keymap{plain: d, shift: d}
	}
	for c := 'A'; c <= 'Z'; c++ {
		m[VirtualKey(c)] = keymap{plain: strings.ToLower(string(c)), shift: string(c), caps: true}
	}
	return m
}

func usChars() map[VirtualKey]keymap {
	m := commonChars()
	m[VK_DECIMAL] = keymap{plain: ".", shift: "."}
	row := []struct {
		vk           VirtualKey
		plain, shift string
	}{
		{'1', "1", "!"}, {'2', "2", "@"}, {'3', "3", "#"}, {'4', "4", "$"}, {'5', "5", "%"},
		{'6', "6", "^"}, {'7', "7", "&"}, {'8', "8", "*"}, {'9', "9", "("}, {'0', "0", ")"},
		{VK_OEM_MINUS, "-", "_"},
		{VK_OEM_PLUS, "=", "+"},
		{VK_OEM_4, "[", "{"},
		{VK_OEM_6, "]", "}"},
		{VK_OEM_1, ";", ":"},
		{VK_OEM_7, "'", "\""},
		{VK_OEM_3, "`", "~"},
		{VK_OEM_5, "\\", "|"},
		{VK_OEM_COMMA, ",", "<"},
		{VK_OEM_PERIOD, ".", ">"},
		{VK_OEM_2, "/", "?"},
		{VK_OEM_102, "\\", "|"},
	}
	for _, k := range row {
		m[k.vk] = keymap{plain: k.plain, shift: k.shift}
	}
	return m
}

var frScanOverrides = map[ScanCode]VirtualKey{
	0x10: 'A',
	0x11: 'Z',
	0x1E: 'Q',
	0x2C: 'W',
	0x27: 'M',
	0x0C: VK_OEM_4,
	0x0D: VK_OEM_PLUS,
	0x1A: VK_OEM_6,
	0x1B: VK_OEM_1,
	0x28: VK_OEM_3,
	0x29: VK_OEM_7,
	0x2B: VK_OEM_5,
	0x32: VK_OEM_COMMA,
	0x33: VK_OEM_PERIOD,
	0x34: VK_OEM_2,
	0x35: VK_OEM_8,
}

var frNames = map[ScanCode]string{
	0x01: "ECHAP",
	0x0E: "RET.ARR",
	0x1C: "ENTREE",
	0x2A: "MAJ",
	0x36: "MAJ DROITE",
	0x39: "ESPACE",
	0x3A: "VERR.MAJ",
	0x1A: "ACCENT CIRCONFLEXE",

	prefixE0 | 0x47: "ORIGINE",
	prefixE0 | 0x5B: "WINDOWS GAUCHE",
	prefixE0 | 0x5C: "WINDOWS DROITE",
	prefixE0 | 0x5D: "APPLICATION",
}

func frChars() map[VirtualKey]keymap {
	m := commonChars()
	m[VK_DECIMAL] = keymap{plain: ".", shift: "."}
	m['E'] = keymap{plain: "e", shift: "E", altgr: "€", caps: true}
	m['1'] = keymap{plain: "&", shift: "1"}
	m['2'] = keymap{plain: "é", shift: "2", altgr: "~", dead: deadAltGr}
	m['3'] = keymap{plain: "\"", shift: "3", altgr: "#"}
	m['4'] = keymap{plain: "'", shift: "4", altgr: "{"}
	m['5'] = keymap{plain: "(", shift: "5", altgr: "["}
	m['6'] = keymap{plain: "-", shift: "6", altgr: "|"}
	m['7'] = keymap{plain: "è", shift: "7", altgr: "`", dead: deadAltGr}
	m['8'] = keymap{plain: "_", shift: "8", altgr: "\\"}
	m['9'] = keymap{plain: "ç", shift: "9", altgr: "^"}
	m['0'] = keymap{plain: "à", shift: "0", altgr: "@"}
	m[VK_OEM_4] = keymap{plain: ")", shift: "°", altgr: "]"}
	m[VK_OEM_PLUS] = keymap{plain: "=", shift: "+", altgr: "}"}
	m[VK_OEM_6] = keymap{plain: "^", shift: "¨", dead: deadPlain | deadShift}
	m[VK_OEM_1] = keymap{plain: "$", shift: "£", altgr: "¤"}
	m[VK_OEM_3] = keymap{plain: "ù", shift: "%"}
	m[VK_OEM_5] = keymap{plain: "*", shift: "µ"}
	m[VK_OEM_7] = keymap{plain: "²"}
	m[VK_OEM_COMMA] = keymap{plain: ",", shift: "?"}
	m[VK_OEM_PERIOD] = keymap{plain: ";", shift: "."}
	m[VK_OEM_2] = keymap{plain: ":", shift: "/"}
	m[VK_OEM_8] = keymap{plain: "!", shift: "§"}
	m[VK_OEM_102] = keymap{plain: "<", shift: ">"}
	return m
}

var deScanOverrides = map[ScanCode]VirtualKey{
	0x15: 'Z',
	0x2C: 'Y',
	0x0C: VK_OEM_4,
	0x0D: VK_OEM_6,
	0x1A: VK_OEM_1,
	0x1B: VK_OEM_PLUS,
	0x27: VK_OEM_3,
	0x28: VK_OEM_7,
	0x29: VK_OEM_5,
	0x2B: VK_OEM_2,
	0x35: VK_OEM_MINUS,
}

var deNames = map[ScanCode]string{
	0x01: "ESC",
	0x0E: "RÜCK",
	0x1C: "EINGABE",
	0x1D: "STRG",
	0x2A: "UMSCHALT",
	0x36: "UMSCHALT RECHTS",
	0x39: "LEER",
	0x3A: "FESTSTELL",
	0x0D: "AKUT",
	0x29: "ZIRKUMFLEX",

	prefixE0 | 0x1D: "STRG-RECHTS",
	prefixE0 | 0x38: "ALT GR",
	prefixE0 | 0x47: "POS1",
	prefixE0 | 0x5B: "LINKE WINDOWS",
	prefixE0 | 0x5C: "RECHTE WINDOWS",
	prefixE0 | 0x5D: "ANWENDUNG",
}

func deChars() map[VirtualKey]keymap {
	m := commonChars()
	m[VK_DECIMAL] = keymap{plain: ",", shift: ","}
	m['Q'] = keymap{plain: "q", shift: "Q", altgr: "@", caps: true}
	m['E'] = keymap{plain: "e", shift: "E", altgr: "€", caps: true}
	m['M'] = keymap{plain: "m", shift: "M", altgr: "µ", caps: true}
	m['1'] = keymap{plain: "1", shift: "!"}
	m['2'] = keymap{plain: "2", shift: "\"", altgr: "²"}
	m['3'] = keymap{plain: "3", shift: "§", altgr: "³"}
	m['4'] = keymap{plain: "4", shift: "$"}
	m['5'] = keymap{plain: "5", shift: "%"}
	m['6'] = keymap{plain: "6", shift: "&"}
	m['7'] = keymap{plain: "7", shift: "/", altgr: "{"}
	m['8'] = keymap{plain: "8", shift: "(", altgr: "["}
	m['9'] = keymap{plain: "9", shift: ")", altgr: "]"}
	m['0'] = keymap{plain: "0", shift: "=", altgr: "}"}
	m[VK_OEM_4] = keymap{plain: "ß", shift: "?", altgr: "\\"}
	m[VK_OEM_6] = keymap{plain: "´", shift: "`", dead: deadPlain | deadShift}
	m[VK_OEM_1] = keymap{plain: "ü", shift: "Ü", caps: true}
	m[VK_OEM_PLUS] = keymap{plain: "+", shift: "*", altgr: "~"}
	m[VK_OEM_3] = keymap{plain: "ö", shift: "Ö", caps: true}
	m[VK_OEM_7] = keymap{plain: "ä", shift: "Ä", caps: true}
	m[VK_OEM_5] = keymap{plain: "^", shift: "°", dead: deadPlain}
	m[VK_OEM_2] = keymap{plain: "#", shift: "'"}
	m[VK_OEM_COMMA] = keymap{plain: ",", shift: ";"}
	m[VK_OEM_PERIOD] = keymap{plain: ".", shift: ":"}
	m[VK_OEM_MINUS] = keymap{plain: "-", shift: "_"}
	m[VK_OEM_102] = keymap{plain: "<", shift: ">", altgr: "|"}
	return m
}
