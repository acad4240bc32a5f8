package keys

// catalog holds the canonical names of keys whose identity does not depend
// on the active keyboard layout. An empty slot means "not catalogued".
var catalog = [256]string{
	VK_BACK:     "Backspace",
	VK_TAB:      "Tab",
	VK_RETURN:   "Enter",
	VK_SHIFT:    "Shift",
	VK_CONTROL:  "Ctrl",
	VK_MENU:     "Alt",
	VK_PAUSE:    "Pause",
	VK_CAPITAL:  "Caps Lock",
	VK_ESCAPE:   "Esc",
	VK_SPACE:    "Space",
	VK_PRIOR:    "Page Up",
	VK_NEXT:     "Page Down",
	VK_END:      "End",
	VK_HOME:     "Home",
	VK_LEFT:     "Left Arrow",
	VK_UP:       "Up Arrow",
	VK_RIGHT:    "Right Arrow",
	VK_DOWN:     "Down Arrow",
	VK_SNAPSHOT: "Print Screen",
	VK_INSERT:   "Insert",
	VK_DELETE:   "Delete",

	'0': "0",
	'1': "1",
	'2': "2",
	'3': "3",
	'4': "4",
	'5': "5",
	'6': "6",
	'7': "7",
	'8': "8",
	'9': "9",

	'A': "A",
	'B': "B",
	'C': "C",
	'D': "D",
	'E': "E",
	'F': "F",
	'G': "G",
	'H': "H",
	'I': "I",
	'J': "J",
	'K': "K",
	'L': "L",
	'M': "M",
	'N': "N",
	'O': "O",
	'P': "P",
	'Q': "Q",
	'R': "R",
	'S': "S",
	'T': "T",
	'U': "U",
	'V': "V",
	'W': "W",
	'X': "X",
	'Y': "Y",
	'Z': "Z",

	VK_NUMPAD0:   "Num 0",
	VK_NUMPAD1:   "Num 1",
	VK_NUMPAD2:   "Num 2",
	VK_NUMPAD3:   "Num 3",
	VK_NUMPAD4:   "Num 4",
	VK_NUMPAD5:   "Num 5",
	VK_NUMPAD6:   "Num 6",
	VK_NUMPAD7:   "Num 7",
	VK_NUMPAD8:   "Num 8",
	VK_NUMPAD9:   "Num 9",
	VK_MULTIPLY:  "Num *",
	VK_ADD:       "Num +",
	VK_SEPARATOR: "Separator",
	VK_SUBTRACT:  "Num -",
	VK_DECIMAL:   "Num .",
	VK_DIVIDE:    "Num /",

	VK_F1:       "F1",
	VK_F1 + 1:   "F2",
	VK_F1 + 2:   "F3",
	VK_F1 + 3:   "F4",
	VK_F1 + 4:   "F5",
	VK_F1 + 5:   "F6",
	VK_F1 + 6:   "F7",
	VK_F1 + 7:   "F8",
	VK_F1 + 8:   "F9",
	VK_F1 + 9:   "F10",
	VK_F1 + 10:  "F11",
	VK_F12:      "F12",
	VK_F13:      "F13",
	VK_F13 + 1:  "F14",
	VK_F13 + 2:  "F15",
	VK_F13 + 3:  "F16",
	VK_F13 + 4:  "F17",
	VK_F13 + 5:  "F18",
	VK_F13 + 6:  "F19",
	VK_F13 + 7:  "F20",
	VK_F13 + 8:  "F21",
	VK_F13 + 9:  "F22",
	VK_F13 + 10: "F23",
	VK_F24:      "F24",

	VK_NUMLOCK:  "Num Lock",
	VK_SCROLL:   "Scroll Lock",
	VK_LSHIFT:   "Left Shift",
	VK_RSHIFT:   "Right Shift",
	VK_LCONTROL: "Left Ctrl",
	VK_RCONTROL: "Right Ctrl",
	VK_LMENU:    "Left Alt",
	VK_RMENU:    "Right Alt",

	VK_BROWSER_BACK:      "Browser Back",
	VK_BROWSER_FORWARD:   "Browser Forward",
	VK_BROWSER_REFRESH:   "Browser Refresh",
	VK_BROWSER_STOP:      "Browser Stop",
	VK_BROWSER_SEARCH:    "Browser Search",
	VK_BROWSER_FAVORITES: "Browser Favorites",
	VK_BROWSER_HOME:      "Browser Home",
	VK_VOLUME_MUTE:       "Volume Mute",
	VK_VOLUME_DOWN:       "Volume Down",
	VK_VOLUME_UP:         "Volume Up",
	VK_MEDIA_NEXT_TRACK:  "Next Track",
	VK_MEDIA_PREV_TRACK:  "Previous Track",
	VK_MEDIA_STOP:        "Stop Media",
	VK_MEDIA_PLAY_PAUSE:  "Play/Pause",
	VK_LAUNCH_MAIL:       "Launch Mail",
	VK_LAUNCH_MEDIA:      "Launch Media Player",
	VK_LAUNCH_APP1:       "Launch App 1",
	VK_LAUNCH_APP2:       "Launch App 2",

	// US layout punctuation
	VK_OEM_1:      ";",
	VK_OEM_PLUS:   "=",
	VK_OEM_COMMA:  ",",
	VK_OEM_MINUS:  "-",
	VK_OEM_PERIOD: ".",
	VK_OEM_2:      "/",
	VK_OEM_3:      "`",
	VK_OEM_4:      "[",
	VK_OEM_5:      "\\",
	VK_OEM_6:      "]",
	VK_OEM_7:      "'",
}

// CatalogEntry is one row of the key catalog.
type CatalogEntry struct {
	Code VirtualKey `json:"vk"`
	Name string     `json:"name"`
}

// Lookup returns the canonical name for codes in the catalog. Codes outside
// it are printable or layout dependent and are left to the resolver's later
// stages.
func Lookup(vk VirtualKey) (string, bool) {
	if int(vk) >= len(catalog) {
		return "", false
	}
	name := catalog[vk]
	return name, name != ""
}

// Catalog enumerates every catalogued key in ascending code order.
func Catalog() []CatalogEntry {
	entries := make([]CatalogEntry, 0, 160)
	for code, name := range catalog {
		if name == "" {
			continue
		}
		entries = append(entries, CatalogEntry{Code: VirtualKey(code), Name: name})
	}
	return entries
}
