package keys

import (
	"errors"
	"testing"
)

func mustLayout(t *testing.T, id LayoutID) *StaticLayout {
	t.Helper()
	l, err := NewStaticLayout(id)
	if err != nil {
		t.Fatalf("new layout %s: %v", id, err)
	}
	return l
}

func TestNewStaticLayoutUnknown(t *testing.T) {
	if _, err := NewStaticLayout("xx-XX"); !errors.Is(err, ErrUnknownLayout) {
		t.Fatalf("expected ErrUnknownLayout, got %v", err)
	}
}

func TestLayoutsSorted(t *testing.T) {
	got := Layouts()
	want := []LayoutID{LayoutDeDE, LayoutEnUS, LayoutFrFR}
	if len(got) != len(want) {
		t.Fatalf("expected %d layouts, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestLayoutSensitivity(t *testing.T) {
	want := map[LayoutID]string{
		LayoutEnUS: "\\",
		LayoutFrFR: "<",
		LayoutDeDE: "<",
	}
	for id, name := range want {
		l := mustLayout(t, id)
		vk, ok := l.MapScanCode(0x56, false, false)
		if !ok || vk != VK_OEM_102 {
			t.Fatalf("%s: expected scan 0x56 to map to VK_OEM_102, got %s", id, vk)
		}
		res := NewResolver(l).Explain(vk, 0x56)
		if res.Name != name || res.Stage != StageTranslate {
			t.Fatalf("%s: expected %q via translate, got %+v", id, name, res)
		}
	}
}

func TestMapScanCodePerLayout(t *testing.T) {
	cases := []struct {
		id   LayoutID
		scan ScanCode
		e0   bool
		want VirtualKey
	}{
		{LayoutEnUS, 0x10, false, 'Q'},
		{LayoutFrFR, 0x10, false, 'A'},
		{LayoutDeDE, 0x15, false, 'Z'},
		{LayoutEnUS, 0x15, false, 'Y'},
		{LayoutEnUS, 0x1C, true, VK_RETURN},
		{LayoutEnUS, 0x48, true, VK_UP},
		{LayoutEnUS, 0x48, false, VK_NUMPAD8},
		{LayoutEnUS, 0x5B, true, VK_LWIN},
	}
	for _, tc := range cases {
		got, ok := mustLayout(t, tc.id).MapScanCode(tc.scan, tc.e0, false)
		if !ok || got != tc.want {
			t.Fatalf("%s scan %s e0=%v: expected %s, got %s (ok=%v)", tc.id, tc.scan, tc.e0, tc.want, got, ok)
		}
	}
	if vk, ok := mustLayout(t, LayoutEnUS).MapScanCode(0x1D, false, true); !ok || vk != VK_PAUSE {
		t.Fatalf("expected E1 1D to map to pause, got %s", vk)
	}
	if _, ok := mustLayout(t, LayoutEnUS).MapScanCode(0x7F, false, false); ok {
		t.Fatalf("expected unmapped scan code")
	}
}

func TestModifierState(t *testing.T) {
	l := mustLayout(t, LayoutDeDE)

	if got, _ := l.ToUnicode(VK_OEM_3, 0x27); got != "ö" {
		t.Fatalf("expected ö, got %q", got)
	}

	l.Observe(VK_SHIFT, 0x2A, false, true)
	if got, _ := l.ToUnicode(VK_OEM_3, 0x27); got != "Ö" {
		t.Fatalf("expected Ö with shift, got %q", got)
	}
	l.Observe(VK_SHIFT, 0x2A, false, false)

	l.Observe(VK_MENU, 0x38, true, true)
	if got, _ := l.ToUnicode('Q', 0x10); got != "@" {
		t.Fatalf("expected @ with AltGr, got %q", got)
	}
	if _, ok := l.ToUnicode('Z', 0x15); ok {
		t.Fatalf("expected no AltGr translation for Z")
	}
	l.Observe(VK_MENU, 0x38, true, false)

	l.Observe(VK_CAPITAL, 0x3A, false, true)
	l.Observe(VK_CAPITAL, 0x3A, false, true)
	l.Observe(VK_CAPITAL, 0x3A, false, false)
	if got, _ := l.ToUnicode('Q', 0x10); got != "Q" {
		t.Fatalf("expected caps lock to toggle once, got %q", got)
	}
	if got, _ := l.ToUnicode('1', 0x02); got != "1" {
		t.Fatalf("caps lock should not shift digits, got %q", got)
	}
	l.Observe(VK_CAPITAL, 0x3A, false, true)
	if got, _ := l.ToUnicode('Q', 0x10); got != "q" {
		t.Fatalf("expected caps lock off, got %q", got)
	}

	l.Reset()
	if state := l.KeyState(); state[VK_CAPITAL] != 0 {
		t.Fatalf("expected reset state")
	}
}

func TestRightAltIsNotAltGrOnUS(t *testing.T) {
	l := mustLayout(t, LayoutEnUS)
	l.Observe(VK_MENU, 0x38, true, true)
	if got, _ := l.ToUnicode('Q', 0x10); got != "q" {
		t.Fatalf("expected plain q, got %q", got)
	}
	state := l.KeyState()
	if state[VK_RMENU]&0x80 == 0 || state[VK_LMENU]&0x80 != 0 {
		t.Fatalf("expected right alt pressed only")
	}
}

func TestDeadKeysFallThrough(t *testing.T) {
	fr := mustLayout(t, LayoutFrFR)
	vk, _ := fr.MapScanCode(0x1A, false, false)
	if _, ok := fr.ToUnicode(vk, 0x1A); ok {
		t.Fatalf("expected dead key to produce no translation")
	}
	res := NewResolver(fr).Explain(vk, 0x1A)
	if res.Stage != StageCatalog {
		// VK_OEM_6 is catalogued as "]", so the catalog wins before the
		// layout is ever consulted.
		t.Fatalf("expected catalog stage, got %+v", res)
	}

	de := mustLayout(t, LayoutDeDE)
	if _, ok := de.ToUnicode(VK_OEM_5, 0x29); ok {
		t.Fatalf("expected dead circumflex")
	}
	if name, ok := de.KeyNameText(0x29, true); !ok || name != "ZIRKUMFLEX" {
		t.Fatalf("expected ZIRKUMFLEX, got %q", name)
	}
}

func TestKeyNameText(t *testing.T) {
	us := mustLayout(t, LayoutEnUS)
	cases := []struct {
		scan     ScanCode
		extended bool
		want     string
	}{
		{0x5B, true, "Left Windows"},
		{0x1C, true, "Num Enter"},
		{0x1C, false, "Enter"},
		{0x4C, true, "Num 5"},
		{0x1E, true, "A"},
		{0x27, false, ";"},
	}
	for _, tc := range cases {
		if got, ok := us.KeyNameText(tc.scan, tc.extended); !ok || got != tc.want {
			t.Fatalf("scan %s ext=%v: expected %q, got %q", tc.scan, tc.extended, tc.want, got)
		}
	}
	if _, ok := us.KeyNameText(0x7F, true); ok {
		t.Fatalf("expected no name for unmapped scan")
	}

	de := mustLayout(t, LayoutDeDE)
	if got := NewResolver(de).Resolve(VK_LWIN, 0x5B); got != "LINKE WINDOWS" {
		t.Fatalf("expected localized name, got %q", got)
	}
	if got := NewResolver(us).Resolve(VK_CLEAR, 0x4C); got != "Num 5" {
		t.Fatalf("expected Num 5 for clear, got %q", got)
	}
}

func TestKeystroke(t *testing.T) {
	cases := []struct {
		id   LayoutID
		char rune
		want Keystroke
	}{
		{LayoutEnUS, 'a', Keystroke{Char: 'a', VK: 'A', Scan: 0x1E}},
		{LayoutEnUS, 'A', Keystroke{Char: 'A', VK: 'A', Scan: 0x1E, Shift: true}},
		{LayoutEnUS, '-', Keystroke{Char: '-', VK: VK_OEM_MINUS, Scan: 0x0C}},
		{LayoutEnUS, '!', Keystroke{Char: '!', VK: '1', Scan: 0x02, Shift: true}},
		{LayoutFrFR, 'a', Keystroke{Char: 'a', VK: 'A', Scan: 0x10}},
		{LayoutFrFR, '1', Keystroke{Char: '1', VK: '1', Scan: 0x02, Shift: true}},
		{LayoutDeDE, '@', Keystroke{Char: '@', VK: 'Q', Scan: 0x10, AltGr: true}},
		{LayoutDeDE, 'z', Keystroke{Char: 'z', VK: 'Z', Scan: 0x15}},
	}
	for _, tc := range cases {
		got, ok := mustLayout(t, tc.id).Keystroke(tc.char)
		if !ok || got != tc.want {
			t.Fatalf("%s %q: expected %+v, got %+v (ok=%v)", tc.id, tc.char, tc.want, got, ok)
		}
	}
	if _, ok := mustLayout(t, LayoutDeDE).Keystroke('^'); ok {
		t.Fatalf("dead circumflex should not be typable")
	}
}

func TestScanCodeFor(t *testing.T) {
	us := mustLayout(t, LayoutEnUS)
	scan, e0, e1, ok := us.ScanCodeFor(VK_SHIFT)
	if !ok || scan != 0x2A || e0 || e1 {
		t.Fatalf("expected left shift make code, got %s e0=%v", scan, e0)
	}
	scan, e0, _, ok = us.ScanCodeFor(VK_LWIN)
	if !ok || scan != 0x5B || !e0 {
		t.Fatalf("expected E0 5B for left windows, got %s e0=%v", scan, e0)
	}
	scan, _, e1, ok = us.ScanCodeFor(VK_PAUSE)
	if !ok || scan != 0x1D || !e1 {
		t.Fatalf("expected E1 1D for pause, got %s e1=%v", scan, e1)
	}
	if _, _, _, ok := us.ScanCodeFor(0xFF); ok {
		t.Fatalf("expected no scan code for 0xFF")
	}
}

func TestShiftSideFollowsScanCode(t *testing.T) {
	l := mustLayout(t, LayoutEnUS)

	l.Observe(VK_SHIFT, 0x36, false, true)
	state := l.KeyState()
	if state[VK_RSHIFT]&0x80 == 0 || state[VK_LSHIFT]&0x80 != 0 {
		t.Fatalf("expected right shift pressed only, got L=%#x R=%#x", state[VK_LSHIFT], state[VK_RSHIFT])
	}
	if got, _ := l.ToUnicode('A', 0x1E); got != "A" {
		t.Fatalf("expected right shift to shift letters, got %q", got)
	}
	l.Observe(VK_SHIFT, 0x36, false, false)

	l.Observe(VK_SHIFT, 0x2A, false, true)
	state = l.KeyState()
	if state[VK_LSHIFT]&0x80 == 0 || state[VK_RSHIFT]&0x80 != 0 {
		t.Fatalf("expected left shift pressed only, got L=%#x R=%#x", state[VK_LSHIFT], state[VK_RSHIFT])
	}
}
