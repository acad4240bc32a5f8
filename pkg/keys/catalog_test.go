package keys

import "testing"

func TestLookupKnownKeys(t *testing.T) {
	cases := map[VirtualKey]string{
		VK_BACK:         "Backspace",
		VK_RETURN:       "Enter",
		VK_F1:           "F1",
		VK_F24:          "F24",
		'1':             "1",
		'A':             "A",
		VK_NUMPAD7:      "Num 7",
		VK_RMENU:        "Right Alt",
		VK_VOLUME_MUTE:  "Volume Mute",
		VK_OEM_5:        "\\",
		VK_OEM_PERIOD:   ".",
		VK_LAUNCH_MEDIA: "Launch Media Player",
	}
	for vk, want := range cases {
		got, ok := Lookup(vk)
		if !ok {
			t.Fatalf("expected %s to be catalogued", vk)
		}
		if got != want {
			t.Fatalf("lookup %s: expected %q, got %q", vk, want, got)
		}
	}
}

func TestLookupMisses(t *testing.T) {
	for _, vk := range []VirtualKey{0x00, VK_CLEAR, VK_LWIN, VK_APPS, VK_OEM_102, 0xF0, 0xFF, 0x1FF} {
		if name, ok := Lookup(vk); ok {
			t.Fatalf("expected %s to be absent, got %q", vk, name)
		}
	}
}

func TestCatalogOrderedAndComplete(t *testing.T) {
	entries := Catalog()
	if len(entries) == 0 {
		t.Fatalf("expected catalog entries")
	}
	for i, entry := range entries {
		if entry.Name == "" {
			t.Fatalf("entry %d has empty name", i)
		}
		if i > 0 && entries[i-1].Code >= entry.Code {
			t.Fatalf("entries out of order at %d: %s before %s", i, entries[i-1].Code, entry.Code)
		}
		if name, ok := Lookup(entry.Code); !ok || name != entry.Name {
			t.Fatalf("catalog entry %s disagrees with lookup", entry.Code)
		}
	}
}

func TestVirtualKeyString(t *testing.T) {
	if got := VirtualKey(0x0A).String(); got != "VK_0A" {
		t.Fatalf("expected VK_0A, got %s", got)
	}
	if got := ScanCode(0x1E).String(); got != "0x1E" {
		t.Fatalf("expected 0x1E, got %s", got)
	}
}
