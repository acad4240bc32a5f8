//go:build windows

package keys

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                = windows.NewLazySystemDLL("user32.dll")
	procToUnicodeEx       = user32.NewProc("ToUnicodeEx")
	procGetKeyboardState  = user32.NewProc("GetKeyboardState")
	procGetKeyboardLayout = user32.NewProc("GetKeyboardLayout")
	procGetKeyNameTextW   = user32.NewProc("GetKeyNameTextW")
)

// systemLayout queries the calling thread's keyboard layout and key state.
type systemLayout struct{}

// SystemLayout returns the LayoutContext backed by user32. It must be used on
// the thread that receives the input messages, since both the key state
// vector and the active layout are per-thread.
func SystemLayout() LayoutContext {
	return systemLayout{}
}

func (systemLayout) ToUnicode(vk VirtualKey, scan ScanCode) (string, bool) {
	var state [256]byte
	ok, _, _ := procGetKeyboardState.Call(uintptr(unsafe.Pointer(&state[0])))
	if ok == 0 {
		return "", false
	}
	hkl, _, _ := procGetKeyboardLayout.Call(0)

	var buf [8]uint16
	n, _, _ := procToUnicodeEx.Call(
		uintptr(vk),
		uintptr(scan),
		uintptr(unsafe.Pointer(&state[0])),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
		0,
		hkl,
	)
	// The return value is a C int: negative for dead keys, zero for no
	// translation.
	count := int32(n)
	if count <= 0 {
		return "", false
	}
	if int(count) > len(buf) {
		count = int32(len(buf))
	}
	return windows.UTF16ToString(buf[:count]), true
}

func (systemLayout) KeyNameText(scan ScanCode, extended bool) (string, bool) {
	lparam := uintptr(scan&0xFF) << 16
	if extended {
		lparam |= 1 << 24
	}
	var buf [128]uint16
	n, _, _ := procGetKeyNameTextW.Call(lparam, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return "", false
	}
	return windows.UTF16ToString(buf[:n]), true
}

// ActiveLayoutHandle returns the HKL of the calling thread, for diagnostics.
func ActiveLayoutHandle() uintptr {
	hkl, _, _ := procGetKeyboardLayout.Call(0)
	return hkl
}
