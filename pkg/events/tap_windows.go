//go:build windows

package events

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/offlinefirst/keytap/pkg/keys"
)

var (
	user32                      = windows.NewLazySystemDLL("user32.dll")
	procRegisterRawInputDevices = user32.NewProc("RegisterRawInputDevices")
	procGetRawInputData         = user32.NewProc("GetRawInputData")
	procGetRawInputDeviceInfoW  = user32.NewProc("GetRawInputDeviceInfoW")
	procGetRawInputDeviceList   = user32.NewProc("GetRawInputDeviceList")
	procRegisterClassExW        = user32.NewProc("RegisterClassExW")
	procUnregisterClassW        = user32.NewProc("UnregisterClassW")
	procCreateWindowExW         = user32.NewProc("CreateWindowExW")
	procDestroyWindow           = user32.NewProc("DestroyWindow")
	procDefWindowProcW          = user32.NewProc("DefWindowProcW")
	procGetMessageW             = user32.NewProc("GetMessageW")
	procDispatchMessageW        = user32.NewProc("DispatchMessageW")
	procPostThreadMessageW      = user32.NewProc("PostThreadMessageW")

	hid                      = windows.NewLazySystemDLL("hid.dll")
	procHidDGetProductString = hid.NewProc("HidD_GetProductString")
)

const (
	wmQuit                  = 0x0012
	hwndMessage             = ^uintptr(2) // HWND_MESSAGE (-3)
	errorClassAlreadyExists = 1410
)

type wndClassEx struct {
	Size       uint32
	Style      uint32
	WndProc    uintptr
	ClsExtra   int32
	WndExtra   int32
	Instance   windows.Handle
	Icon       windows.Handle
	Cursor     windows.Handle
	Background windows.Handle
	MenuName   *uint16
	ClassName  *uint16
	IconSm     windows.Handle
}

type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
	Private uint32
}

type rawInputDevice struct {
	UsagePage uint16
	Usage     uint16
	Flags     uint32
	Target    uintptr
}

type rawInputDeviceList struct {
	Device uintptr
	Type   uint32
}

var ptrSize = int(unsafe.Sizeof(uintptr(0)))

type rawInputSource struct {
	flags   uint32
	clock   func() time.Time
	devices map[uintptr]*DeviceInfo
	buf     []byte
}

func openRawInput(opts SourceOptions) (Backend, error) {
	return Backend{
		Name: SourceRawInput,
		Source: &rawInputSource{
			flags:   registrationFlags(opts.InputSink, opts.NoLegacy),
			clock:   opts.Clock,
			devices: make(map[uintptr]*DeviceInfo),
		},
		Layout:     keys.SystemLayout(),
		LayoutName: "system:" + strconv.FormatUint(uint64(keys.ActiveLayoutHandle()), 16),
	}, nil
}

// Stream owns a hidden message-only window on a locked OS thread and pumps
// WM_INPUT until the context ends. emit runs on that thread, so the layout
// context sees the thread's own key state.
func (s *rawInputSource) Stream(ctx context.Context, emit func(RawKey) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hwnd, destroy, err := createMessageWindow()
	if err != nil {
		return err
	}
	defer destroy()

	if err := registerKeyboard(hwnd, s.flags); err != nil {
		return err
	}
	defer registerKeyboard(0, ridevRemove)

	threadID := windows.GetCurrentThreadId()
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			procPostThreadMessageW.Call(uintptr(threadID), wmQuit, 0, 0)
		case <-done:
		}
	}()

	var m msg
	for {
		r, _, callErr := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(r) {
		case -1:
			return fmt.Errorf("get message: %w", callErr)
		case 0:
			return ctx.Err()
		}
		if m.Message == wmInput {
			if raw, ok := s.read(m.LParam); ok {
				if err := emit(raw); err != nil {
					return err
				}
			}
		}
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
}

func (s *rawInputSource) read(handle uintptr) (RawKey, bool) {
	hsize := uintptr(rawInputHeaderSize(ptrSize))
	var size uint32
	procGetRawInputData.Call(handle, ridInput, 0, uintptr(unsafe.Pointer(&size)), hsize)
	if size == 0 {
		return RawKey{}, false
	}
	if cap(s.buf) < int(size) {
		s.buf = make([]byte, size)
	}
	buf := s.buf[:size]
	n, _, _ := procGetRawInputData.Call(handle, ridInput, uintptr(unsafe.Pointer(&buf[0])), uintptr(unsafe.Pointer(&size)), hsize)
	if int32(n) <= 0 {
		return RawKey{}, false
	}
	hdr, kb, err := parseRawInput(buf[:n], ptrSize)
	if err != nil {
		return RawKey{}, false
	}
	return kb.rawKey(s.clock(), s.device(hdr.Device)), true
}

// device caches metadata per handle; injected input has no handle.
func (s *rawInputSource) device(handle uintptr) *DeviceInfo {
	if handle == 0 {
		return nil
	}
	if info, ok := s.devices[handle]; ok {
		return info
	}
	info := deviceInfo(handle)
	s.devices[handle] = info
	return info
}

func deviceInfo(handle uintptr) *DeviceInfo {
	path := deviceName(handle)
	if path == "" {
		return nil
	}
	return NewDeviceInfo(path, productString(path))
}

func deviceName(handle uintptr) string {
	var chars uint32
	procGetRawInputDeviceInfoW.Call(handle, ridiDeviceName, 0, uintptr(unsafe.Pointer(&chars)))
	if chars == 0 {
		return ""
	}
	buf := make([]uint16, chars)
	r, _, _ := procGetRawInputDeviceInfoW.Call(handle, ridiDeviceName, uintptr(unsafe.Pointer(&buf[0])), uintptr(unsafe.Pointer(&chars)))
	if int32(r) <= 0 {
		return ""
	}
	return windows.UTF16ToString(buf)
}

// productString reads the HID product string. Keyboards opened by the
// system for exclusive use still answer with zero access rights.
func productString(path string) string {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return ""
	}
	h, err := windows.CreateFile(p, 0, windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE, nil, windows.OPEN_EXISTING, 0, 0)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(h)
	var buf [127]uint16
	ok, _, _ := procHidDGetProductString.Call(uintptr(h), uintptr(unsafe.Pointer(&buf[0])), unsafe.Sizeof(buf))
	if ok == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:])
}

func registerKeyboard(hwnd uintptr, flags uint32) error {
	dev := rawInputDevice{
		UsagePage: usagePageGeneric,
		Usage:     usageKeyboard,
		Flags:     flags,
		Target:    hwnd,
	}
	r, _, err := procRegisterRawInputDevices.Call(uintptr(unsafe.Pointer(&dev)), 1, unsafe.Sizeof(dev))
	if r == 0 {
		return fmt.Errorf("register raw input devices: %w", err)
	}
	return nil
}

func createMessageWindow() (uintptr, func(), error) {
	var instance windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &instance); err != nil {
		return 0, nil, fmt.Errorf("module handle: %w", err)
	}
	className, err := windows.UTF16PtrFromString("keytap_rawinput_" + strconv.Itoa(os.Getpid()))
	if err != nil {
		return 0, nil, err
	}
	wc := wndClassEx{
		WndProc:   procDefWindowProcW.Addr(),
		Instance:  instance,
		ClassName: className,
	}
	wc.Size = uint32(unsafe.Sizeof(wc))
	if r, _, err := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc))); r == 0 {
		var errno windows.Errno
		if !errors.As(err, &errno) || errno != errorClassAlreadyExists {
			return 0, nil, fmt.Errorf("register window class: %w", err)
		}
	}
	hwnd, _, err := procCreateWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(className)),
		0, 0, 0, 0, 0,
		hwndMessage,
		0,
		uintptr(instance),
		0,
	)
	if hwnd == 0 {
		procUnregisterClassW.Call(uintptr(unsafe.Pointer(className)), uintptr(instance))
		return 0, nil, fmt.Errorf("create message window: %w", err)
	}
	destroy := func() {
		procDestroyWindow.Call(hwnd)
		procUnregisterClassW.Call(uintptr(unsafe.Pointer(className)), uintptr(instance))
	}
	return hwnd, destroy, nil
}

func listRawInputKeyboards() ([]Keyboard, error) {
	var count uint32
	entry := unsafe.Sizeof(rawInputDeviceList{})
	r, _, err := procGetRawInputDeviceList.Call(0, uintptr(unsafe.Pointer(&count)), entry)
	if int32(r) == -1 {
		return nil, fmt.Errorf("raw input device count: %w", err)
	}
	if count == 0 {
		return nil, nil
	}
	list := make([]rawInputDeviceList, count)
	r, _, err = procGetRawInputDeviceList.Call(uintptr(unsafe.Pointer(&list[0])), uintptr(unsafe.Pointer(&count)), entry)
	if int32(r) == -1 {
		return nil, fmt.Errorf("raw input device list: %w", err)
	}
	var keyboards []Keyboard
	for _, d := range list[:int(r)] {
		if d.Type != rimTypeKeyboard {
			continue
		}
		info := deviceInfo(d.Device)
		if info == nil {
			continue
		}
		keyboards = append(keyboards, Keyboard{DeviceInfo: *info, Source: SourceRawInput})
	}
	return keyboards, nil
}
