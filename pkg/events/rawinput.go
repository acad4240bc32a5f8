package events

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/offlinefirst/keytap/pkg/keys"
)

// Raw input constants shared by the Windows backend and its parsing tests.
const (
	wmInput          = 0x00FF
	ridInput         = 0x10000003
	ridiDeviceName   = 0x20000007
	rimTypeKeyboard  = 1
	usagePageGeneric = 0x01
	usageKeyboard    = 0x06

	ridevRemove      = 0x00000001
	ridevNoLegacy    = 0x00000030
	ridevInputSink   = 0x00000100
	ridevExInputSink = 0x00001000
)

// rawInputHeader is RAWINPUTHEADER decoded for a given pointer width.
type rawInputHeader struct {
	Type   uint32
	Size   uint32
	Device uintptr
	WParam uintptr
}

// rawKeyboard is RAWKEYBOARD.
type rawKeyboard struct {
	MakeCode         uint16
	Flags            uint16
	Reserved         uint16
	VKey             uint16
	Message          uint32
	ExtraInformation uint32
}

const rawKeyboardSize = 16

func rawInputHeaderSize(ptrSize int) int {
	return 8 + 2*ptrSize
}

// parseRawInput decodes a RAWINPUT buffer as filled by GetRawInputData.
func parseRawInput(buf []byte, ptrSize int) (rawInputHeader, rawKeyboard, error) {
	if ptrSize != 4 && ptrSize != 8 {
		return rawInputHeader{}, rawKeyboard{}, fmt.Errorf("unsupported pointer size %d", ptrSize)
	}
	hsize := rawInputHeaderSize(ptrSize)
	if len(buf) < hsize {
		return rawInputHeader{}, rawKeyboard{}, fmt.Errorf("raw input header truncated: %d bytes", len(buf))
	}
	le := binary.LittleEndian
	readPtr := func(b []byte) uintptr {
		if ptrSize == 8 {
			return uintptr(le.Uint64(b))
		}
		return uintptr(le.Uint32(b))
	}
	hdr := rawInputHeader{
		Type:   le.Uint32(buf[0:4]),
		Size:   le.Uint32(buf[4:8]),
		Device: readPtr(buf[8 : 8+ptrSize]),
		WParam: readPtr(buf[8+ptrSize : hsize]),
	}
	if hdr.Type != rimTypeKeyboard {
		return hdr, rawKeyboard{}, fmt.Errorf("raw input type %d is not a keyboard", hdr.Type)
	}
	body := buf[hsize:]
	if len(body) < rawKeyboardSize {
		return hdr, rawKeyboard{}, fmt.Errorf("raw keyboard truncated: %d bytes", len(body))
	}
	kb := rawKeyboard{
		MakeCode:         le.Uint16(body[0:2]),
		Flags:            le.Uint16(body[2:4]),
		Reserved:         le.Uint16(body[4:6]),
		VKey:             le.Uint16(body[6:8]),
		Message:          le.Uint32(body[8:12]),
		ExtraInformation: le.Uint32(body[12:16]),
	}
	return hdr, kb, nil
}

func (k rawKeyboard) rawKey(ts time.Time, device *DeviceInfo) RawKey {
	return RawKey{
		Time:   ts,
		VK:     keys.VirtualKey(k.VKey),
		Scan:   keys.ScanCode(k.MakeCode),
		Flags:  Flags(k.Flags),
		Device: device,
	}
}

// registrationFlags builds the RAWINPUTDEVICE flags for the keyboard
// registration.
func registrationFlags(inputSink, noLegacy bool) uint32 {
	var flags uint32
	if inputSink {
		flags |= ridevExInputSink
	}
	if noLegacy {
		flags |= ridevNoLegacy
	}
	return flags
}
