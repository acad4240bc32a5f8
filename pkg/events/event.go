package events

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/offlinefirst/keytap/pkg/keys"
)

// Flags mirrors the raw keyboard flag word reported with each transition.
type Flags uint16

const (
	FlagBreak                  Flags = 0x01
	FlagE0                     Flags = 0x02
	FlagE1                     Flags = 0x04
	FlagTerminalServerSetLED   Flags = 0x08
	FlagTerminalServerShadow   Flags = 0x10
	FlagTerminalServerVKPacket Flags = 0x20
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagBreak, "Up"},
	{FlagE0, "KeyE0"},
	{FlagE1, "KeyE1"},
	{FlagTerminalServerSetLED, "TerminalServerSetLED"},
	{FlagTerminalServerShadow, "TerminalServerShadow"},
	{FlagTerminalServerVKPacket, "TerminalServerVKPacket"},
}

// String lists the set flags in ascending bit order, e.g. "Up, KeyE0".
// Bits without a name are appended as a single decimal number.
func (f Flags) String() string {
	if f == 0 {
		return "None"
	}
	parts := make([]string, 0, 3)
	rest := f
	for _, n := range flagNames {
		if f&n.flag != 0 {
			parts = append(parts, n.name)
			rest &^= n.flag
		}
	}
	if rest != 0 {
		parts = append(parts, strconv.Itoa(int(rest)))
	}
	return strings.Join(parts, ", ")
}

// Extended reports whether the key carried an E0 or E1 prefix.
func (f Flags) Extended() bool {
	return f&(FlagE0|FlagE1) != 0
}

// Direction is the transition a record describes.
type Direction string

const (
	DirectionDown Direction = "down"
	DirectionUp   Direction = "up"
)

// Direction derives the transition from the break bit.
func (f Flags) Direction() Direction {
	if f&FlagBreak != 0 {
		return DirectionUp
	}
	return DirectionDown
}

// DeviceInfo identifies the keyboard that produced an event. Every field is
// best effort; zero values are reported as null.
type DeviceInfo struct {
	Path      string `json:"device"`
	Product   string `json:"product"`
	VendorID  uint16 `json:"vendorId"`
	ProductID uint16 `json:"productId"`
	// HasIDs is set when VendorID and ProductID were recovered.
	HasIDs bool `json:"-"`
}

// RawKey is one transition as delivered by a source, before resolution.
type RawKey struct {
	Time   time.Time
	VK     keys.VirtualKey
	Scan   keys.ScanCode
	Flags  Flags
	Device *DeviceInfo
}

// KeyEvent is the finished record for a single transition.
type KeyEvent struct {
	Timestamp time.Time
	Device    *DeviceInfo
	VK        keys.VirtualKey
	Scan      keys.ScanCode
	Flags     Flags
	Direction Direction
	KeyName   string
	Stage     keys.Stage
}

var hardwareIDPattern = regexp.MustCompile(`(?i)VID_([0-9A-F]{4}).*?PID_([0-9A-F]{4})`)

// ParseHardwareIDs extracts the USB vendor and product ids from a device
// interface path such as `\\?\HID#VID_046D&PID_C52B&MI_00#...`.
func ParseHardwareIDs(path string) (vendor, product uint16, ok bool) {
	m := hardwareIDPattern.FindStringSubmatch(path)
	if m == nil {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(m[1], 16, 16)
	if err != nil {
		return 0, 0, false
	}
	p, err := strconv.ParseUint(m[2], 16, 16)
	if err != nil {
		return 0, 0, false
	}
	return uint16(v), uint16(p), true
}

// NewDeviceInfo builds device metadata from an interface path and product
// name, recovering the hardware ids from the path when present.
func NewDeviceInfo(path, product string) *DeviceInfo {
	if path == "" && product == "" {
		return nil
	}
	info := &DeviceInfo{Path: path, Product: strings.TrimSpace(product)}
	info.VendorID, info.ProductID, info.HasIDs = ParseHardwareIDs(path)
	return info
}
