package events

import (
	"fmt"
	"sort"
)

// Keyboard is one capture-capable keyboard device.
type Keyboard struct {
	DeviceInfo
	Source string `json:"source"`
}

// ListDevices returns the keyboards visible to the platform's device-backed
// sources, sorted by path.
func ListDevices() ([]Keyboard, error) {
	var all []Keyboard
	for _, list := range []func() ([]Keyboard, error){listRawInputKeyboards, listEvdevKeyboards} {
		found, err := list()
		if err != nil {
			return nil, fmt.Errorf("list keyboards: %w", err)
		}
		all = append(all, found...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Path < all[j].Path })
	return all, nil
}
