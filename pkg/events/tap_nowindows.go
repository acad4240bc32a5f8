//go:build !windows

package events

func openRawInput(SourceOptions) (Backend, error) {
	return Backend{}, ErrUnsupportedSource
}

func listRawInputKeyboards() ([]Keyboard, error) {
	return nil, nil
}
