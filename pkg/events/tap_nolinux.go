//go:build !linux

package events

func openEvdev(SourceOptions) (Backend, error) {
	return Backend{}, ErrUnsupportedSource
}

func listEvdevKeyboards() ([]Keyboard, error) {
	return nil, nil
}
