package keys

import "errors"

// ErrUnknownLayout is returned for layout identifiers with no built-in table.
var ErrUnknownLayout = errors.New("unknown keyboard layout")
