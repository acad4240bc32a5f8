// Package output renders KeyEvent records to a sink: JSON lines for
// programs, aligned colored lines for people.
package output

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/offlinefirst/keytap/pkg/events"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
	FormatAuto    = "auto"
)

// Writer is an events.Sink bound to an io.Writer.
type Writer interface {
	events.Sink
	Format() string
}

// isTerminal is swapped in tests.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// NormalizeFormat canonicalises a format name; unknown names are returned
// unchanged so validation can report them.
func NormalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		return FormatAuto
	}
	return f
}

// ResolveFormat maps auto to console for terminals and json otherwise.
func ResolveFormat(format string, w io.Writer) (string, error) {
	switch f := NormalizeFormat(format); f {
	case FormatJSON, FormatConsole:
		return f, nil
	case FormatAuto:
		if isTerminal(w) {
			return FormatConsole, nil
		}
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", format)
	}
}

// New returns a record writer for the format.
func New(w io.Writer, format string) (Writer, error) {
	if w == nil {
		return nil, fmt.Errorf("output writer must not be nil")
	}
	resolved, err := ResolveFormat(format, w)
	if err != nil {
		return nil, err
	}
	if resolved == FormatConsole {
		return newConsoleWriter(w), nil
	}
	return newJSONWriter(w), nil
}
