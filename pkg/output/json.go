package output

import (
	"fmt"
	"io"

	"github.com/mailru/easyjson/jwriter"

	"github.com/offlinefirst/keytap/pkg/events"
)

// jsonWriter emits one JSON object per line, unbuffered, so a consumer
// reading the pipe sees each record as soon as it is resolved.
type jsonWriter struct {
	out io.Writer
}

func newJSONWriter(w io.Writer) *jsonWriter {
	return &jsonWriter{out: w}
}

func (j *jsonWriter) Format() string { return FormatJSON }

func (j *jsonWriter) WriteEvent(e events.KeyEvent) error {
	w := jwriter.Writer{NoEscapeHTML: true}
	e.MarshalEasyJSON(&w)
	w.RawByte('\n')
	if w.Error != nil {
		return fmt.Errorf("encode record: %w", w.Error)
	}
	if _, err := w.DumpTo(j.out); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}
