package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/mailru/easyjson/jwriter"

	"github.com/offlinefirst/keytap/pkg/events"
	"github.com/offlinefirst/keytap/pkg/output"
)

func newDevicesCommand() command {
	return command{
		name:        "devices",
		description: "List keyboards visible to the platform event source",
		configure: func(fs *flag.FlagSet) {
			fs.String("format", "auto", "Output format (json, console, auto)")
		},
		run: runDevices,
	}
}

// listDevices is swapped in tests.
var listDevices = events.ListDevices

func runDevices(fs *flag.FlagSet, _ []string, ctx *AppContext, stdout io.Writer, _ io.Writer) error {
	keyboards, err := listDevices()
	if err != nil {
		if errors.Is(err, events.ErrInputPermission) {
			return fmt.Errorf("%w (run `keytap doctor` for guidance)", err)
		}
		return err
	}
	if ctx != nil && ctx.Logger != nil {
		ctx.Logger.Debug("keyboards enumerated", "count", len(keyboards))
	}

	format, err := output.ResolveFormat(stringFlag(fs, "format"), stdout)
	if err != nil {
		return err
	}

	if format == output.FormatJSON {
		w := jwriter.Writer{NoEscapeHTML: true}
		w.RawByte('[')
		for i, k := range keyboards {
			if i > 0 {
				w.RawByte(',')
			}
			w.RawString(`{"source":`)
			w.String(k.Source)
			w.RawString(`,"device":`)
			w.String(k.Path)
			w.RawString(`,"product":`)
			w.String(k.Product)
			w.RawString(`,"vendorId":`)
			if k.HasIDs {
				w.Uint16(k.VendorID)
			} else {
				w.RawString("null")
			}
			w.RawString(`,"productId":`)
			if k.HasIDs {
				w.Uint16(k.ProductID)
			} else {
				w.RawString("null")
			}
			w.RawByte('}')
		}
		w.RawString("]\n")
		_, err := w.DumpTo(stdout)
		return err
	}

	if len(keyboards) == 0 {
		_, err := fmt.Fprintln(stdout, "No keyboard devices found.")
		return err
	}
	rows := make([][]string, 0, len(keyboards))
	for _, k := range keyboards {
		ids := "-"
		if k.HasIDs {
			ids = fmt.Sprintf("%04X:%04X", k.VendorID, k.ProductID)
		}
		product := k.Product
		if product == "" {
			product = "-"
		}
		rows = append(rows, []string{k.Source, ids, product, k.Path})
	}
	return output.WriteTable(stdout, []string{"SOURCE", "VID:PID", "PRODUCT", "PATH"}, rows)
}
