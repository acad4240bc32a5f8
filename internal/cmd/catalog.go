package cmd

import (
	"flag"
	"fmt"
	"io"

	"github.com/mailru/easyjson/jwriter"

	"github.com/offlinefirst/keytap/pkg/keys"
	"github.com/offlinefirst/keytap/pkg/output"
)

func newCatalogCommand() command {
	return command{
		name:        "catalog",
		description: "Print the fixed key catalog",
		configure: func(fs *flag.FlagSet) {
			fs.String("format", "auto", "Output format (json, console, auto)")
		},
		run:      runCatalog,
		skipInit: true,
	}
}

func runCatalog(fs *flag.FlagSet, _ []string, _ *AppContext, stdout io.Writer, _ io.Writer) error {
	format, err := output.ResolveFormat(stringFlag(fs, "format"), stdout)
	if err != nil {
		return err
	}
	entries := keys.Catalog()

	if format == output.FormatJSON {
		w := jwriter.Writer{NoEscapeHTML: true}
		w.RawByte('[')
		for i, e := range entries {
			if i > 0 {
				w.RawByte(',')
			}
			w.RawString(`{"vk":`)
			w.Uint16(uint16(e.Code))
			w.RawString(`,"name":`)
			w.String(e.Name)
			w.RawByte('}')
		}
		w.RawString("]\n")
		_, err := w.DumpTo(stdout)
		return err
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{fmt.Sprintf("0x%02X", uint16(e.Code)), e.Name})
	}
	return output.WriteTable(stdout, []string{"VK", "NAME"}, rows)
}
