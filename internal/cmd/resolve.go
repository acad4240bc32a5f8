package cmd

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/mailru/easyjson/jwriter"

	"github.com/offlinefirst/keytap/pkg/keys"
	"github.com/offlinefirst/keytap/pkg/output"
)

func newResolveCommand() command {
	return command{
		name:        "resolve",
		description: "Resolve a virtual key and optional scan code to its display name",
		configure: func(fs *flag.FlagSet) {
			fs.String("layout", "", "Resolve against a static layout instead of the live system layout")
			fs.String("format", "auto", "Output format (json, console, auto)")
		},
		run:      runResolve,
		skipInit: true,
	}
}

// systemLayout is swapped in tests.
var systemLayout = keys.SystemLayout

func runResolve(fs *flag.FlagSet, args []string, _ *AppContext, stdout io.Writer, _ io.Writer) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: keytap resolve [flags] <vk> [scan]")
	}
	code, err := parseCode("virtual key", args[0])
	if err != nil {
		return err
	}
	vk := keys.VirtualKey(code)

	var scan keys.ScanCode
	haveScan := len(args) == 2
	if haveScan {
		code, err := parseCode("scan code", args[1])
		if err != nil {
			return err
		}
		scan = keys.ScanCode(code)
	}

	var layout keys.LayoutContext
	layoutName := "system"
	if id := strings.TrimSpace(stringFlag(fs, "layout")); id != "" {
		static, err := keys.NewStaticLayout(keys.LayoutID(id))
		if err != nil {
			return fmt.Errorf("layout %q: %w", id, err)
		}
		if !haveScan {
			if s, _, _, ok := static.ScanCodeFor(vk); ok {
				scan = s
			}
		}
		layout = static
		layoutName = string(static.ID())
	} else if live := systemLayout(); live != nil {
		layout = live
	} else {
		layoutName = "none"
	}

	res := keys.NewResolver(layout).Explain(vk, scan)

	format, err := output.ResolveFormat(stringFlag(fs, "format"), stdout)
	if err != nil {
		return err
	}
	if format == output.FormatJSON {
		w := jwriter.Writer{NoEscapeHTML: true}
		w.RawString(`{"vk":`)
		w.Uint16(uint16(vk))
		w.RawString(`,"scan":`)
		w.Uint16(uint16(scan))
		w.RawString(`,"layout":`)
		w.String(layoutName)
		w.RawString(`,"name":`)
		w.String(res.Name)
		w.RawString(`,"stage":`)
		w.String(string(res.Stage))
		w.RawString("}\n")
		_, err := w.DumpTo(stdout)
		return err
	}
	return output.WriteTable(stdout,
		[]string{"VK", "SCAN", "LAYOUT", "NAME", "STAGE"},
		[][]string{{fmt.Sprintf("0x%02X", uint16(vk)), scan.String(), layoutName, res.Name, string(res.Stage)}},
	)
}
