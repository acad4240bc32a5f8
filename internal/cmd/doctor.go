package cmd

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/mailru/easyjson/jwriter"

	"github.com/offlinefirst/keytap/pkg/events"
	"github.com/offlinefirst/keytap/pkg/output"
)

func newDoctorCommand() command {
	return command{
		name:        "doctor",
		description: "Report keyboard capture support and permissions on this host",
		configure: func(fs *flag.FlagSet) {
			fs.String("format", "console", "Output format (json, console, auto)")
		},
		run: runDoctor,
	}
}

// detectEnvironment is swapped in tests.
var detectEnvironment = events.DetectEnvironment

func runDoctor(fs *flag.FlagSet, _ []string, ctx *AppContext, stdout io.Writer, _ io.Writer) error {
	env := detectEnvironment()
	if ctx != nil && ctx.Logger != nil {
		ctx.Logger.Debug("environment detected", "provider", env.Provider, "available", env.Available, "permission", env.Permission)
	}

	format, err := output.ResolveFormat(stringFlag(fs, "format"), stdout)
	if err != nil {
		return err
	}

	if format == output.FormatJSON {
		w := jwriter.Writer{NoEscapeHTML: true}
		w.RawString(`{"provider":`)
		w.String(env.Provider)
		w.RawString(`,"default_source":`)
		w.String(env.Default)
		w.RawString(`,"available":`)
		w.Bool(env.Available)
		w.RawString(`,"permission":`)
		w.String(env.Permission)
		w.RawString(`,"message":`)
		w.String(env.Message)
		if env.Guidance != "" {
			w.RawString(`,"guidance":`)
			w.String(env.Guidance)
		}
		w.RawString(`,"layouts":[`)
		for i, l := range env.Layouts {
			if i > 0 {
				w.RawByte(',')
			}
			w.String(l)
		}
		w.RawString("]}\n")
		_, err := w.DumpTo(stdout)
		return err
	}

	fmt.Fprintln(stdout, "Keyboard capture environment")
	fmt.Fprintf(stdout, "  provider: %s\n", env.Provider)
	fmt.Fprintf(stdout, "  default source: %s\n", env.Default)
	fmt.Fprintf(stdout, "  available: %t\n", env.Available)
	fmt.Fprintf(stdout, "  permission: %s\n", env.Permission)
	if env.Message != "" {
		fmt.Fprintf(stdout, "  message: %s\n", env.Message)
	}
	if env.Guidance != "" {
		fmt.Fprintf(stdout, "  guidance: %s\n", env.Guidance)
	}
	_, err = fmt.Fprintf(stdout, "  layouts: %s\n", strings.Join(env.Layouts, ", "))
	return err
}
