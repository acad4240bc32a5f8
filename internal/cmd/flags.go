package cmd

import (
	"flag"
	"fmt"
	"strconv"
	"time"
)

func boolFlag(fs *flag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	if f == nil {
		return false
	}
	value, err := strconv.ParseBool(f.Value.String())
	if err != nil {
		return false
	}
	return value
}

func stringFlag(fs *flag.FlagSet, name string) string {
	f := fs.Lookup(name)
	if f == nil {
		return ""
	}
	return f.Value.String()
}

func intFlag(fs *flag.FlagSet, name string) int {
	f := fs.Lookup(name)
	if f == nil {
		return 0
	}
	if getter, ok := f.Value.(flag.Getter); ok {
		if v, ok := getter.Get().(int); ok {
			return v
		}
	}
	return 0
}

func durationFlag(fs *flag.FlagSet, name string) time.Duration {
	f := fs.Lookup(name)
	if f == nil {
		return 0
	}
	if getter, ok := f.Value.(flag.Getter); ok {
		if v, ok := getter.Get().(time.Duration); ok {
			return v
		}
	}
	return 0
}

// visitedFlags reports which flags were set on the command line.
func visitedFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// parseCode accepts decimal or 0x-prefixed hex key codes.
func parseCode(kind, s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: expected decimal or 0x hex up to 0xFFFF", kind, s)
	}
	return uint16(v), nil
}
