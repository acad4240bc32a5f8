package buildinfo

import "runtime/debug"

// version is set at link time with -ldflags "-X .../buildinfo.version=v1.2.3".
var version = "dev"

var readBuildInfo = debug.ReadBuildInfo

// SetVersion allows build scripts to override the CLI version information.
func SetVersion(v string) {
	if v == "" {
		return
	}
	version = v
}

// Version returns the linked version, the module version, or "dev".
func Version() string {
	if version != "dev" {
		return version
	}
	if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

// Commit returns the short VCS revision recorded by the Go toolchain, with a
// "+dirty" suffix for modified trees. It is empty when unknown.
func Commit() string {
	info, ok := readBuildInfo()
	if !ok {
		return ""
	}
	var revision string
	var modified bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	if revision != "" && modified {
		revision += "+dirty"
	}
	return revision
}
