package events

import (
	"runtime"

	"github.com/offlinefirst/keytap/pkg/keys"
	"github.com/offlinefirst/keytap/pkg/permissions"
)

// Environment summarises keyboard capture support on this host.
type Environment struct {
	Provider   string   `json:"provider"`
	Default    string   `json:"default_source"`
	Available  bool     `json:"available"`
	Permission string   `json:"permission"`
	Message    string   `json:"message"`
	Guidance   string   `json:"guidance,omitempty"`
	Layouts    []string `json:"layouts"`
}

var goos = runtime.GOOS

// DetectEnvironment reports which device-backed provider can capture input
// and whether the process may read it.
func DetectEnvironment() Environment {
	return detectEnvironment(nil)
}

func detectEnvironment(lookup permissions.LookupEnvFunc) Environment {
	access := permissions.ProbeInputDevices(lookup)
	env := Environment{
		Provider:   SourceSynthetic,
		Default:    ResolveSourceName(SourceAuto),
		Permission: access.StatusString(),
		Message:    access.Message,
		Guidance:   access.Guidance,
	}
	for _, id := range keys.Layouts() {
		env.Layouts = append(env.Layouts, string(id))
	}

	switch goos {
	case "windows":
		env.Provider = SourceRawInput
		env.Available = access.Status != permissions.StatusDenied
	case "linux":
		env.Provider = SourceEvdev
		env.Available = access.Status == permissions.StatusGranted
	default:
		env.Permission = "not_applicable"
		if env.Message == "" {
			env.Message = "synthetic keyboard source only"
		}
	}

	if !env.Available {
		env.Provider = SourceSynthetic
		if env.Message == "" {
			env.Message = "keyboard input unavailable"
		}
	}
	return env
}
