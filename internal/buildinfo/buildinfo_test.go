package buildinfo

import (
	"runtime/debug"
	"testing"
)

func stubBuildInfo(t *testing.T, info *debug.BuildInfo) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, info != nil }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestVersionPrefersLinkedValue(t *testing.T) {
	orig := version
	defer func() { version = orig }()

	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "v0.3.0"}})
	if got := Version(); got != "v0.3.0" {
		t.Fatalf("expected module version, got %q", got)
	}

	SetVersion("v1.0.0")
	if got := Version(); got != "v1.0.0" {
		t.Fatalf("expected linked version, got %q", got)
	}
}

func TestVersionIgnoresDevelBuilds(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if got := Version(); got != "dev" {
		t.Fatalf("expected dev, got %q", got)
	}
}

func TestCommit(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		{Key: "vcs.modified", Value: "true"},
	}})
	if got := Commit(); got != "0123456789ab+dirty" {
		t.Fatalf("unexpected commit %q", got)
	}

	stubBuildInfo(t, nil)
	if got := Commit(); got != "" {
		t.Fatalf("expected empty commit without build info, got %q", got)
	}
}
