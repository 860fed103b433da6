package version

import (
	"regexp"
	"strings"
	"testing"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	info := Get()
	if info.Version != Version || info.GitCommit != GitCommit || info.BuildDate != BuildDate {
		t.Errorf("Get() = %+v", info)
	}
}

func TestVersion_CanBeOverridden(t *testing.T) {
	origVersion, origGitCommit, origBuildDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origGitCommit, origBuildDate }()

	// как через -ldflags
	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	info := Get()
	if info.Version != "1.2.3" || info.GitCommit != "abc123def456" || info.BuildDate != "2024-01-15T10:30:00Z" {
		t.Errorf("Get() = %+v", info)
	}
}

func TestColored(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	for _, v := range []string{"1.2.3", "0.1.0-dev", "1.2.3-rc.1+build.123"} {
		Version = v
		if got := Colored(false); got != v {
			t.Errorf("Colored(false) = %q, want %q", got, v)
		}
		got := Colored(true)
		if !strings.Contains(got, "\x1b[") || ansi.ReplaceAllString(got, "") != v {
			t.Errorf("Colored(true) for %q = %q", v, got)
		}
	}

	Version = "nightly"
	if got := Colored(true); got != "nightly" {
		t.Errorf("non-semver must pass through, got %q", got)
	}
}
