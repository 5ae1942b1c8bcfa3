// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/certpaths/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/certpaths/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/certpaths/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Binaries built with go install carry no ldflags; for those the module
// version and VCS stamps recorded by the toolchain are used instead.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Resolved returns Version, Commit and Date, filling defaults from the
// toolchain's embedded build info when ldflags were not set.
func Resolved() (version, commit, date string) {
	version, commit, date = Version, Commit, Date
	info, ok := readBuildInfo()
	if !ok {
		return
	}
	if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && commit == "none":
			commit = s.Value
		case s.Key == "vcs.time" && date == "unknown":
			date = s.Value
		}
	}
	return
}

// Template returns the version template string for cobra.
func Template() string {
	v, c, d := Resolved()
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", v, c, d)
}
