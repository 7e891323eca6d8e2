package version

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is set at build time via ldflags
	Version = "dev"
	// Commit is set at build time via ldflags, or read from VCS build info
	Commit = ""
)

// readBuildInfo is swapped out in tests
var readBuildInfo = debug.ReadBuildInfo

// Get returns the version of the running binary. A version set via ldflags
// wins; otherwise the module version from `go install` is used.
func Get() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

// Full returns the version with the commit it was built from, when known.
// Builds from a modified work tree are marked dirty.
func Full() string {
	commit, dirty := Commit, false
	if info, ok := readBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if commit == "" {
					commit = s.Value
				}
			case "vcs.modified":
				dirty = s.Value == "true"
			}
		}
	}
	if commit == "" {
		return Get()
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if dirty {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (commit: %s)", Get(), commit)
}
