// Package buildinfo carries the version stamped into the pisica binary.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/pisica/pkg/buildinfo.Version=v0.3.1 \
//	    -X github.com/matzehuels/pisica/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/pisica/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Builds without ldflags fall back to the VCS stamp the Go toolchain embeds.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Revision returns Commit, or the embedded vcs.revision when Commit was not
// stamped. A "+dirty" suffix marks uncommitted changes.
func Revision() string {
	if Commit != "none" && Commit != "" {
		return Commit
	}
	info, ok := readBuildInfo()
	if !ok {
		return Commit
	}
	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev == "" {
		return Commit
	}
	if dirty {
		rev += "+dirty"
	}
	return rev
}

// Template is the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Revision(), Date)
}

// CacheScope prefixes raster cache keys. Artwork can change between builds,
// so release builds scope by version and dev builds by revision.
func CacheScope() string {
	if Version != "dev" {
		return Version + ":"
	}
	rev := Revision()
	if len(rev) > 12 {
		rev = rev[:12]
	}
	return "dev-" + rev + ":"
}
