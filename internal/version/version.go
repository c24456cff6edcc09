// Package version holds the build-time version metadata reported by
// cmd/strobe-cli.
package version

import "fmt"

// Must be updated by hand at release time.
var version = Version{
	Major: 0,
	Minor: 1,
	Patch: 0,
}

// Set via -ldflags, e.g.
//
//	go build -ldflags "-X github.com/drand/strobe/internal/version.GitCommit=`git rev-parse HEAD` -X github.com/drand/strobe/internal/version.BuildDate=`date -u +%d/%m/%Y@%H:%M:%S`"
var (
	GitCommit = ""
	BuildDate = ""
)

// Version is the semantic version of this build.
type Version struct {
	Major uint32
	Minor uint32
	Patch uint32
}

// GetAppVersion returns the version of the running binary.
func GetAppVersion() Version {
	return version
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
