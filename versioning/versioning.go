package versioning

import "fmt"

// Embedded by --ldflags on build time
// Versioning should follow the SemVer guidelines
// https://semver.org/
var (
	// Version is the main version at the moment.
	Version   string // the main version at the moment
	Commit    string // the git commit that the binary was built on
	BuildTime string // the timestamp of the build
)

const clientName = "objectchain"

// ClientVersion is the client identifier reported over rpc
func ClientVersion() string {
	version := Version
	if version == "" {
		version = "dev"
	}

	if Commit == "" {
		return fmt.Sprintf("%s/%s", clientName, version)
	}

	commit := Commit
	if len(commit) > 8 {
		commit = commit[:8]
	}

	return fmt.Sprintf("%s/%s-%s", clientName, version, commit)
}
