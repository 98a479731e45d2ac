// Where: internal/version/version.go
// What: Version information retrieval.
// Why: Report the release and Git revision for --version and migration records.
package version

import (
	"fmt"
	"runtime/debug"
)

// GetVersion returns the version string derived from build info.
// Tagged builds report the module version; when VCS metadata is present the
// short revision is appended, with "dirty" marking a modified tree.
// Returns "dev" when no build info is available.
func GetVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}

	release := info.Main.Version
	if release == "" || release == "(devel)" {
		release = "dev"
	}

	var revision string
	var modified bool

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			// Shorten revision to 7 chars if possible
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	if revision == "" {
		return release
	}

	if modified {
		return fmt.Sprintf("%s (%s, dirty)", release, revision)
	}
	return fmt.Sprintf("%s (%s)", release, revision)
}
