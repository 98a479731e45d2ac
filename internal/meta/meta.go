// Where: internal/meta/meta.go
// What: Tool-local metadata constants.
// Why: Keep identity, default paths, and notification branding in one place.
package meta

const (
	// Tool Identity
	AppName   = "eol-rebaser"
	EnvPrefix = "EOL_REBASER"

	// Configuration Layout
	DefaultConfigPath = "/usr/share/eol-rebaser/migrations.conf"
	DropInSuffix      = ".d"

	// Notification Identity
	NotifyAppName    = "EOL Rebaser"
	SyslogIdentifier = "eol-rebaser"

	// Host Files
	OSReleasePath = "/etc/os-release"
)
