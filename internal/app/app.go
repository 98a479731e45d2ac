// Where: internal/app/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/ublue-os/eol-rebaser/internal/config"
	"github.com/ublue-os/eol-rebaser/internal/logging"
	"github.com/ublue-os/eol-rebaser/internal/meta"
	"github.com/ublue-os/eol-rebaser/internal/migrate"
	"github.com/ublue-os/eol-rebaser/internal/version"
)

// CLI defines the command-line interface structure parsed by Kong.
// The three mode flags are mutually exclusive; with none given the
// tool applies a pending migration, which keeps the systemd unit a
// plain no-argument invocation.
type CLI struct {
	Check     bool   `help:"Check for a pending migration without applying it" xor:"mode"`
	Migrate   bool   `help:"Apply a pending migration (default)" xor:"mode"`
	Status    bool   `help:"Show the bootc deployment status" xor:"mode"`
	DryRun    bool   `name:"dry-run" help:"Show what would happen without making changes"`
	Force     bool   `help:"Apply matching rules regardless of effective date"`
	Config    string `short:"c" help:"Path to the migration rules file"`
	Yes       bool   `short:"y" help:"Skip the confirmation prompt"`
	NoSudo    bool   `name:"no-sudo" help:"Invoke bootc directly instead of through sudo"`
	Verbose   bool   `short:"v" help:"Enable debug logging"`
	LogFormat string `name:"log-format" enum:"text,json" default:"text" help:"Log output format"`
	Version   bool   `help:"Show version information"`
}

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested mode,
// and dispatches to the appropriate handler.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Loader == nil {
		deps.Loader = config.Load
	}

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name(meta.AppName),
		kong.Description("Rebase bootc systems off end-of-life container images."),
		kong.DefaultEnvars(meta.EnvPrefix),
	)
	if err != nil {
		return exitWithError(out, err)
	}
	if _, err := parser.Parse(args); err != nil {
		return exitWithError(out, err)
	}

	if cli.Version {
		fmt.Fprintln(out, version.GetVersion())
		return 0
	}

	logging.Configure(cli.Verbose, cli.LogFormat)

	switch {
	case cli.Status:
		return runStatus(cli, deps, out)
	case cli.Check:
		return runCheck(cli, deps, out)
	default:
		return runMigrate(cli, deps, out)
	}
}

// loadRules loads the rule table from the configured path and its drop-in
// directory. The -c flag overrides the packaged default path.
func loadRules(cli CLI, deps Dependencies) (migrate.RuleSet, *config.Report, error) {
	basePath := cli.Config
	if basePath == "" {
		basePath = meta.DefaultConfigPath
	}
	return deps.Loader(basePath, config.DropInDir(basePath))
}

func exitWithError(out io.Writer, err error) int {
	fmt.Fprintln(out, err)
	return 1
}
