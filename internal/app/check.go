// Where: internal/app/check.go
// What: Check command.
// Why: Report a pending migration without changing the system.
package app

import (
	"context"
	"errors"
	"io"

	"github.com/ublue-os/eol-rebaser/internal/config"
	"github.com/ublue-os/eol-rebaser/internal/migrate"
	"github.com/ublue-os/eol-rebaser/internal/ui"
)

// runCheck executes the '--check' mode. It resolves the booted image against
// the rule table and reports the outcome. Exit codes: 0 when nothing is
// pending, 2 when a migration is pending, 1 on operational errors.
func runCheck(cli CLI, deps Dependencies, out io.Writer) int {
	ctx := context.Background()
	console := ui.New(out)

	if deps.BootcFactory == nil {
		return exitWithError(out, errors.New("check: bootc client not configured"))
	}
	client := deps.BootcFactory(!cli.NoSudo)

	if !client.IsBootcSystem(ctx) {
		return exitWithError(out, errors.New("this does not appear to be a bootc system"))
	}

	rules, report, err := loadRules(cli, deps)
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			console.Info("No migrations configured.")
			return 0
		}
		return exitWithError(out, err)
	}
	for _, warning := range report.Warnings {
		console.Warning(warning)
	}

	current, err := client.CurrentImage(ctx)
	if err != nil {
		return exitWithError(out, err)
	}

	match := migrate.Resolve(current, rules, deps.Now(), cli.Force)
	if match == nil {
		console.Success("No migration needed.")
		return 0
	}

	console.Header("🔄", "Migration available: "+match.Rule.Name)
	console.Item("From", current)
	console.Item("To", match.Target)
	if match.Rule.Reason != "" {
		console.Item("Reason", match.Rule.Reason)
	}
	if match.Rule.Effective != nil {
		console.Item("Effective", match.Rule.Effective.Format("2006-01-02"))
	}
	return 2
}
