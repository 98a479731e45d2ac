// Where: internal/app/migrate.go
// What: Migrate command.
// Why: Rebase the system off an end-of-life image via bootc.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/ublue-os/eol-rebaser/internal/config"
	"github.com/ublue-os/eol-rebaser/internal/image"
	"github.com/ublue-os/eol-rebaser/internal/logging"
	"github.com/ublue-os/eol-rebaser/internal/migrate"
	"github.com/ublue-os/eol-rebaser/internal/notify"
	"github.com/ublue-os/eol-rebaser/internal/ui"
)

// runMigrate executes the default mode: resolve the booted image against the
// rule table and, when a rule matches, rebase to the expanded target image.
func runMigrate(cli CLI, deps Dependencies, out io.Writer) int {
	ctx := context.Background()
	console := ui.New(out)

	if deps.BootcFactory == nil {
		return exitWithError(out, errors.New("migrate: bootc client not configured"))
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

	if err := image.Validate(match.Target); err != nil {
		return exitWithError(out, fmt.Errorf("migration %s: %w", match.Rule.Name, err))
	}

	console.Header("🔄", "Migration required: "+match.Rule.Name)
	console.Item("From", current)
	console.Item("To", match.Target)
	if match.Rule.Reason != "" {
		console.Item("Reason", match.Rule.Reason)
	}

	if cli.DryRun {
		console.Info("Dry run: no changes made.")
		return 0
	}

	if !cli.Yes && isTerminal(os.Stdin) {
		if deps.Prompter == nil {
			return exitWithError(out, errors.New("migrate: prompter not configured"))
		}
		confirmed, err := deps.Prompter.Confirm("Rebase to " + match.Target + " now?")
		if err != nil {
			return exitWithError(out, err)
		}
		if !confirmed {
			fmt.Fprintln(out, "Aborted.")
			return 1
		}
	}

	if !client.CheckPrivileges() {
		console.Warning("Not running as root and sudo is unavailable; bootc may fail.")
	}

	ev := notify.Event{
		Migration: match.Rule.Name,
		From:      current,
		To:        match.Target,
		Reason:    match.Rule.Reason,
	}
	if deps.Notifier != nil {
		deps.Notifier.MigrationStart(ctx, ev)
	}

	if err := client.Switch(ctx, match.Target); err != nil {
		if deps.Notifier != nil {
			failed := ev
			failed.Error = err.Error()
			deps.Notifier.MigrationFailure(ctx, failed)
		}
		return exitWithError(out, err)
	}

	logging.Logger().WithFields(logrus.Fields{
		"migration": match.Rule.Name,
		"from":      current,
		"to":        match.Target,
	}).Info("migration applied")

	if deps.Notifier != nil {
		deps.Notifier.MigrationSuccess(ctx, ev)
	}

	console.Success("Migration applied. Reboot to start using the new image.")
	return 0
}
