// Where: cmd/eol-rebaser/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"os"
	"time"

	"github.com/ublue-os/eol-rebaser/internal/app"
	"github.com/ublue-os/eol-rebaser/internal/bootc"
	"github.com/ublue-os/eol-rebaser/internal/config"
	"github.com/ublue-os/eol-rebaser/internal/notify"
	"github.com/ublue-os/eol-rebaser/internal/run"
)

// buildDependencies constructs all runtime dependencies required by the CLI.
// One ExecRunner is shared by the bootc client and the notifier.
func buildDependencies() app.Dependencies {
	runner := run.ExecRunner{}
	return app.Dependencies{
		Out:    os.Stdout,
		Now:    time.Now,
		Loader: config.Load,
		BootcFactory: func(useSudo bool) app.BootcClient {
			return bootc.NewClient(runner, useSudo)
		},
		Notifier: notify.New(runner),
		Prompter: app.HuhPrompter{},
	}
}
