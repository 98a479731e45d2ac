// Where: internal/app/deps.go
// What: Dependency interfaces for CLI command execution.
// Why: Enable dependency injection so commands are testable without a host.
package app

import (
	"context"
	"io"
	"time"

	"github.com/ublue-os/eol-rebaser/internal/bootc"
	"github.com/ublue-os/eol-rebaser/internal/config"
	"github.com/ublue-os/eol-rebaser/internal/migrate"
	"github.com/ublue-os/eol-rebaser/internal/notify"
)

// BootcClient defines the bootc operations the commands depend on.
// Implementations talk to the host bootc binary.
type BootcClient interface {
	CurrentImage(ctx context.Context) (string, error)
	Status(ctx context.Context) (*bootc.Status, error)
	Switch(ctx context.Context, target string) error
	IsBootcSystem(ctx context.Context) bool
	CheckPrivileges() bool
}

// Notifier delivers migration lifecycle notifications. All methods are best
// effort and must not block a migration on delivery failure.
type Notifier interface {
	MigrationStart(ctx context.Context, ev notify.Event)
	MigrationSuccess(ctx context.Context, ev notify.Event)
	MigrationFailure(ctx context.Context, ev notify.Event)
}

// Prompter asks the user for confirmation before rebasing.
type Prompter interface {
	Confirm(title string) (bool, error)
}

// Dependencies holds all injected dependencies required for CLI command
// execution. This structure enables dependency injection for testing and
// allows swapping implementations of the host integrations.
type Dependencies struct {
	Out          io.Writer
	Now          func() time.Time
	Loader       func(basePath, dropInDir string) (migrate.RuleSet, *config.Report, error)
	BootcFactory func(useSudo bool) BootcClient
	Notifier     Notifier
	Prompter     Prompter
}
