// Where: internal/notify/notify.go
// What: User notifications for migration events.
// Why: Tell desktop sessions, logged-in users, and the journal what happened.
package notify

import (
	"context"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/ublue-os/eol-rebaser/internal/logging"
	"github.com/ublue-os/eol-rebaser/internal/meta"
	"github.com/ublue-os/eol-rebaser/internal/run"
)

const (
	detectTimeout  = 5 * time.Second
	sendTimeout    = 10 * time.Second
	journalTimeout = 5 * time.Second

	titleStart   = "System Image Migration Starting"
	titleSuccess = "System Image Migration Completed"
	titleFailure = "System Image Migration Failed"
)

// Swappable for tests.
var lookPath = exec.LookPath

// Event carries the details a notification can mention.
type Event struct {
	Migration string
	From      string
	To        string
	Reason    string
	Error     string
}

// Notifier delivers migration notifications. Desktop availability is probed
// once, on first use. Every channel is best effort: failures are logged and
// never abort a migration.
type Notifier struct {
	runner      run.CommandRunner
	desktopOnce sync.Once
	desktop     bool
}

// New creates a Notifier using the given runner.
func New(runner run.CommandRunner) *Notifier {
	return &Notifier{runner: runner}
}

// MigrationStart announces that a migration is about to run.
func (n *Notifier) MigrationStart(ctx context.Context, ev Event) {
	n.send(ctx, titleStart, "start.tmpl", ev, "system-software-update", false)
}

// MigrationSuccess announces a completed migration and the reboot ask.
func (n *Notifier) MigrationSuccess(ctx context.Context, ev Event) {
	n.send(ctx, titleSuccess, "success.tmpl", ev, "system-software-update", false)
}

// MigrationFailure announces a failed migration.
func (n *Notifier) MigrationFailure(ctx context.Context, ev Event) {
	n.send(ctx, titleFailure, "failure.tmpl", ev, "dialog-error", true)
}

func (n *Notifier) send(ctx context.Context, title, tmplName string, ev Event, icon string, urgent bool) {
	body, err := renderTemplate(tmplName, ev)
	if err != nil {
		logging.Logger().WithError(err).Warn("render notification")
		return
	}
	body = strings.TrimSpace(body)

	if n.desktopAvailable(ctx) {
		n.sendDesktop(ctx, title, body, icon, urgent)
	}
	n.journal(ctx, title+": "+body)
	n.wall(ctx, title+": "+body)
}

func (n *Notifier) desktopAvailable(ctx context.Context) bool {
	n.desktopOnce.Do(func() {
		n.desktop = detectDesktop(ctx, n.runner)
	})
	return n.desktop
}

// detectDesktop reports whether a graphical session with notify-send is
// present: loginctl must report an x11 or wayland session type.
func detectDesktop(ctx context.Context, runner run.CommandRunner) bool {
	ctx, cancel := context.WithTimeout(ctx, detectTimeout)
	defer cancel()

	out, err := runner.RunOutput(ctx, "loginctl", "show-session", "self", "-p", "Type", "--value")
	if err != nil {
		return false
	}
	session := strings.TrimSpace(string(out))
	if session != "x11" && session != "wayland" {
		return false
	}
	if _, err := lookPath("notify-send"); err != nil {
		return false
	}
	return true
}

func (n *Notifier) sendDesktop(ctx context.Context, title, body, icon string, urgent bool) {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	urgency := "normal"
	if urgent {
		urgency = "critical"
	}
	args := []string{
		"--app-name=" + meta.NotifyAppName,
		"--icon=" + icon,
		"--urgency=" + urgency,
		title,
		body,
	}
	if err := n.runner.RunQuiet(ctx, "notify-send", args...); err != nil {
		logging.Logger().WithError(err).Warn("desktop notification failed")
	}
}

// journal writes the notification to the systemd journal via systemd-cat.
func (n *Notifier) journal(ctx context.Context, message string) {
	ctx, cancel := context.WithTimeout(ctx, journalTimeout)
	defer cancel()

	err := n.runner.RunInput(ctx, message, "systemd-cat",
		"--identifier="+meta.SyslogIdentifier, "--priority=info")
	if err != nil {
		logging.Logger().WithError(err).Debug("journal notification failed")
	}
}

// wall broadcasts the notification to all logged-in users.
func (n *Notifier) wall(ctx context.Context, message string) {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	err := n.runner.RunInput(ctx, "["+meta.NotifyAppName+"] "+message, "wall")
	if err != nil {
		logging.Logger().WithError(err).Debug("wall broadcast failed")
	}
}
