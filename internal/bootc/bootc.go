// Where: internal/bootc/bootc.go
// What: bootc host integration.
// Why: Read the booted image and drive rebases through the bootc CLI.
package bootc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/ublue-os/eol-rebaser/internal/logging"
	"github.com/ublue-os/eol-rebaser/internal/run"
)

const (
	statusTimeout = 30 * time.Second
	switchTimeout = 10 * time.Minute
	probeTimeout  = 10 * time.Second
)

// Swappable for tests.
var (
	lookPath = exec.LookPath
	geteuid  = os.Geteuid
)

// Client drives the host bootc command, optionally through sudo.
type Client struct {
	runner  run.CommandRunner
	useSudo bool
}

// NewClient creates a Client using the given runner. When useSudo is set,
// every bootc invocation is prefixed with sudo.
func NewClient(runner run.CommandRunner, useSudo bool) *Client {
	return &Client{runner: runner, useSudo: useSudo}
}

// command builds the argv for a bootc invocation.
func (c *Client) command(args ...string) (string, []string) {
	if c.useSudo {
		return "sudo", append([]string{"bootc"}, args...)
	}
	return "bootc", args
}

// Status runs `bootc status --json` and decodes the result.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	ctx, cancel := context.WithTimeout(ctx, statusTimeout)
	defer cancel()

	name, args := c.command("status", "--json")
	out, err := c.runner.RunOutput(ctx, name, args...)
	if err != nil {
		return nil, c.wrapCommandError("bootc status", err)
	}

	var st Status
	if err := json.Unmarshal(out, &st); err != nil {
		return nil, fmt.Errorf("parse bootc status: %w", err)
	}
	return &st, nil
}

// CurrentImage returns the image reference the host currently tracks.
func (c *Client) CurrentImage(ctx context.Context) (string, error) {
	st, err := c.Status(ctx)
	if err != nil {
		return "", err
	}
	if st.Spec.Image == nil || st.Spec.Image.Image == "" {
		return "", fmt.Errorf("no image in bootc status: host does not track a container image")
	}
	img := st.Spec.Image.Image
	logging.Logger().WithField("image", img).Debug("current bootc image")
	return img, nil
}

// Switch rebases the host to the target image via `bootc switch`.
// Command output streams to the terminal; the reboot into the new image is
// left to the user or the scheduler.
func (c *Client) Switch(ctx context.Context, target string) error {
	ctx, cancel := context.WithTimeout(ctx, switchTimeout)
	defer cancel()

	logging.Logger().WithField("image", target).Info("rebasing via bootc switch")
	name, args := c.command("switch", target)
	if err := c.runner.Run(ctx, name, args...); err != nil {
		return fmt.Errorf("bootc switch %s: %w", target, err)
	}
	return nil
}

// IsBootcSystem reports whether the host is managed by bootc: the command
// exists and status succeeds.
func (c *Client) IsBootcSystem(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	name, args := c.command("status")
	return c.runner.RunQuiet(ctx, name, args...) == nil
}

// CheckPrivileges reports whether bootc invocations can be expected to
// succeed: running as root, or sudo available when enabled.
func (c *Client) CheckPrivileges() bool {
	if geteuid() == 0 {
		return true
	}
	if !c.useSudo {
		return false
	}
	_, err := lookPath("sudo")
	return err == nil
}

// wrapCommandError folds captured stderr into the error and points at the
// usual culprit when bootc refuses to run unprivileged.
func (c *Client) wrapCommandError(what string, err error) error {
	detail := stderrOf(err)
	if detail == "" {
		detail = err.Error()
	}
	if strings.Contains(detail, "root user") || strings.Contains(detail, "root privilege") {
		return fmt.Errorf("%s: %w (bootc requires root privileges; run as root or keep sudo enabled)", what, err)
	}
	if stderr := stderrOf(err); stderr != "" {
		return fmt.Errorf("%s: %w: %s", what, err, stderr)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func stderrOf(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return strings.TrimSpace(string(exitErr.Stderr))
	}
	return ""
}
