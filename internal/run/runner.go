// Where: internal/run/runner.go
// What: External command execution helpers.
// Why: Provide a minimal, testable interface for invoking host commands.
package run

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CommandRunner defines the interface for executing external commands.
// Implementations run host commands such as bootc, notify-send, and wall.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
	RunOutput(ctx context.Context, name string, args ...string) ([]byte, error)
	RunQuiet(ctx context.Context, name string, args ...string) error
	RunInput(ctx context.Context, input string, name string, args ...string) error
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

// Run executes a command with inherited stdout/stderr.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// RunOutput executes a command and returns its stdout. On failure the
// captured stderr is available via exec.ExitError.
func (ExecRunner) RunOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Output()
}

// RunQuiet executes a command discarding its output. On failure the combined
// output is folded into the returned error.
func (ExecRunner) RunQuiet(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return wrapOutputError(name, out, err)
	}
	return nil
}

// RunInput executes a command feeding input on stdin, discarding its output.
// Used for wall and systemd-cat which read the message from stdin.
func (ExecRunner) RunInput(ctx context.Context, input string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return wrapOutputError(name, out, err)
	}
	return nil
}

func wrapOutputError(name string, out []byte, err error) error {
	output := strings.TrimSpace(string(out))
	if output == "" {
		return fmt.Errorf("%s: %w", name, err)
	}
	return fmt.Errorf("%s: %w: %s", name, err, output)
}
