// Where: internal/app/status.go
// What: Status command.
// Why: Show the booted, staged, and rollback deployments at a glance.
package app

import (
	"context"
	"errors"
	"io"

	"github.com/ublue-os/eol-rebaser/internal/bootc"
	"github.com/ublue-os/eol-rebaser/internal/meta"
	"github.com/ublue-os/eol-rebaser/internal/ui"
)

// runStatus executes the '--status' mode.
func runStatus(cli CLI, deps Dependencies, out io.Writer) int {
	ctx := context.Background()
	console := ui.New(out)

	if deps.BootcFactory == nil {
		return exitWithError(out, errors.New("status: bootc client not configured"))
	}
	client := deps.BootcFactory(!cli.NoSudo)

	if !client.IsBootcSystem(ctx) {
		return exitWithError(out, errors.New("this does not appear to be a bootc system"))
	}

	status, err := client.Status(ctx)
	if err != nil {
		return exitWithError(out, err)
	}

	console.Header("🖥️", "System status")
	if osRelease, err := bootc.ReadOSRelease(meta.OSReleasePath); err == nil && osRelease.PrettyName != "" {
		console.Item("OS", osRelease.PrettyName)
	}
	if status.Spec.Image != nil && status.Spec.Image.Image != "" {
		console.Item("Image", status.Spec.Image.Image)
	}
	if booted := status.Status.Booted; booted != nil && booted.Image != nil {
		console.Item("Booted", deploymentLine(booted))
	}
	if staged := status.Status.Staged; staged != nil && staged.Image != nil {
		console.Item("Staged", deploymentLine(staged))
	}
	if rollback := status.Status.Rollback; rollback != nil && rollback.Image != nil {
		console.Item("Rollback", deploymentLine(rollback))
	}
	return 0
}

func deploymentLine(d *bootc.Deployment) string {
	line := d.Image.Image.Image
	if d.Image.Version != "" {
		line += " (" + d.Image.Version + ")"
	}
	return line
}
