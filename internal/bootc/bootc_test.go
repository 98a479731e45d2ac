// Where: internal/bootc/bootc_test.go
// What: Tests for the bootc client.
// Why: Ensure argv construction, status parsing, and privilege hints are right.
package bootc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

type fakeRunner struct {
	calls     [][]string
	output    []byte
	outputErr error
	runErr    error
	quietErr  error
}

func (f *fakeRunner) record(name string, args []string) {
	f.calls = append(f.calls, append([]string{name}, args...))
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.record(name, args)
	return f.runErr
}

func (f *fakeRunner) RunOutput(_ context.Context, name string, args ...string) ([]byte, error) {
	f.record(name, args)
	return f.output, f.outputErr
}

func (f *fakeRunner) RunQuiet(_ context.Context, name string, args ...string) error {
	f.record(name, args)
	return f.quietErr
}

func (f *fakeRunner) RunInput(_ context.Context, _ string, name string, args ...string) error {
	f.record(name, args)
	return nil
}

const statusJSON = `{
  "apiVersion": "org.containers.bootc/v1",
  "kind": "BootcHost",
  "spec": {
    "image": {"image": "ghcr.io/ublue-os/aurora-dx-asus:stable-daily", "transport": "registry"}
  },
  "status": {
    "booted": {
      "image": {
        "image": {"image": "ghcr.io/ublue-os/aurora-dx-asus:stable-daily", "transport": "registry"},
        "version": "42.20250601"
      },
      "pinned": false
    },
    "staged": null,
    "rollback": {
      "image": {
        "image": {"image": "ghcr.io/ublue-os/aurora-dx-asus:stable-daily", "transport": "registry"},
        "version": "42.20250525"
      },
      "pinned": false
    }
  }
}`

func TestCurrentImageUsesSudo(t *testing.T) {
	runner := &fakeRunner{output: []byte(statusJSON)}
	client := NewClient(runner, true)

	img, err := client.CurrentImage(context.Background())
	if err != nil {
		t.Fatalf("CurrentImage failed: %v", err)
	}
	if img != "ghcr.io/ublue-os/aurora-dx-asus:stable-daily" {
		t.Errorf("unexpected image: %s", img)
	}
	want := []string{"sudo", "bootc", "status", "--json"}
	if len(runner.calls) != 1 || !reflect.DeepEqual(runner.calls[0], want) {
		t.Errorf("expected argv %v, got %v", want, runner.calls)
	}
}

func TestCurrentImageWithoutSudo(t *testing.T) {
	runner := &fakeRunner{output: []byte(statusJSON)}
	client := NewClient(runner, false)

	if _, err := client.CurrentImage(context.Background()); err != nil {
		t.Fatalf("CurrentImage failed: %v", err)
	}
	want := []string{"bootc", "status", "--json"}
	if !reflect.DeepEqual(runner.calls[0], want) {
		t.Errorf("expected argv %v, got %v", want, runner.calls[0])
	}
}

func TestCurrentImageMissingFromStatus(t *testing.T) {
	runner := &fakeRunner{output: []byte(`{"spec": {}}`)}
	client := NewClient(runner, true)

	_, err := client.CurrentImage(context.Background())
	if err == nil {
		t.Fatal("expected an error when status lacks an image")
	}
	if !strings.Contains(err.Error(), "no image") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCurrentImagePrivilegeHint(t *testing.T) {
	runner := &fakeRunner{outputErr: errors.New("this command requires root privilege")}
	client := NewClient(runner, false)

	_, err := client.CurrentImage(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "root privileges") {
		t.Errorf("expected a privilege hint, got: %v", err)
	}
}

func TestStatusParsesDeployments(t *testing.T) {
	runner := &fakeRunner{output: []byte(statusJSON)}
	client := NewClient(runner, true)

	st, err := client.Status(context.Background())
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if st.Status.Booted == nil || st.Status.Booted.Image == nil {
		t.Fatal("expected a booted deployment")
	}
	if st.Status.Booted.Image.Version != "42.20250601" {
		t.Errorf("unexpected booted version: %s", st.Status.Booted.Image.Version)
	}
	if st.Status.Staged != nil {
		t.Error("expected no staged deployment")
	}
	if st.Status.Rollback == nil {
		t.Error("expected a rollback deployment")
	}
}

func TestStatusRejectsMalformedJSON(t *testing.T) {
	runner := &fakeRunner{output: []byte("not json")}
	client := NewClient(runner, true)

	if _, err := client.Status(context.Background()); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestSwitch(t *testing.T) {
	runner := &fakeRunner{}
	client := NewClient(runner, true)

	err := client.Switch(context.Background(), "ghcr.io/ublue-os/aurora-hwe:stable-daily")
	if err != nil {
		t.Fatalf("Switch failed: %v", err)
	}
	want := []string{"sudo", "bootc", "switch", "ghcr.io/ublue-os/aurora-hwe:stable-daily"}
	if len(runner.calls) != 1 || !reflect.DeepEqual(runner.calls[0], want) {
		t.Errorf("expected argv %v, got %v", want, runner.calls)
	}
}

func TestSwitchFailure(t *testing.T) {
	runner := &fakeRunner{runErr: errors.New("exit status 1")}
	client := NewClient(runner, false)

	err := client.Switch(context.Background(), "ghcr.io/ublue-os/aurora-hwe:stable")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "aurora-hwe") {
		t.Errorf("expected the target in the error, got: %v", err)
	}
}

func TestIsBootcSystem(t *testing.T) {
	client := NewClient(&fakeRunner{}, false)
	if !client.IsBootcSystem(context.Background()) {
		t.Error("expected a passing status probe to report a bootc system")
	}

	client = NewClient(&fakeRunner{quietErr: errors.New("command not found")}, false)
	if client.IsBootcSystem(context.Background()) {
		t.Error("expected a failing status probe to report a non-bootc system")
	}
}

func TestCheckPrivileges(t *testing.T) {
	oldGeteuid, oldLookPath := geteuid, lookPath
	defer func() { geteuid, lookPath = oldGeteuid, oldLookPath }()

	geteuid = func() int { return 0 }
	client := NewClient(&fakeRunner{}, false)
	if !client.CheckPrivileges() {
		t.Error("root must pass the privilege check")
	}

	geteuid = func() int { return 1000 }
	if client.CheckPrivileges() {
		t.Error("unprivileged without sudo must fail the privilege check")
	}

	client = NewClient(&fakeRunner{}, true)
	lookPath = func(string) (string, error) { return "/usr/bin/sudo", nil }
	if !client.CheckPrivileges() {
		t.Error("available sudo must pass the privilege check")
	}

	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	if client.CheckPrivileges() {
		t.Error("missing sudo must fail the privilege check")
	}
}

func TestReadOSRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "os-release")
	content := `# Aurora
NAME="Aurora"
ID=aurora
VERSION_ID=42
PRETTY_NAME="Aurora 42 (ASUS Edition)"
ANSI_COLOR="0;38;2;138;43;226"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	rel, err := ReadOSRelease(path)
	if err != nil {
		t.Fatalf("ReadOSRelease failed: %v", err)
	}
	if rel.ID != "aurora" {
		t.Errorf("unexpected ID: %s", rel.ID)
	}
	if rel.PrettyName != "Aurora 42 (ASUS Edition)" {
		t.Errorf("unexpected PRETTY_NAME: %s", rel.PrettyName)
	}
	if rel.VersionID != "42" {
		t.Errorf("unexpected VERSION_ID: %s", rel.VersionID)
	}
}

func TestReadOSReleaseMissingFile(t *testing.T) {
	if _, err := ReadOSRelease(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
