//go:build !windows

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeTools puts executables with the given names first on PATH.
func fakeTools(t *testing.T, names ...string) {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		script := "#!/bin/sh\necho \"" + n + " $*\"\n"
		if err := os.WriteFile(filepath.Join(dir, n), []byte(script), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestInstallWithFakePackageManager(t *testing.T) {
	home := isolate(t)
	fakeTools(t, "pacman")
	settings := writeSettings(t, `
packages: [git]
directories: [src/dotfiles]
assets:
  - name: gitconfig
    target: .gitconfig
`)

	out, err := execute(t, "--config", settings, "install")
	if err != nil {
		t.Fatalf("install failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "All steps succeeded (4/4)") {
		t.Errorf("unexpected summary:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(home, "src", "dotfiles")); err != nil {
		t.Errorf("expected directory: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".gitconfig")); err != nil {
		t.Errorf("expected extracted asset: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".config", "dotfiles", "dotfiles.toml")); err != nil {
		t.Errorf("expected store to be created on first install: %v", err)
	}
}

func TestInstallFailingPackageManager(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pacman"), []byte("#!/bin/sh\necho denied >&2\nexit 1\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	out, err := execute(t, "install")
	if err == nil {
		t.Fatal("expected install to fail")
	}
	if !strings.Contains(out, "sync-repos (failed") || !strings.Contains(out, "install-packages (skipped)") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}

func TestProbeCommand(t *testing.T) {
	isolate(t)
	settings := writeSettings(t, "probe:\n  program: sleep\n  args: [\"30\"]\n")

	out, err := execute(t, "--config", settings, "test", "--duration", "50ms")
	if err != nil {
		t.Fatalf("test failed: %v", err)
	}
	if !strings.Contains(out, "probe sleep 30: signal: interrupt") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestDoctorCommand(t *testing.T) {
	isolate(t)
	fakeTools(t, "pacman", "ping")
	if _, err := execute(t, "config", "init"); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "doctor")
	if err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, out)
	}
	for _, want := range []string{"home: up", "package-manager: up", "probe: up", "store: up"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestDoctorCommandMissingPackageManager(t *testing.T) {
	isolate(t)
	t.Setenv("PATH", t.TempDir())

	out, err := execute(t, "doctor")
	if err == nil {
		t.Fatalf("expected doctor to fail:\n%s", out)
	}
	if !strings.Contains(out, "package-manager: down") {
		t.Errorf("expected package manager down:\n%s", out)
	}
}
