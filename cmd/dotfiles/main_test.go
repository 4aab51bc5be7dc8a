package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/dotfiles/errors"
	"github.com/kbukum/dotfiles/version"
)

// isolate points HOME and XDG_CONFIG_HOME at temp dirs and runs the test
// from an empty working directory so no real settings are picked up.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Chdir(t.TempDir())
	return home
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, version.Short()) {
		t.Errorf("expected %q in output, got %q", version.Short(), out)
	}
}

func TestAssetsList(t *testing.T) {
	out, err := execute(t, "assets", "list")
	if err != nil {
		t.Fatalf("assets list failed: %v", err)
	}
	for _, want := range []string{"bashrc", "scripts/test.sh", "templates/config.toml"} {
		if !strings.Contains(out, want+"\n") {
			t.Errorf("expected %q in listing:\n%s", want, out)
		}
	}
}

func TestAssetsListMatch(t *testing.T) {
	out, err := execute(t, "assets", "list", "--match", "scripts/*.sh")
	if err != nil {
		t.Fatalf("assets list failed: %v", err)
	}
	if out != "scripts/bootstrap.sh\nscripts/test.sh\n" {
		t.Errorf("unexpected listing:\n%s", out)
	}
}

func TestAssetsListBadPattern(t *testing.T) {
	_, err := execute(t, "assets", "list", "--match", "[")
	if errors.ExitCode(err) != 64 {
		t.Errorf("expected exit code 64, got %d (%v)", errors.ExitCode(err), err)
	}
}

func TestAssetsShow(t *testing.T) {
	out, err := execute(t, "assets", "show", "scripts/test.sh")
	if err != nil {
		t.Fatalf("assets show failed: %v", err)
	}
	if out != "#!/bin/bash\n\necho \"this is a test shell script\"" {
		t.Errorf("unexpected content %q", out)
	}
}

func TestAssetsShowMissing(t *testing.T) {
	_, err := execute(t, "assets", "show", "does-not-exist.sh")
	if errors.ExitCode(err) != 66 {
		t.Errorf("expected exit code 66, got %d (%v)", errors.ExitCode(err), err)
	}
}

func TestConfigInit(t *testing.T) {
	home := isolate(t)
	store := filepath.Join(home, ".config", "dotfiles", "dotfiles.toml")

	out, err := execute(t, "config", "init")
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(out, store) {
		t.Errorf("expected store path in output, got %q", out)
	}
	if _, err := os.Stat(store); err != nil {
		t.Fatalf("expected store to be written: %v", err)
	}

	if _, err := execute(t, "config", "init"); errors.ExitCode(err) != 64 {
		t.Errorf("expected refusal to overwrite, got %v", err)
	}
	if _, err := execute(t, "config", "init", "--force"); err != nil {
		t.Errorf("expected --force to overwrite, got %v", err)
	}
}

func TestConfigInitStoreFlag(t *testing.T) {
	isolate(t)
	store := filepath.Join(t.TempDir(), "nested", "store.toml")
	if _, err := execute(t, "--store", store, "config", "init"); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if _, err := os.Stat(store); err != nil {
		t.Errorf("expected store at --store path: %v", err)
	}
}

func TestConfigShow(t *testing.T) {
	isolate(t)
	settings := writeSettings(t, "package_manager: apt\npackages: [git, curl]\n")
	t.Setenv("DOTFILES_ENVIRONMENT", "staging")

	if _, err := execute(t, "--config", settings, "config", "init"); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	out, err := execute(t, "--config", settings, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	for _, want := range []string{
		"package_manager: apt",
		"- curl",
		"environment: staging",
		"duration: 3s",
		"api_key: de****lt",
		"version: 3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestConfigShowDoesNotCreateStore(t *testing.T) {
	home := isolate(t)
	if _, err := execute(t, "config", "show"); err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".config", "dotfiles", "dotfiles.toml")); !os.IsNotExist(err) {
		t.Error("config show must not write the store")
	}
}

func TestInvalidSettings(t *testing.T) {
	isolate(t)
	_, err := execute(t, "--log-format", "xml", "config", "show")
	if errors.ExitCode(err) != 64 {
		t.Errorf("expected exit code 64, got %d (%v)", errors.ExitCode(err), err)
	}
}

func TestInstallDryRun(t *testing.T) {
	home := isolate(t)
	out, err := execute(t, "install", "--dry-run")
	if err != nil {
		t.Fatalf("install --dry-run failed: %v", err)
	}
	if !strings.Contains(out, "(dry run)") || !strings.Contains(out, "All steps succeeded (4/4)") {
		t.Errorf("unexpected summary:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(home, "some")); !os.IsNotExist(err) {
		t.Error("dry run must not create directories")
	}
	if _, err := os.Stat(filepath.Join(home, ".config", "dotfiles", "dotfiles.toml")); !os.IsNotExist(err) {
		t.Error("dry run must not write the store")
	}
}

func TestUnknownCommand(t *testing.T) {
	if _, err := execute(t, "frobnicate"); err == nil {
		t.Error("expected error for unknown command")
	}
}
