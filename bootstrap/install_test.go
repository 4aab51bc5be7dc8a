package bootstrap

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/kbukum/dotfiles/assets"
	"github.com/kbukum/dotfiles/config"
	"github.com/kbukum/dotfiles/errors"
	"github.com/kbukum/dotfiles/logger"
	"github.com/kbukum/dotfiles/observability"
	"github.com/kbukum/dotfiles/process/processtest"
)

func newTestSettings() *config.Config {
	cfg := &config.Config{
		PackageManager: config.PackageManagerPacman,
		Packages:       []string{"git"},
		Directories:    []string{"some/dir"},
		Assets:         []config.AssetLink{{Name: "scripts/test.sh", Target: "bin/test.sh"}},
	}
	cfg.ApplyDefaults()
	return cfg
}

func newTestInstaller(t *testing.T, exec *processtest.Executor) (*Installer, string) {
	t.Helper()
	home := t.TempDir()
	inst := NewInstaller(newTestSettings(), exec)
	inst.Logger = logger.Nop()
	inst.HomeDir = func() (string, error) { return home, nil }
	inst.Assets = assets.New(fstest.MapFS{
		"scripts/test.sh": {Data: []byte("#!/bin/bash\n\necho \"this is a test shell script\"")},
	})
	return inst, home
}

func stepStatuses(r *Report) string {
	var parts []string
	for _, s := range r.Steps {
		parts = append(parts, s.Name+"="+s.Status)
	}
	return strings.Join(parts, ",")
}

func TestInstallRunsAllSteps(t *testing.T) {
	exec := processtest.NewExecutor()
	inst, home := newTestInstaller(t, exec)

	report, err := inst.Install(context.Background())
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	want := "create-dirs=ok,sync-repos=ok,install-packages=ok,extract-assets=ok"
	if got := stepStatuses(report); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if report.Failed() {
		t.Error("expected report without failures")
	}

	calls := exec.Calls()
	wantCalls := []string{"pacman -Sy", "pacman -S git --noconfirm"}
	if strings.Join(calls, "|") != strings.Join(wantCalls, "|") {
		t.Errorf("expected calls %v, got %v", wantCalls, calls)
	}

	if info, err := os.Stat(filepath.Join(home, "some", "dir")); err != nil || !info.IsDir() {
		t.Errorf("expected directory to exist: %v", err)
	}
	info, err := os.Stat(filepath.Join(home, "bin", "test.sh"))
	if err != nil {
		t.Fatalf("expected extracted asset: %v", err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("expected 0755 for script, got %v", info.Mode().Perm())
	}
}

func TestInstallPackageManagers(t *testing.T) {
	tests := []struct {
		manager string
		want    []string
	}{
		{"pacman", []string{"pacman -Sy", "pacman -S git curl --noconfirm"}},
		{"apt", []string{"apt-get update", "apt-get install -y git curl"}},
		{"brew", []string{"brew update", "brew install git curl"}},
		{"dnf", []string{"dnf makecache", "dnf install -y git curl"}},
	}
	for _, tt := range tests {
		t.Run(tt.manager, func(t *testing.T) {
			exec := processtest.NewExecutor()
			inst, _ := newTestInstaller(t, exec)
			inst.Config.PackageManager = tt.manager
			inst.Config.Packages = []string{"git", "curl"}

			if _, err := inst.Install(context.Background()); err != nil {
				t.Fatalf("Install failed: %v", err)
			}
			if got := strings.Join(exec.Calls(), "|"); got != strings.Join(tt.want, "|") {
				t.Errorf("expected %v, got %v", tt.want, exec.Calls())
			}
		})
	}
}

func TestInstallSyncFailureSkipsRemainingSteps(t *testing.T) {
	exec := processtest.NewExecutor().
		On("pacman -Sy", processtest.Response{ExitCode: 1, Stderr: "error: you cannot perform this operation unless you are root."})
	inst, home := newTestInstaller(t, exec)

	report, err := inst.Install(context.Background())
	if err == nil {
		t.Fatal("expected error from failed sync")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeCommandFailed {
		t.Fatalf("expected COMMAND_FAILED, got %v", err)
	}
	if appErr.Details["status"] != "exit status 1" {
		t.Errorf("expected status detail, got %v", appErr.Details["status"])
	}
	if !strings.Contains(appErr.Details["stderr"].(string), "root") {
		t.Errorf("expected stderr detail, got %v", appErr.Details["stderr"])
	}

	want := "create-dirs=ok,sync-repos=failed,install-packages=skipped,extract-assets=skipped"
	if got := stepStatuses(report); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if exec.Called("-S git") {
		t.Error("install should not run after a failed sync")
	}
	if _, err := os.Stat(filepath.Join(home, "bin", "test.sh")); !os.IsNotExist(err) {
		t.Error("assets should not be extracted after a failed sync")
	}
	if report.Count(observability.StepStatusSkipped) != 2 {
		t.Errorf("expected 2 skipped steps, got %d", report.Count(observability.StepStatusSkipped))
	}
}

func TestInstallExecutionError(t *testing.T) {
	exec := processtest.NewExecutor().
		On("pacman -Sy", processtest.Response{Err: stderrors.New("executable file not found in $PATH")})
	inst, _ := newTestInstaller(t, exec)

	_, err := inst.Install(context.Background())
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeExecutionFailed {
		t.Fatalf("expected EXECUTION_FAILED, got %v", err)
	}
	if errors.ExitCode(err) != 127 {
		t.Errorf("expected exit code 127, got %d", errors.ExitCode(err))
	}
}

func TestInstallCanceledContext(t *testing.T) {
	exec := processtest.NewExecutor()
	inst, _ := newTestInstaller(t, exec)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := inst.Install(ctx)
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeCanceled {
		t.Fatalf("expected CANCELED, got %v", err)
	}
	if report.Count(observability.StepStatusSkipped) != len(inst.Steps()) {
		t.Errorf("expected every step skipped, got %s", stepStatuses(report))
	}
	if len(exec.Calls()) != 0 {
		t.Errorf("expected no commands, got %v", exec.Calls())
	}
}

func TestInstallHomeUnavailable(t *testing.T) {
	inst, _ := newTestInstaller(t, processtest.NewExecutor())
	inst.HomeDir = func() (string, error) { return "", stderrors.New("$HOME is not defined") }

	report, err := inst.Install(context.Background())
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if report.Steps[0].Status != observability.StepStatusFailed {
		t.Errorf("expected create-dirs to fail, got %s", report.Steps[0].Status)
	}
}

func TestInstallDirectoryBlockedByFile(t *testing.T) {
	inst, home := newTestInstaller(t, processtest.NewExecutor())
	if err := os.MkdirAll(filepath.Join(home, "some"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, "some", "dir"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := inst.Install(context.Background())
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeStorage {
		t.Fatalf("expected STORAGE_ERROR, got %v", err)
	}
}

func TestInstallNoPackages(t *testing.T) {
	exec := processtest.NewExecutor()
	inst, _ := newTestInstaller(t, exec)
	inst.Config.Packages = nil

	if _, err := inst.Install(context.Background()); err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	if got := exec.Calls(); len(got) != 1 || got[0] != "pacman -Sy" {
		t.Errorf("expected only the sync call, got %v", got)
	}
}

func TestInstallMissingAsset(t *testing.T) {
	inst, _ := newTestInstaller(t, processtest.NewExecutor())
	inst.Config.Assets = []config.AssetLink{{Name: "nope.sh", Target: "bin/nope.sh"}}

	report, err := inst.Install(context.Background())
	if err == nil {
		t.Fatal("expected error for missing asset")
	}
	if !stderrors.Is(err, assets.ErrNotFound) {
		t.Errorf("expected assets.ErrNotFound, got %v", err)
	}
	if errors.ExitCode(err) != 66 {
		t.Errorf("expected exit code 66, got %d", errors.ExitCode(err))
	}
	if last := report.Steps[len(report.Steps)-1]; last.Status != observability.StepStatusFailed {
		t.Errorf("expected extract-assets to fail, got %s", last.Status)
	}
}

func TestInstallDryRun(t *testing.T) {
	exec := processtest.NewExecutor()
	inst, home := newTestInstaller(t, exec)
	inst.DryRun = true

	report, err := inst.Install(context.Background())
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	if !report.DryRun {
		t.Error("expected report marked as dry run")
	}
	if len(exec.Calls()) != 0 {
		t.Errorf("expected no commands in dry run, got %v", exec.Calls())
	}
	if _, err := os.Stat(filepath.Join(home, "some")); !os.IsNotExist(err) {
		t.Error("expected no directories in dry run")
	}
}

func TestInstallUnsupportedPackageManager(t *testing.T) {
	inst, _ := newTestInstaller(t, processtest.NewExecutor())
	inst.Config.PackageManager = "zypper"

	_, err := inst.Install(context.Background())
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeInvalidInput {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestReportCounts(t *testing.T) {
	r := &Report{Steps: []StepReport{
		{Status: observability.StepStatusOK},
		{Status: observability.StepStatusOK},
		{Status: observability.StepStatusSkipped},
	}}
	if r.Failed() {
		t.Error("expected no failure")
	}
	if r.Count(observability.StepStatusOK) != 2 {
		t.Errorf("expected 2 ok, got %d", r.Count(observability.StepStatusOK))
	}
}
