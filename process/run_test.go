//go:build !windows

package process_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/dotfiles/process"
)

func TestRunEcho(t *testing.T) {
	result, err := process.Run(context.Background(), process.NewCommand("echo", "hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success() {
		t.Fatalf("expected success, got %q", result.Status)
	}
	if result.Stdout != "hello\n" {
		t.Fatalf("expected %q, got %q", "hello\n", result.Stdout)
	}
	if result.Stderr != "" {
		t.Fatalf("expected empty stderr, got %q", result.Stderr)
	}
	if result.Status != "exit status 0" {
		t.Fatalf("expected status 'exit status 0', got %q", result.Status)
	}
	if result.RunID == "" {
		t.Fatal("expected a run id")
	}
}

func TestRunNotACommand(t *testing.T) {
	result, err := process.Run(context.Background(), process.NewCommand("not a command"))
	if err == nil {
		t.Fatal("expected error for unknown program")
	}
	if result != nil {
		t.Fatalf("expected nil result, got %+v", result)
	}
	var execErr *process.ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected *ExecError, got %T", err)
	}
	if execErr.Program != "not a command" {
		t.Fatalf("unexpected program %q", execErr.Program)
	}
	msg := err.Error()
	if !strings.Contains(msg, "failed to execute command not a command") {
		t.Fatalf("missing failure message in %q", msg)
	}
	if !strings.Contains(msg, "not found") {
		t.Fatalf("missing 'not found' in %q", msg)
	}
}

func TestMustRunPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "failed to execute command not a command") {
			t.Fatalf("unexpected panic value %v", r)
		}
	}()
	process.MustRun(context.Background(), process.NewCommand("not a command"))
}

func TestRunEmptyProgram(t *testing.T) {
	_, err := process.Run(context.Background(), process.NewCommand(""))
	var execErr *process.ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected *ExecError, got %v", err)
	}
}

func TestRunExitCode(t *testing.T) {
	result, err := process.Run(context.Background(), process.NewCommand("sh", "-c", "exit 42"))
	if err != nil {
		t.Fatalf("non-zero exit should not be an error: %v", err)
	}
	if result.Success() {
		t.Fatal("expected failure")
	}
	if result.ExitCode != 42 {
		t.Fatalf("expected exit code 42, got %d", result.ExitCode)
	}
	if result.Status != "exit status 42" {
		t.Fatalf("unexpected status %q", result.Status)
	}
}

func TestRunStderr(t *testing.T) {
	result, err := process.Run(context.Background(), process.NewCommand("sh", "-c", "echo oops >&2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Stderr != "oops\n" {
		t.Fatalf("expected 'oops' on stderr, got %q", result.Stderr)
	}
	if result.Stdout != "" {
		t.Fatalf("expected empty stdout, got %q", result.Stdout)
	}
}

func TestRunLossyDecode(t *testing.T) {
	result, err := process.Run(context.Background(), process.NewCommand("sh", "-c", `printf '\377ok'`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Stdout != "\uFFFDok" {
		t.Fatalf("expected replacement character, got %q", result.Stdout)
	}
}

func TestRunArgumentsVerbatim(t *testing.T) {
	result, err := process.Run(context.Background(), process.NewCommand("echo", "$HOME", "*", "a b"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Stdout != "$HOME * a b\n" {
		t.Fatalf("arguments were expanded: %q", result.Stdout)
	}
}

func TestRunContextCancelInterrupts(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	result, err := process.Run(ctx, process.NewCommand("sleep", "10"))
	if err != nil {
		t.Fatalf("signal exit should not be an error: %v", err)
	}
	if result.Success() {
		t.Fatal("expected interrupted process to fail")
	}
	if result.Status != "signal: interrupt" {
		t.Fatalf("expected interrupt, got %q", result.Status)
	}
	if result.Duration > 5*time.Second {
		t.Fatalf("process took too long to stop: %v", result.Duration)
	}
}

func TestRunCanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := process.Run(ctx, process.NewCommand("echo")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunDuration(t *testing.T) {
	result, err := process.Run(context.Background(), process.NewCommand("sleep", "0.1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Duration < 50*time.Millisecond {
		t.Fatalf("duration too short: %v", result.Duration)
	}
}

func TestRunEnvAndDir(t *testing.T) {
	dir := t.TempDir()
	cmd := process.NewCommand("sh", "-c", "echo $MY_TEST_VAR; pwd").
		WithEnv("MY_TEST_VAR=hello123").
		WithDir(dir)

	result, err := process.Run(context.Background(), cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(result.Stdout), "\n")
	if len(lines) != 2 || lines[0] != "hello123" {
		t.Fatalf("unexpected output %q", result.Stdout)
	}
	if !strings.HasSuffix(lines[1], dir) && !strings.HasSuffix(dir, lines[1]) {
		t.Fatalf("expected working directory %q, got %q", dir, lines[1])
	}
}

func TestCommandReusable(t *testing.T) {
	cmd := process.NewCommand("echo", "again")
	first := process.MustRun(context.Background(), cmd)
	second := process.MustRun(context.Background(), cmd)
	if first.Stdout != second.Stdout {
		t.Fatalf("outputs differ: %q vs %q", first.Stdout, second.Stdout)
	}
	if first.RunID == second.RunID {
		t.Fatal("each execution should get its own run id")
	}
}
