//go:build !windows

package process_test

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/dotfiles/logger"
	"github.com/kbukum/dotfiles/observability"
	"github.com/kbukum/dotfiles/process"
)

func TestRunnerRun(t *testing.T) {
	r := process.NewRunner(process.WithLogger(logger.Nop()))
	res, err := r.Run(context.Background(), process.NewCommand("echo", "hi"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Stdout != "hi\n" {
		t.Fatalf("unexpected stdout %q", res.Stdout)
	}
}

func TestRunnerDryRun(t *testing.T) {
	r := process.NewRunner(process.WithLogger(logger.Nop()), process.WithDryRun(true))
	res, err := r.Run(context.Background(), process.NewCommand("not a command"))
	if err != nil {
		t.Fatalf("dry run should not execute: %v", err)
	}
	if !res.Success() {
		t.Fatal("dry run should report success")
	}
}

func TestRunnerRunExecError(t *testing.T) {
	r := process.NewRunner(process.WithLogger(logger.Nop()))
	_, err := r.Run(context.Background(), process.NewCommand("not a command"))
	var execErr *process.ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected *ExecError, got %v", err)
	}
}

func TestRunnerStreamAndKill(t *testing.T) {
	r := process.NewRunner(process.WithLogger(logger.Nop()))
	ctx := context.Background()
	h, err := r.Stream(ctx, process.NewCommand("sleep", "5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Kill(ctx, h); err != nil {
		t.Fatalf("kill failed: %v", err)
	}
	if _, err := h.Wait(ctx); err != nil {
		t.Fatalf("wait failed: %v", err)
	}
	if err := r.Kill(ctx, h); !errors.Is(err, process.ErrProcessDone) {
		t.Fatalf("expected ErrProcessDone, got %v", err)
	}
}

func recordSpans(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return exporter
}

func TestRunnerSpans(t *testing.T) {
	exporter := recordSpans(t)
	r := process.NewRunner(process.WithLogger(logger.Nop()))

	if _, err := r.Run(context.Background(), process.NewCommand("echo", "hi")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Run(context.Background(), process.NewCommand("not-a-command")); err == nil {
		t.Fatal("expected exec error")
	}

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	ok, failed := spans[0], spans[1]
	if ok.Name != observability.SpanProcessRun {
		t.Errorf("unexpected span name %q", ok.Name)
	}
	attrs := map[string]bool{}
	for _, kv := range ok.Attributes {
		attrs[string(kv.Key)] = true
	}
	for _, key := range []string{observability.AttrProgram, observability.AttrRunID, observability.AttrExitCode} {
		if !attrs[key] {
			t.Errorf("missing span attribute %s", key)
		}
	}
	if failed.Status.Code != codes.Error {
		t.Errorf("expected error status on exec failure, got %v", failed.Status.Code)
	}
	if len(failed.Events) != 1 {
		t.Errorf("expected recorded error event, got %d", len(failed.Events))
	}
}
