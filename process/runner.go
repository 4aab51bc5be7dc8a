package process

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/dotfiles/logger"
	"github.com/kbukum/dotfiles/observability"
)

// Metric status labels.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusError   = "error"
)

// Runner executes commands with tracing, metrics and context-aware logging
// layered over Run and Stream. The zero value is not usable; use NewRunner.
type Runner struct {
	log     *logger.Logger
	metrics *observability.Metrics
	dryRun  bool
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger used for execution events.
func WithLogger(l *logger.Logger) RunnerOption {
	return func(r *Runner) { r.log = l }
}

// WithMetrics records executions on m. A nil m disables metrics.
func WithMetrics(m *observability.Metrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// WithDryRun makes Run log commands and report success without executing.
func WithDryRun(dryRun bool) RunnerOption {
	return func(r *Runner) { r.dryRun = dryRun }
}

// NewRunner creates a Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{log: logger.Get("process")}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes cmd like the package-level Run, inside a span.
func (r *Runner) Run(ctx context.Context, cmd Command) (*Result, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanProcessRun, trace.WithAttributes(
		attribute.String(observability.AttrProgram, cmd.Program()),
		attribute.StringSlice(observability.AttrArgs, cmd.Args()),
	))
	defer span.End()
	log := r.log.WithContext(ctx)

	if r.dryRun {
		log.Info("dry run: "+cmd.String(), logger.Fields(logger.FieldProgram, cmd.Program()))
		return &Result{Command: cmd, Status: "dry run"}, nil
	}

	start := time.Now()
	res, err := Run(ctx, cmd)
	if err != nil {
		observability.SetSpanError(ctx, err)
		r.metrics.RecordRun(ctx, cmd.Program(), StatusError, time.Since(start))
		log.Error("command could not be executed", logger.ErrorFields(cmd.String(), err))
		return res, err
	}

	observability.SetSpanAttribute(ctx, observability.AttrRunID, res.RunID)
	observability.SetSpanAttribute(ctx, observability.AttrExitCode, res.ExitCode)
	status := StatusSuccess
	if !res.Success() {
		status = StatusFailed
		span.SetStatus(codes.Error, res.Status)
	}
	r.metrics.RecordRun(ctx, cmd.Program(), status, res.Duration)
	log.Debug("command finished", logger.Fields(
		logger.FieldRunID, res.RunID,
		logger.FieldProgram, cmd.Program(),
		logger.FieldStatus, res.Status,
		logger.FieldDuration, res.Duration.Milliseconds(),
	))
	return res, nil
}

// Stream starts cmd like the package-level Stream and records the spawn.
func (r *Runner) Stream(ctx context.Context, cmd Command) (*Handle, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanProcessStream, trace.WithAttributes(
		attribute.String(observability.AttrProgram, cmd.Program()),
		attribute.StringSlice(observability.AttrArgs, cmd.Args()),
	))
	defer span.End()

	h, err := Stream(ctx, cmd)
	if err != nil {
		observability.SetSpanError(ctx, err)
		r.metrics.RecordStream(ctx, cmd.Program(), StatusError)
		r.log.WithContext(ctx).Error("stream could not be started", logger.ErrorFields(cmd.String(), err))
		return nil, err
	}
	observability.SetSpanAttribute(ctx, observability.AttrRunID, h.RunID())
	observability.SetSpanAttribute(ctx, observability.AttrPID, h.Pid())
	r.metrics.RecordStream(ctx, cmd.Program(), StatusSuccess)
	return h, nil
}

// Kill interrupts h and records the signal delivery outcome.
func (r *Runner) Kill(ctx context.Context, h *Handle) error {
	err := h.Kill()
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	r.metrics.RecordSignal(ctx, h.Command().Program(), status)
	return err
}
