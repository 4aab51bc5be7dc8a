package bootstrap

import (
	"context"
	"time"

	"github.com/kbukum/dotfiles/config"
	"github.com/kbukum/dotfiles/errors"
	"github.com/kbukum/dotfiles/logger"
	"github.com/kbukum/dotfiles/observability"
	"github.com/kbukum/dotfiles/process"
)

// defaultWaitTimeout bounds how long Probe waits for the child to exit
// after the interrupt.
const defaultWaitTimeout = 10 * time.Second

// killer is implemented by executors that instrument signal delivery.
type killer interface {
	Kill(ctx context.Context, h *process.Handle) error
}

// Probe supervises a long-running command: it streams the command, lets it
// run for Duration, interrupts it and collects the exit status.
type Probe struct {
	Exec        Executor
	Command     process.Command
	Duration    time.Duration
	WaitTimeout time.Duration
	Logger      *logger.Logger
}

// NewProbe creates a Probe from the probe settings.
func NewProbe(exec Executor, cfg config.ProbeConfig) *Probe {
	return &Probe{
		Exec:        exec,
		Command:     process.NewCommand(cfg.Program, cfg.Args...),
		Duration:    cfg.Duration,
		WaitTimeout: defaultWaitTimeout,
		Logger:      logger.Get("bootstrap"),
	}
}

// Run streams the probe command, sleeps for Duration or until ctx is done,
// then interrupts the child and waits for it. The child writes straight to
// the terminal, so the returned Result carries only the exit status.
//
// A child that exited on its own before the interrupt is not an error; the
// failed delivery is logged and its exit status returned.
func (p *Probe) Run(ctx context.Context) (*process.Result, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanProbe)
	defer span.End()
	log := p.log().WithContext(ctx)

	h, err := p.Exec.Stream(ctx, p.Command)
	if err != nil {
		observability.SetSpanError(ctx, err)
		if ctx.Err() != nil {
			return nil, errors.Canceled(err)
		}
		return nil, errors.ExecutionFailed(p.Command.Program(), err)
	}
	observability.SetSpanAttribute(ctx, observability.AttrPID, h.Pid())
	log.Info("probe started: "+p.Command.String(), logger.Fields(
		logger.FieldPID, h.Pid(),
		logger.FieldRunID, h.RunID(),
	))

	timer := time.NewTimer(p.Duration)
	select {
	case <-timer.C:
	case <-ctx.Done():
		timer.Stop()
		log.Info("probe canceled early", logger.Fields(logger.FieldPID, h.Pid()))
	}

	if err := p.kill(ctx, h); err != nil {
		if !errors.Is(err, process.ErrProcessDone) {
			observability.SetSpanError(ctx, err)
			return nil, errors.Internal(err)
		}
		log.Warn("probe exited before it was interrupted", logger.ErrorFields("kill", err))
	}

	timeout := p.WaitTimeout
	if timeout <= 0 {
		timeout = defaultWaitTimeout
	}
	waitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	res, err := h.Wait(waitCtx)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, errors.Internal(err).WithDetail("pid", h.Pid())
	}
	observability.SetSpanAttribute(ctx, observability.AttrStatus, res.Status)
	res.Log(log)
	return res, nil
}

func (p *Probe) kill(ctx context.Context, h *process.Handle) error {
	if k, ok := p.Exec.(killer); ok {
		return k.Kill(ctx, h)
	}
	return h.Kill()
}

func (p *Probe) log() *logger.Logger {
	if p.Logger == nil {
		return logger.Get("bootstrap")
	}
	return p.Logger
}
