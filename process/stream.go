package process

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/dotfiles/logger"
)

// noCopy flags accidental copies of a Handle to go vet's copylocks check.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Handle supervises a child started by Stream. It exclusively owns the
// child; do not copy it.
//
// The child moves from running to exited. Exit is observed by Wait, and once
// observed Kill refuses to signal, so a recycled pid is never hit.
type Handle struct {
	noCopy noCopy

	cmd   Command
	runID string
	proc  *exec.Cmd
	pid   int
	start time.Time
	log   *logger.Logger

	reap   sync.Once
	done   chan struct{}
	result *Result
	err    error
}

// Stream starts a subprocess whose standard output and error are the
// parent's, and returns without waiting for it. A program that cannot be
// started yields an *ExecError.
//
// ctx is only checked before spawning; cancel a running child with Kill.
func Stream(ctx context.Context, cmd Command) (*Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := exec.Command(cmd.program, cmd.args...) //nolint:gosec // dynamic args are the purpose of this package
	c.Dir = cmd.dir
	c.Env = cmd.environ()
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	configure(c)

	start := time.Now()
	if err := c.Start(); err != nil {
		return nil, &ExecError{Program: cmd.program, Err: err}
	}

	h := &Handle{
		cmd:   cmd,
		runID: uuid.NewString(),
		proc:  c,
		pid:   c.Process.Pid,
		start: start,
		log:   logger.Get("process"),
		done:  make(chan struct{}),
	}
	h.log.Debug("stream started", logger.Fields(
		logger.FieldRunID, h.runID,
		logger.FieldProgram, cmd.program,
		logger.FieldArgs, cmd.args,
		logger.FieldPID, h.pid,
	))
	return h, nil
}

// MustStream is like Stream but panics when the program cannot be executed.
func MustStream(ctx context.Context, cmd Command) *Handle {
	h, err := Stream(ctx, cmd)
	if err != nil {
		panic(err.Error())
	}
	return h
}

// Pid returns the process id captured at spawn.
func (h *Handle) Pid() int { return h.pid }

// RunID identifies the execution in logs and traces.
func (h *Handle) RunID() string { return h.runID }

// Command returns the descriptor the child was started from.
func (h *Handle) Command() Command { return h.cmd }

// Exited reports whether Wait has observed the child's exit.
func (h *Handle) Exited() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Kill sends the interrupt signal to the child and returns immediately. It
// never waits for the child and never escalates to a forceful kill.
//
// The first delivered signal starts reaping the child in the background,
// so a later Kill fails with an error wrapping ErrProcessDone once the
// child has exited, whether or not Wait was called.
func (h *Handle) Kill() error {
	if h.Exited() {
		return &SignalError{Pid: h.pid, Signal: interruptSignal, Err: ErrProcessDone}
	}
	if err := interrupt(h.proc.Process); err != nil {
		h.log.Debug("signal delivery failed", logger.Fields(
			logger.FieldRunID, h.runID,
			logger.FieldPID, h.pid,
			logger.FieldError, err.Error(),
		))
		return &SignalError{Pid: h.pid, Signal: interruptSignal, Err: err}
	}
	h.reap.Do(func() { go h.wait() })
	h.log.Debug("signal delivered", logger.Fields(
		logger.FieldRunID, h.runID,
		logger.FieldPID, h.pid,
		"signal", interruptSignal.String(),
	))
	return nil
}

// Wait blocks until the child exits or ctx is done. The child is reaped
// once; concurrent and repeated calls return the same Result. Canceling ctx
// abandons the wait without signaling the child.
func (h *Handle) Wait(ctx context.Context) (*Result, error) {
	h.reap.Do(func() { go h.wait() })
	select {
	case <-h.done:
		return h.result, h.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (h *Handle) wait() {
	defer close(h.done)

	err := h.proc.Wait()
	h.result = newResult(h.cmd, h.runID, h.proc, time.Since(h.start))

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		h.err = fmt.Errorf("process: wait %s: %w", h.cmd.program, err)
	}
	h.log.Debug("stream exited", logger.Fields(
		logger.FieldRunID, h.runID,
		logger.FieldPID, h.pid,
		logger.FieldStatus, h.result.Status,
	))
}
