package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/dotfiles/logger"
)

// Run executes a subprocess and waits for it to complete, capturing both
// output streams.
//
// A program that cannot be started yields an *ExecError. A non-zero exit is
// not an error: the Result is returned with Success() == false. If ctx is
// canceled the child receives the interrupt signal and Run keeps waiting for
// it to exit; it is never killed forcefully.
func Run(ctx context.Context, cmd Command) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	log := logger.Get("process")

	c := exec.CommandContext(ctx, cmd.program, cmd.args...) //nolint:gosec // dynamic args are the purpose of this package
	c.Dir = cmd.dir
	c.Env = cmd.environ()
	configure(c)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	c.Cancel = func() error {
		return interrupt(c.Process)
	}

	start := time.Now()
	if err := c.Start(); err != nil {
		return nil, &ExecError{Program: cmd.program, Err: err}
	}
	log.Debug("process started", logger.Fields(
		logger.FieldRunID, runID,
		logger.FieldProgram, cmd.program,
		logger.FieldArgs, cmd.args,
		logger.FieldPID, c.Process.Pid,
	))

	err := c.Wait()
	result := newResult(cmd, runID, c, time.Since(start))
	result.Stdout = decode(stdout.Bytes())
	result.Stderr = decode(stderr.Bytes())

	log.Debug("process exited", logger.Fields(
		logger.FieldRunID, runID,
		logger.FieldProgram, cmd.program,
		logger.FieldStatus, result.Status,
		logger.FieldDuration, result.Duration.Milliseconds(),
	))

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return result, fmt.Errorf("process: wait %s: %w", cmd.program, err)
	}
	return result, nil
}

// MustRun is like Run but panics when the program cannot be executed.
func MustRun(ctx context.Context, cmd Command) *Result {
	res, err := Run(ctx, cmd)
	if err != nil {
		panic(err.Error())
	}
	return res
}

func newResult(cmd Command, runID string, c *exec.Cmd, d time.Duration) *Result {
	res := &Result{
		Command:  cmd,
		RunID:    runID,
		ExitCode: -1,
		Duration: d,
	}
	if c.ProcessState != nil {
		res.Status = c.ProcessState.String()
		res.ExitCode = c.ProcessState.ExitCode()
	}
	return res
}
