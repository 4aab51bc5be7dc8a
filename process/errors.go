package process

import (
	"fmt"
	"os"
)

// ErrProcessDone is reported by Kill once the child's exit has been observed.
var ErrProcessDone = os.ErrProcessDone

// ExecError reports that a program could not be started, typically because
// it does not resolve through PATH.
type ExecError struct {
	Program string
	Err     error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("failed to execute command %s: %v", e.Program, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// SignalError reports that the interrupt signal could not be delivered.
type SignalError struct {
	Pid    int
	Signal os.Signal
	Err    error
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("process: deliver %v to pid %d: %v", e.Signal, e.Pid, e.Err)
}

func (e *SignalError) Unwrap() error { return e.Err }
