//go:build !windows

package process

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

var interruptSignal os.Signal = unix.SIGINT

func configure(*exec.Cmd) {}

// interrupt delivers SIGINT through the os.Process handle so a recycled pid
// is never signaled.
func interrupt(p *os.Process) error {
	if p == nil {
		return ErrProcessDone
	}
	return classifySignalError(p.Signal(unix.SIGINT))
}

// classifySignalError maps kill(2) failures onto sentinels callers can test
// with errors.Is: ESRCH is ErrProcessDone and EPERM wraps os.ErrPermission.
func classifySignalError(err error) error {
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return err
	}
	switch errno {
	case unix.ESRCH:
		return ErrProcessDone
	case unix.EPERM:
		return fmt.Errorf("%w: %w", os.ErrPermission, errno)
	default:
		return err
	}
}
