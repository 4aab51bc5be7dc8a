//go:build windows

package process

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

var interruptSignal os.Signal = os.Interrupt

// configure places the child in its own process group so it can receive a
// console break event without the parent receiving it too.
func configure(c *exec.Cmd) {
	c.SysProcAttr = &syscall.SysProcAttr{CreationFlags: windows.CREATE_NEW_PROCESS_GROUP}
}

// interrupt sends CTRL_BREAK_EVENT to the child's process group, the
// cooperative equivalent of SIGINT.
func interrupt(p *os.Process) error {
	if p == nil {
		return ErrProcessDone
	}
	return windows.GenerateConsoleCtrlEvent(windows.CTRL_BREAK_EVENT, uint32(p.Pid))
}
