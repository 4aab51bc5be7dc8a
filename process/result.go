package process

import (
	"time"

	"github.com/kbukum/dotfiles/logger"
)

// Result holds the output and status of a completed subprocess.
type Result struct {
	// Command is the descriptor that produced this result.
	Command Command
	// RunID identifies the execution in logs and traces.
	RunID string
	// Status describes how the process ended, e.g. "exit status 0" or
	// "signal: interrupt".
	Status string
	// Stdout is the captured standard output. Invalid UTF-8 is replaced
	// with U+FFFD. Empty for streams.
	Stdout string
	// Stderr is the captured standard error, decoded like Stdout.
	Stderr string
	// ExitCode is the process exit code. -1 if the process was killed by a signal.
	ExitCode int
	// Duration is how long the process ran.
	Duration time.Duration
}

// Success reports whether the process exited with code zero.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Log writes the status line and both output streams to l. Successful runs
// log at debug, failed ones at warn.
func (r *Result) Log(l *logger.Logger) {
	fields := logger.Fields(
		logger.FieldRunID, r.RunID,
		logger.FieldProgram, r.Command.Program(),
		logger.FieldStatus, r.Status,
	)
	log := l.Debug
	if !r.Success() {
		log = l.Warn
	}
	log("status: "+r.Status, fields)
	if r.Stdout != "" {
		log("stdout: "+r.Stdout, fields)
	}
	if r.Stderr != "" {
		log("stderr: "+r.Stderr, fields)
	}
}
