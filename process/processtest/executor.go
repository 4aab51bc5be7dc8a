// Package processtest provides a scripted command executor for tests of code
// built on the process package.
package processtest

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/kbukum/dotfiles/process"
)

// Response scripts the outcome of one command line.
type Response struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

// Executor records the commands it is asked to run and answers Run calls
// from a script keyed by the command line. Unscripted commands succeed.
//
// Stream starts StreamCommand (default "sleep 30") instead of the requested
// command so callers get a real Handle to supervise.
type Executor struct {
	StreamCommand *process.Command

	mu        sync.Mutex
	responses map[string]Response
	calls     []process.Command
	streams   []process.Command
}

// NewExecutor creates an Executor with an empty script.
func NewExecutor() *Executor {
	return &Executor{responses: make(map[string]Response)}
}

// On scripts the response for a command line such as "pacman -Sy".
func (e *Executor) On(commandLine string, resp Response) *Executor {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.responses[commandLine] = resp
	return e
}

// Run records cmd and returns its scripted result.
func (e *Executor) Run(_ context.Context, cmd process.Command) (*process.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, cmd)

	resp := e.responses[cmd.String()]
	if resp.Err != nil {
		return nil, resp.Err
	}
	status := "exit status 0"
	if resp.ExitCode != 0 {
		status = "exit status " + strconv.Itoa(resp.ExitCode)
	}
	return &process.Result{
		Command:  cmd,
		RunID:    "test-run",
		Status:   status,
		Stdout:   resp.Stdout,
		Stderr:   resp.Stderr,
		ExitCode: resp.ExitCode,
	}, nil
}

// Stream records cmd and starts the substitute stream command.
func (e *Executor) Stream(ctx context.Context, cmd process.Command) (*process.Handle, error) {
	e.mu.Lock()
	e.streams = append(e.streams, cmd)
	sub := process.NewCommand("sleep", "30")
	if e.StreamCommand != nil {
		sub = *e.StreamCommand
	}
	e.mu.Unlock()
	return process.Stream(ctx, sub)
}

// Calls returns the command lines passed to Run, in order.
func (e *Executor) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return lines(e.calls)
}

// Streams returns the command lines passed to Stream, in order.
func (e *Executor) Streams() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return lines(e.streams)
}

// Called reports whether a command line containing substr was run.
func (e *Executor) Called(substr string) bool {
	for _, c := range e.Calls() {
		if strings.Contains(c, substr) {
			return true
		}
	}
	return false
}

func lines(cmds []process.Command) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.String()
	}
	return out
}
