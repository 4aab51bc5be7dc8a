package process

import (
	"os"
	"strings"
)

// Command describes a program to execute and its arguments. A Command is
// immutable once built and may be executed any number of times; every
// execution spawns an independent child.
//
// Arguments are passed verbatim to the child. No shell is involved, so
// quoting, globbing and variable expansion never happen.
type Command struct {
	program string
	args    []string
	dir     string
	env     []string
	failure string
}

// NewCommand builds a Command. The program is resolved through PATH at
// execution time; an empty or unknown program is only reported then.
func NewCommand(program string, args ...string) Command {
	return Command{
		program: program,
		args:    append([]string(nil), args...),
		failure: "failed to execute command " + program,
	}
}

// WithDir returns a copy of c that runs in dir.
func (c Command) WithDir(dir string) Command {
	c.dir = dir
	return c
}

// WithEnv returns a copy of c with extra KEY=value pairs appended to the
// inherited environment.
func (c Command) WithEnv(kv ...string) Command {
	c.env = append(append([]string(nil), c.env...), kv...)
	return c
}

// Program returns the program name as given to NewCommand.
func (c Command) Program() string { return c.program }

// Args returns a copy of the arguments.
func (c Command) Args() []string { return append([]string(nil), c.args...) }

// Dir returns the working directory, empty for the current one.
func (c Command) Dir() string { return c.dir }

// FailureMessage is the diagnostic used when the program cannot be started.
func (c Command) FailureMessage() string { return c.failure }

// String renders the command line for logs.
func (c Command) String() string {
	if len(c.args) == 0 {
		return c.program
	}
	return c.program + " " + strings.Join(c.args, " ")
}

// environ merges the extra variables with the current environment.
func (c Command) environ() []string {
	if len(c.env) == 0 {
		return nil // inherit parent env
	}
	return append(os.Environ(), c.env...)
}
