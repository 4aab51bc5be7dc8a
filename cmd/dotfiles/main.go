// Command dotfiles bootstraps a personal machine: it creates directories,
// installs packages through the system package manager, places bundled
// assets and supervises long-running probes.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kbukum/dotfiles/errors"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.ExitCode(err))
	}
}
