// Package bootstrap runs the dotfiles workflows on top of the process
// package.
//
// App gives each CLI command the same lifecycle: validated settings, a
// logger, start and stop hooks, and a task context canceled on SIGINT or
// SIGTERM. Installer executes the install flow as ordered steps:
//
//	create-dirs → sync-repos → install-packages → extract-assets
//
// The first failing step skips the rest; the Report records every step and
// Summary renders it. Probe streams a long-running command, lets it run for
// a fixed time and interrupts it. Doctor checks that the package manager,
// probe program, assets and store are usable.
package bootstrap
