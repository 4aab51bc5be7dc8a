// Package errors provides the unified error type used across dotfiles.
// Every failure that reaches the command line carries an error code, a
// human-readable message, optional details and the process exit status the
// CLI should terminate with.
package errors
