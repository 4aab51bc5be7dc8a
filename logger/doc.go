// Package logger provides structured logging for dotfiles using zerolog.
//
// It supports console and JSON output, level configuration (including the
// CLI's -v counting), and component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.Get("process")
//	log.Info("command finished", logger.Fields("program", "pacman", "status", "exit status 0"))
package logger
