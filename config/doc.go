// Package config loads dotfiles settings.
//
// Settings come from, lowest precedence first: built-in defaults, a
// config.yml file, a .env file, DOTFILES_* environment variables, and
// command-line flags the user set explicitly.
//
// # Usage
//
//	cfg, err := config.Load(
//	    config.WithConfigFile(path),
//	    config.WithFlags(cmd.Flags(), map[string]string{"package-manager": "package_manager"}),
//	)
//
// The config file is looked up in ./cmd/dotfiles/config.yml, ./config.yml
// and $XDG_CONFIG_HOME/dotfiles/config.yml. A missing file is not an error.
// Nested keys map to variables by replacing dots with underscores, e.g.
// DOTFILES_PROBE_DURATION=10s.
package config
