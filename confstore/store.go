// Package confstore persists the small versioned record dotfiles keeps
// between runs.
//
// The record lives in a TOML file under the user's config directory. A
// missing file is not an error: Load writes the default record and returns
// it.
package confstore

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/kbukum/dotfiles/errors"
)

const (
	appName  = "dotfiles"
	fileName = "dotfiles.toml"
)

// Config is the persisted record.
type Config struct {
	Version int    `toml:"version" yaml:"version"`
	APIKey  string `toml:"api_key" yaml:"api_key"`
}

// Default returns the record used when none has been stored yet.
func Default() Config {
	return Config{Version: 3, APIKey: "default"}
}

// DefaultPath returns $XDG_CONFIG_HOME/dotfiles/dotfiles.toml, falling back
// to ~/.config/dotfiles/dotfiles.toml.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New(errors.ErrCodeNotFound, "home directory unavailable").WithCause(err)
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the record at path. When the file does not exist, Default()
// is stored there and returned.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
		if err := Store(path, cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	return cfg, err
}

// Read reads the record at path without creating it. A missing file yields
// an error wrapping fs.ErrNotExist.
func Read(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Storage(path, fmt.Errorf("reading config: %w", err))
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Storage(path, fmt.Errorf("parsing config: %w", err))
	}
	return cfg, nil
}

// Store writes cfg to path, creating parent directories as needed.
func Store(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Storage(path, fmt.Errorf("creating config directory: %w", err))
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return errors.Storage(path, fmt.Errorf("encoding config: %w", err))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Storage(path, fmt.Errorf("writing config: %w", err))
	}
	return nil
}

// Masked returns a copy of cfg with the API key hidden for display.
func (c Config) Masked() Config {
	switch n := len(c.APIKey); {
	case n == 0:
	case n <= 4:
		c.APIKey = "****"
	default:
		c.APIKey = c.APIKey[:2] + "****" + c.APIKey[n-2:]
	}
	return c
}
