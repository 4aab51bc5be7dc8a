package config

import (
	"fmt"
	"time"

	"github.com/kbukum/dotfiles/errors"
	"github.com/kbukum/dotfiles/observability"
	"github.com/kbukum/dotfiles/validation"
)

// ServiceName names the config directory, env prefix and telemetry service.
const ServiceName = "dotfiles"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DOTFILES"

// Supported package managers.
const (
	PackageManagerPacman = "pacman"
	PackageManagerApt    = "apt"
	PackageManagerBrew   = "brew"
	PackageManagerDnf    = "dnf"
)

// AssetLink places a bundled asset at a path relative to the home directory.
type AssetLink struct {
	Name   string `yaml:"name" mapstructure:"name" validate:"required"`
	Target string `yaml:"target" mapstructure:"target" validate:"required,relpath"`
}

// ProbeConfig describes the long-running command the test subcommand
// supervises.
type ProbeConfig struct {
	Program  string        `yaml:"program" mapstructure:"program" validate:"required"`
	Args     []string      `yaml:"args" mapstructure:"args"`
	Duration time.Duration `yaml:"duration" mapstructure:"duration" validate:"gt=0"`
}

// Config holds the settings for a bootstrap run.
type Config struct {
	ServiceConfig  `yaml:",inline" mapstructure:",squash"`
	PackageManager string               `yaml:"package_manager" mapstructure:"package_manager" validate:"required,oneof=pacman apt brew dnf"`
	Packages       []string             `yaml:"packages" mapstructure:"packages" validate:"dive,pkgname"`
	Directories    []string             `yaml:"directories" mapstructure:"directories" validate:"dive,relpath"`
	Assets         []AssetLink          `yaml:"assets" mapstructure:"assets" validate:"dive"`
	StorePath      string               `yaml:"store_path" mapstructure:"store_path"`
	Probe          ProbeConfig          `yaml:"probe" mapstructure:"probe"`
	Telemetry      observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// Defaults returns the default values keyed by config path.
func Defaults() map[string]any {
	return map[string]any{
		"name":              ServiceName,
		"environment":       "development",
		"package_manager":   PackageManagerPacman,
		"packages":          []string{"git"},
		"directories":       []string{"some/dir"},
		"probe.program":     "ping",
		"probe.args":        []string{"-c", "100", "127.0.0.1"},
		"probe.duration":    3 * time.Second,
		"logging.level":     "info",
		"logging.format":    "console",
		"logging.output":    "stderr",
		"telemetry.enabled": false,
	}
}

// ApplyDefaults fills anything the loaders left empty.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.PackageManager == "" {
		c.PackageManager = PackageManagerPacman
	}
	if c.Probe.Program == "" {
		c.Probe.Program = "ping"
		c.Probe.Args = []string{"-c", "100", "127.0.0.1"}
	}
	if c.Probe.Duration == 0 {
		c.Probe.Duration = 3 * time.Second
	}
	c.Telemetry.ApplyDefaults()
}

// Validate checks struct tags first, then the nested sections.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.ServiceConfig.Validate(); err != nil {
		return errors.Validation(err.Error())
	}
	if err := c.Telemetry.Validate(); err != nil {
		return errors.Validation(err.Error())
	}
	seen := make(map[string]bool, len(c.Assets))
	v := validation.New()
	for i, a := range c.Assets {
		v.Custom(!seen[a.Target], fmt.Sprintf("assets[%d].target", i), "duplicates an earlier target")
		seen[a.Target] = true
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// Load reads settings for the dotfiles CLI: defaults, the config file, the
// .env file, DOTFILES_* environment variables and bound flags. The result
// has defaults applied and is validated.
func Load(opts ...LoaderOption) (*Config, error) {
	base := []LoaderOption{
		WithDefaults(Defaults()),
		WithEnvPrefix(EnvPrefix),
	}
	var cfg Config
	if err := LoadConfig(ServiceName, &cfg, append(base, opts...)...); err != nil {
		return nil, errors.InvalidInput("config", err.Error()).WithCause(err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
