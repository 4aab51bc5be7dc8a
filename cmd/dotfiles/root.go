package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/dotfiles/bootstrap"
	"github.com/kbukum/dotfiles/config"
	"github.com/kbukum/dotfiles/confstore"
	"github.com/kbukum/dotfiles/logger"
	"github.com/kbukum/dotfiles/observability"
	"github.com/kbukum/dotfiles/process"
	"github.com/kbukum/dotfiles/version"
)

// rootOptions holds the persistent flags.
type rootOptions struct {
	configFile string
	storePath  string
	verbose    int
	logFormat  string
}

// persistentFlagKeys maps persistent flags onto settings keys.
var persistentFlagKeys = map[string]string{
	"store":      "store_path",
	"log-format": "logging.format",
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "dotfiles",
		Short:         "Bootstrap a personal machine",
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&o.configFile, "config", "c", "", "settings file (default: search ./config.yml and the user config dir)")
	pf.StringVar(&o.storePath, "store", "", "path of the persisted dotfiles.toml (default: user config dir)")
	pf.CountVarP(&o.verbose, "verbose", "v", "increase log verbosity (-v debug, -vv trace)")
	pf.StringVar(&o.logFormat, "log-format", "", "log format: console or json")

	cmd.AddCommand(
		newInstallCmd(o),
		newTestCmd(o),
		newAssetsCmd(),
		newConfigCmd(o),
		newDoctorCmd(o),
		newVersionCmd(),
	)
	return cmd
}

// loadSettings resolves the settings for cmd, binding the persistent flags
// plus extra flag keys of the subcommand.
func (o *rootOptions) loadSettings(cmd *cobra.Command, extra map[string]string) (*config.Config, error) {
	keys := make(map[string]string, len(persistentFlagKeys)+len(extra))
	for k, v := range persistentFlagKeys {
		keys[k] = v
	}
	for k, v := range extra {
		keys[k] = v
	}

	opts := []config.LoaderOption{config.WithFlags(cmd.Flags(), keys)}
	if o.configFile != "" {
		opts = append(opts, config.WithConfigFile(o.configFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}
	if cfg.Debug && o.verbose == 0 {
		cfg.Logging.Level = "debug"
	}
	cfg.Logging.Level = logger.LevelForVerbosity(o.verbose, cfg.Logging.Level)
	if cfg.StorePath == "" {
		if cfg.StorePath, err = confstore.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// runtime is what a workflow command needs once settings are loaded.
type runtime struct {
	cfg     *config.Config
	app     *bootstrap.App[*config.Config]
	runner  *process.Runner
	metrics *observability.Metrics
}

// setup loads settings, builds the app and wires telemetry into the
// process runner. Telemetry is flushed by the app's stop hooks.
func (o *rootOptions) setup(ctx context.Context, cmd *cobra.Command, extra map[string]string, dryRun bool) (*runtime, error) {
	cfg, err := o.loadSettings(cmd, extra)
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.NewApp(cfg, bootstrap.WithVersion(version.Short()))
	if err != nil {
		return nil, err
	}
	tel, err := observability.Init(ctx, cfg.Telemetry, cfg.Name, app.Version, cfg.Environment)
	if err != nil {
		return nil, err
	}
	app.OnStop(tel.Shutdown)

	runner := process.NewRunner(
		process.WithLogger(logger.Get("process")),
		process.WithMetrics(tel.Metrics),
		process.WithDryRun(dryRun),
	)
	return &runtime{cfg: cfg, app: app, runner: runner, metrics: tel.Metrics}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		},
	}
}
