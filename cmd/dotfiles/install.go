package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/dotfiles/bootstrap"
	"github.com/kbukum/dotfiles/confstore"
	"github.com/kbukum/dotfiles/logger"
)

func newInstallCmd(o *rootOptions) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Create directories, install packages and place assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := o.setup(ctx, cmd, map[string]string{"debug": "debug"}, dryRun)
			if err != nil {
				return err
			}

			if !dryRun {
				rt.app.OnStart(func(context.Context) error {
					store, err := confstore.Load(rt.cfg.StorePath)
					if err != nil {
						return err
					}
					rt.app.Logger.Debug("store loaded", logger.Fields(
						logger.FieldPath, rt.cfg.StorePath,
						"store_version", store.Version,
					))
					return nil
				})
			}

			inst := bootstrap.NewInstaller(rt.cfg, rt.runner)
			inst.Metrics = rt.metrics
			inst.DryRun = dryRun

			var report *bootstrap.Report
			err = rt.app.RunTask(ctx, func(ctx context.Context) error {
				var err error
				report, err = inst.Install(ctx)
				return err
			})
			rt.app.Summary.TrackReport(report)
			rt.app.Summary.Display(cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().BoolP("debug", "d", false, "print debug info")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log every action without executing it")
	return cmd
}
