package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/dotfiles/bootstrap"
)

func newTestCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run the probe command for a while, then interrupt it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := o.setup(ctx, cmd, map[string]string{
				"debug":    "debug",
				"duration": "probe.duration",
			}, false)
			if err != nil {
				return err
			}

			probe := bootstrap.NewProbe(rt.runner, rt.cfg.Probe)
			return rt.app.RunTask(ctx, func(ctx context.Context) error {
				res, err := probe.Run(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "probe %s: %s after %s\n",
					res.Command, res.Status, res.Duration.Round(time.Millisecond))
				return nil
			})
		},
	}
	cmd.Flags().BoolP("debug", "d", false, "print debug info")
	cmd.Flags().Duration("duration", 0, "how long the probe runs before it is interrupted (default from settings)")
	return cmd
}
