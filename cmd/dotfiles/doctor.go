package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/dotfiles/bootstrap"
	"github.com/kbukum/dotfiles/errors"
	"github.com/kbukum/dotfiles/logger"
	"github.com/kbukum/dotfiles/version"
)

func newDoctorCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that this machine can run install and test",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.loadSettings(cmd, nil)
			if err != nil {
				return err
			}
			logger.Init(&cfg.Logging)

			sh := bootstrap.NewDoctor(cfg, cfg.StorePath, version.Short()).Check(cmd.Context())
			bootstrap.DisplayHealth(cmd.OutOrStdout(), sh)
			if !sh.Healthy() {
				return errors.New(errors.ErrCodeNotFound, "doctor found problems: "+string(sh.Status))
			}
			return nil
		},
	}
}
