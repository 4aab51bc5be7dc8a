package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kbukum/dotfiles/config"
	"github.com/kbukum/dotfiles/confstore"
	"github.com/kbukum/dotfiles/errors"
)

// effectiveConfig is what `config show` prints.
type effectiveConfig struct {
	Settings *config.Config   `yaml:"settings"`
	Store    confstore.Config `yaml:"store"`
}

func newConfigCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings and the stored record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.loadSettings(cmd, nil)
			if err != nil {
				return err
			}
			store, err := confstore.Read(cfg.StorePath)
			if errors.Is(err, fs.ErrNotExist) {
				store = confstore.Default()
			} else if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(effectiveConfig{Settings: cfg, Store: store.Masked()}); err != nil {
				return errors.Internal(err)
			}
			return enc.Close()
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default stored record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.loadSettings(cmd, nil)
			if err != nil {
				return err
			}
			if _, err := os.Stat(cfg.StorePath); err == nil && !force {
				return errors.InvalidInput("store", cfg.StorePath+" already exists, use --force to overwrite")
			}
			if err := confstore.Store(cfg.StorePath, confstore.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cfg.StorePath)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing store")

	cmd.AddCommand(show, initCmd)
	return cmd
}
