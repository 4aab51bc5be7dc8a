package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/dotfiles/assets"
	"github.com/kbukum/dotfiles/errors"
)

func newAssetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Inspect the bundled assets",
	}

	var match string
	list := &cobra.Command{
		Use:   "list",
		Short: "List bundled asset names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := assets.Default()
			var (
				names []string
				err   error
			)
			if match != "" {
				names, err = catalog.Match(match)
			} else {
				names, err = catalog.Names()
			}
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
	list.Flags().StringVarP(&match, "match", "m", "", "only list names matching the glob, e.g. 'scripts/*.sh'")

	show := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a bundled asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := assets.Default().Get(args[0])
			if err != nil {
				if errors.Is(err, assets.ErrNotFound) {
					return errors.NotFound("asset", args[0]).WithCause(err)
				}
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}
