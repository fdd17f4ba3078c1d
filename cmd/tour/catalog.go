package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCatalogCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Validate the catalog and list its hotspots",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, cat, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if err := cat.Summary(cmd.OutOrStdout()); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d navigation, %d exhibits, %d pictures\n",
				len(cat.Navigation), len(cat.Exhibits), len(cat.Pictures))
			return err
		},
	}
}
