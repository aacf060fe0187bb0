package cmd

import (
	"fmt"

	"github.com/psydoom/psydoom-tools/internal/output/table"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available test sets",
		Long:  `Lists the built-in test sets plus any defined by --manifest.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := a.catalog()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), table.FormatTestSets(table.NewRenderer(), catalog.Sets()))

			return nil
		},
	}
}
