package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show-config",
		Short: "Display current environment configuration",
		Long:  `Shows the current configuration loaded from environment variables and .env file.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), a.cfg.String())
		},
	}
}
