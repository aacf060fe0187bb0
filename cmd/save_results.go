package cmd

import (
	"github.com/psydoom/psydoom-tools/internal/demotest"
	"github.com/spf13/cobra"
)

func newSaveResultsCmd(a *app) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "save-results <test_set_name | all> <target_executable_path> <recordings_directory>",
		Short: "Regenerate expected-result files by replaying demos",
		Long: `Replays every selected demo like the default command, but asks the game to write
the expected-result file instead of checking it. Use after an intentional
gameplay change to refresh the recorded results.`,
		Args: demoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDemoTests(cmd.Context(), cmd.OutOrStdout(), demoRequest{
				selector:      args[0],
				executable:    args[1],
				recordingsDir: args[2],
				mode:          demotest.ModeSave,
				opts:          *opts,
			})
		},
	}

	addRunFlags(cmd, opts, a.cfg)

	return cmd
}
