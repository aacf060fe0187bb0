package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/psydoom/psydoom-tools/internal/demotest"
	"github.com/psydoom/psydoom-tools/internal/output/table"
	"github.com/psydoom/psydoom-tools/pkg/interactive"
	"github.com/spf13/cobra"
)

func newInteractiveCmd(a *app) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Choose and run demo tests from prompts",
		Long:  `Prompts for a test set, the game executable and the recordings directory, then runs the demo tests.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runInteractive(cmd.Context(), cmd.OutOrStdout(), *opts)
		},
	}

	addRunFlags(cmd, opts, a.cfg)

	return cmd
}

func (a *app) runInteractive(ctx context.Context, out io.Writer, opts runOptions) error {
	fmt.Fprintln(out, "PsyDoom Tools - Interactive Mode")
	fmt.Fprintln(out, "================================")
	fmt.Fprintln(out)

	report := func(err error) {
		if err != nil && !errors.Is(err, errReported) {
			fmt.Fprintf(out, "\n❌ Error: %v\n", err)
		}
		interactive.Pause(out)
	}

	menu := interactive.NewMenu("What would you like to do?").
		Add("Run Demo Tests", "replay demos and check their results", func() error {
			return a.promptAndRun(ctx, out, demotest.ModeCheck, opts)
		}).
		Add("Save Results", "replay demos and overwrite their expected results", func() error {
			return a.promptAndRun(ctx, out, demotest.ModeSave, opts)
		}).
		Add("List Test Sets", "", func() error {
			catalog, err := a.catalog()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, table.FormatTestSets(table.NewRenderer(), catalog.Sets()))
			return nil
		}).
		Add("Show Config", "", func() error {
			fmt.Fprintln(out, a.cfg.String())
			return nil
		})

	for {
		err := menu.Prompt()
		if errors.Is(err, interactive.ErrExit) {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		// A broken prompt fails the same way on every pass.
		if errors.Is(err, interactive.ErrPrompt) {
			return err
		}

		report(err)
	}
}

// promptAndRun asks what to run and runs it after confirmation.
func (a *app) promptAndRun(ctx context.Context, out io.Writer, mode demotest.Mode, opts runOptions) error {
	catalog, err := a.catalog()
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	for _, s := range catalog.Sets() {
		counts[s.Name] = len(s.Cases)
	}

	selector, err := interactive.SelectTestSet(catalog.Names(), counts)
	if err != nil {
		return canceled(out, err)
	}

	exe, err := interactive.AskExecutable(a.cfg.GameExecutable)
	if err != nil {
		return canceled(out, err)
	}

	dir, err := interactive.AskRecordingsDir(a.cfg.RecordingsDir)
	if err != nil {
		return canceled(out, err)
	}

	ok, err := interactive.Confirm(fmt.Sprintf("Run %s (%s mode) with %s?", selector, mode, exe))
	if err != nil {
		return canceled(out, err)
	}

	if !ok {
		return canceled(out, interactive.ErrExit)
	}

	return a.runDemoTests(ctx, out, demoRequest{
		selector:      selector,
		executable:    exe,
		recordingsDir: dir,
		mode:          mode,
		opts:          opts,
	})
}

// canceled turns an aborted prompt into a return to the menu. Other prompt
// errors are passed through.
func canceled(out io.Writer, err error) error {
	if !errors.Is(err, interactive.ErrExit) {
		return err
	}

	fmt.Fprintln(out, "Run canceled.")

	return nil
}
