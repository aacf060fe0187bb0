package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/psydoom/psydoom-tools/internal/format"
	"github.com/psydoom/psydoom-tools/internal/lcd"
	"github.com/psydoom/psydoom-tools/internal/metrics"
	"github.com/psydoom/psydoom-tools/internal/output"
	"github.com/spf13/cobra"
)

func newBuildLcdCmd(a *app) *cobra.Command {
	opts := lcd.Options{}

	cmd := &cobra.Command{
		Use:   "build-lcd",
		Short: "Build ALLMAPS.LCD from the PsyDoom sound samples",
		Long: `Builds the ALLMAPS.LCD archive containing the sound samples for every enemy,
so new user maps have all the audio they need. LcdTool is invoked once per
sample, strictly in order, and the build stops at the first failure.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.buildLcd(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Tool, "tool", a.cfg.LcdTool, "Path to LcdTool")
	cmd.Flags().StringVar(&opts.Output, "output", "../ALLMAPS.LCD", "LCD file to build")
	cmd.Flags().StringVar(&opts.Module, "module", "../DOOMSND.WMD", "Williams module file holding the sound patches")
	cmd.Flags().StringVar(&opts.SamplesDir, "samples-dir", ".", "Directory containing the .vag samples")

	return cmd
}

func (a *app) buildLcd(ctx context.Context, out io.Writer, opts lcd.Options) error {
	var (
		formatter = output.NewFormatter(out, a.verbose, metrics.NewCollector(a.log))
		samples   = lcd.AllMaps()
		added     int
	)

	formatter.PrintPhase(fmt.Sprintf("Building %s", opts.Output))

	err := lcd.NewBuilder(a.log, opts).Build(ctx, samples, func(s lcd.Sample) {
		added++
		if a.verbose {
			formatter.PrintProgress(fmt.Sprintf("[%d/%d] patch %d: %s", added, len(samples), s.PatchIndex, s.File), 0)
		}
	})
	if err != nil {
		return err
	}

	summary := format.Plural(added, "sample")
	if info, err := os.Stat(opts.Output); err == nil {
		summary += ", " + format.Bytes(info.Size())
	}

	formatter.PrintSuccess(fmt.Sprintf("✓ Built %s (%s)", opts.Output, summary))

	return nil
}
