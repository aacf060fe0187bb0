package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/psydoom/psydoom-tools/internal/metrics"
	"github.com/psydoom/psydoom-tools/internal/output"
	"github.com/psydoom/psydoom-tools/internal/shaders"
	"github.com/spf13/cobra"
)

var errNoShaders = errors.New("no shader sources found")

type compileShadersOptions struct {
	compiler    string
	srcDir      string
	outDir      string
	concurrency int
}

func newCompileShadersCmd(a *app) *cobra.Command {
	opts := &compileShadersOptions{}

	cmd := &cobra.Command{
		Use:   "compile-shaders",
		Short: "Compile Vulkan shaders into embeddable SPIR-V headers",
		Long: `Compiles every .vert, .frag and .comp file in --src with glslc and writes one
SPIRV_<name>_<stage>.bin.h header per shader to --out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.compileShaders(cmd.Context(), cmd.OutOrStdout(), *opts)
		},
	}

	cmd.Flags().StringVar(&opts.compiler, "compiler", a.cfg.ShaderCompiler, "Path to the GLSL compiler")
	cmd.Flags().StringVar(&opts.srcDir, "src", ".", "Directory containing the shader sources")
	cmd.Flags().StringVar(&opts.outDir, "out", "compiled", "Directory the headers are written to")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "j", a.cfg.Concurrency, "Maximum concurrent compiler processes (0 compiles every shader at once)")

	return cmd
}

func (a *app) compileShaders(ctx context.Context, out io.Writer, opts compileShadersOptions) error {
	if opts.concurrency < 0 {
		return fmt.Errorf("%w: --concurrency must not be negative", ErrUsage)
	}

	found, err := shaders.Discover(opts.srcDir)
	if err != nil {
		return err
	}

	if len(found) == 0 {
		return fmt.Errorf("%w in %s", errNoShaders, opts.srcDir)
	}

	formatter := output.NewFormatter(out, a.verbose, metrics.NewCollector(a.log))
	formatter.PrintPhase(fmt.Sprintf("Compiling %d shaders", len(found)))

	var failed int

	compiler := shaders.NewCompiler(a.log, shaders.Options{
		Compiler:    opts.compiler,
		OutDir:      opts.outDir,
		Concurrency: opts.concurrency,
	})

	err = compiler.Compile(ctx, found, func(s shaders.Shader, err error) {
		if err != nil {
			failed++
			formatter.PrintError("✗ "+s.Source, err)

			return
		}

		formatter.PrintSuccess("✓ " + s.HeaderFile())
	})
	if err != nil && failed > 0 {
		return fmt.Errorf("%w: %d of %d shaders failed to compile", errReported, failed, len(found))
	}

	if err != nil {
		return err
	}

	return nil
}
