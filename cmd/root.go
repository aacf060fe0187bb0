// Package cmd contains CLI command definitions
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/psydoom/psydoom-tools/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130 // 128 + SIGINT(2)
)

var (
	// ErrUsage marks invalid command-line usage. Execute exits with ExitUsage.
	ErrUsage = errors.New("usage error")

	// errReported marks failures whose details were already printed.
	errReported = errors.New("failure reported")
)

// app carries the state shared by every command.
type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	verbose  bool
	manifest string
	envFile  string
}

// newRootCmd builds the command tree. The root command itself runs the demo
// tests; everything else is a subcommand.
func newRootCmd(cfg *config.Config, log *logrus.Logger) *cobra.Command {
	a := &app{cfg: cfg, log: log}
	opts := &runOptions{}

	rootCmd := &cobra.Command{
		Use:   "psydoom-tools <test_set_name | all> <target_executable_path> <recordings_directory>",
		Short: "PsyDoom build and test tooling",
		Long: `Runs recorded demos through a headless game build and checks every result
against its expected-result file. Subcommands regenerate expected results,
build the ALLMAPS.LCD sound archive and compile Vulkan shaders into headers.`,
		Example: `  psydoom-tools doom_ntsc ./PsyDoom ./demo_tests
  psydoom-tools all ./PsyDoom ./demo_tests --concurrency 8`,
		Args:          demoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.verbose {
				a.log.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDemoTests(cmd.Context(), cmd.OutOrStdout(), demoRequest{
				selector:      args[0],
				executable:    args[1],
				recordingsDir: args[2],
				opts:          *opts,
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.envFile, "env", "", "Environment file to load (default .env)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&a.manifest, "manifest", cfg.Manifest, "YAML manifest adding or replacing test sets")
	addRunFlags(rootCmd, opts, cfg)

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.AddCommand(
		newSaveResultsCmd(a),
		newListCmd(a),
		newShowConfigCmd(a),
		newInteractiveCmd(a),
		newBuildLcdCmd(a),
		newCompileShadersCmd(a),
	)

	return rootCmd
}

// Execute runs the root command and returns the process exit code
func Execute() int {
	log := newLogger(os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitFailure
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupted := setupCleanupHandler(log, cancel)

	return execute(ctx, newRootCmd(cfg, log), os.Args[1:], os.Stderr, interrupted)
}

func execute(ctx context.Context, rootCmd *cobra.Command, args []string, stderr io.Writer, interrupted <-chan struct{}) int {
	// A nil slice would make cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}

	rootCmd.SetArgs(args)

	cmd, err := rootCmd.ExecuteContextC(ctx)

	select {
	case <-interrupted:
		return ExitInterrupted
	default:
	}

	if err == nil {
		return ExitOK
	}

	if !errors.Is(err, errReported) {
		fmt.Fprintln(stderr, err)
	}

	if errors.Is(err, ErrUsage) {
		fmt.Fprintln(stderr)
		fmt.Fprint(stderr, cmd.UsageString())

		return ExitUsage
	}

	return ExitFailure
}

// setupCleanupHandler cancels the run on Ctrl+C or SIGTERM so running child
// processes are killed. The returned channel is closed once a signal arrives.
func setupCleanupHandler(log logrus.FieldLogger, cancel context.CancelFunc) <-chan struct{} {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	return watchSignals(log, sigChan, func() { signal.Stop(sigChan) }, cancel)
}

// watchSignals handles the first signal on sigChan. stop is called before
// anything else so a second Ctrl+C terminates the process the default way.
func watchSignals(log logrus.FieldLogger, sigChan <-chan os.Signal, stop func(), cancel context.CancelFunc) <-chan struct{} {
	interrupted := make(chan struct{})

	go func() {
		sig := <-sigChan
		stop()
		log.WithField("signal", sig.String()).Warn("Received interrupt signal, stopping child processes (repeat to force quit)...")
		close(interrupted)
		cancel()
	}()

	return interrupted
}
