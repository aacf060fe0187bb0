package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/psydoom/psydoom-tools/internal/config"
	"github.com/psydoom/psydoom-tools/internal/demotest"
	"github.com/psydoom/psydoom-tools/internal/metrics"
	"github.com/psydoom/psydoom-tools/internal/output"
	"github.com/psydoom/psydoom-tools/internal/results"
	"github.com/psydoom/psydoom-tools/internal/testset"
	"github.com/spf13/cobra"
)

const demoArgCount = 3

// runOptions are the flags shared by every command that runs demos.
type runOptions struct {
	concurrency int
	timeout     time.Duration
	argStyle    string
	resultsDSN  string
}

func addRunFlags(cmd *cobra.Command, opts *runOptions, cfg *config.Config) {
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "j", cfg.Concurrency, "Maximum concurrent game processes (0 runs every case at once)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", cfg.CaseTimeout, "Kill a game process after this long (0 disables)")
	cmd.Flags().StringVar(&opts.argStyle, "arg-style", cfg.ArgStyle, "Flag spelling passed to the game: long or psydoom")
	cmd.Flags().StringVar(&opts.resultsDSN, "results-dsn", cfg.ResultsDSN, "ClickHouse DSN to store run results in (optional)")
}

// demoArgs checks the argument count before anything is looked up or launched.
func demoArgs(_ *cobra.Command, args []string) error {
	if len(args) != demoArgCount {
		return fmt.Errorf("%w: expected %d arguments <test_set_name | %s> <target_executable_path> <recordings_directory>, got %d",
			ErrUsage, demoArgCount, testset.SelectorAll, len(args))
	}

	return nil
}

// demoRequest is everything needed for one demo run.
type demoRequest struct {
	selector      string
	executable    string
	recordingsDir string
	mode          demotest.Mode
	opts          runOptions
}

// catalog returns the built-in test sets merged with the --manifest file, if any.
func (a *app) catalog() (*testset.Catalog, error) {
	catalog, err := testset.LoadCatalog(a.log, testset.Builtin(), a.manifest)
	if err != nil {
		return nil, fmt.Errorf("loading test sets: %w", err)
	}

	return catalog, nil
}

// resolve validates a request and returns the sets it selects. Every error is
// returned before any process is launched.
func (a *app) resolve(req demoRequest) ([]testset.TestSet, demotest.ArgStyle, error) {
	style, err := demotest.ParseArgStyle(req.opts.argStyle)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrUsage, err)
	}

	if req.opts.concurrency < 0 {
		return nil, "", fmt.Errorf("%w: --concurrency must not be negative", ErrUsage)
	}

	if req.opts.timeout < 0 {
		return nil, "", fmt.Errorf("%w: --timeout must not be negative", ErrUsage)
	}

	catalog, err := a.catalog()
	if err != nil {
		return nil, "", err
	}

	sets, err := catalog.Resolve(req.selector)
	if errors.Is(err, testset.ErrUnknownTestSet) {
		return nil, "", fmt.Errorf("%w: %w", ErrUsage, err)
	}

	if err != nil {
		return nil, "", err
	}

	return sets, style, nil
}

// runDemoTests launches every selected case, prints per-case lines and the
// final verdict, and fails when any case failed.
func (a *app) runDemoTests(ctx context.Context, out io.Writer, req demoRequest) error {
	sets, style, err := a.resolve(req)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector(a.log)
	if err := collector.Start(ctx); err != nil {
		return fmt.Errorf("starting metrics collector: %w", err)
	}
	defer func() {
		_ = collector.Stop()
	}()

	var (
		formatter = output.NewFormatter(out, a.verbose, collector)
		cases     = testset.CaseCount(sets)
		names     = make([]string, 0, len(sets))
	)

	for _, s := range sets {
		names = append(names, s.Name)
	}

	title := "Running demo tests"
	if req.mode == demotest.ModeSave {
		title = "Saving demo results"
	}

	formatter.PrintHeader(title, names, cases, workerCount(req.opts.concurrency, cases))

	started := time.Now()
	runner := demotest.NewRunner(a.log, demotest.Options{
		Executable:    req.executable,
		RecordingsDir: req.recordingsDir,
		Mode:          req.mode,
		ArgStyle:      style,
		Concurrency:   req.opts.concurrency,
		Timeout:       req.opts.timeout,
	}, formatter, collector)

	result := runner.Run(ctx, sets)

	formatter.PrintFailures()
	formatter.PrintSummary(result.Duration)
	formatter.PrintAggregate(result.OK, result.Duration)

	if req.opts.resultsDSN != "" {
		a.publish(ctx, req, started, collector)
	}

	if !result.OK {
		return fmt.Errorf("%w: %d of %d demo tests failed", errReported, result.Failed, result.Total)
	}

	return nil
}

// publish stores the run in ClickHouse. Failures are logged only; they never
// change the verdict of the run.
func (a *app) publish(ctx context.Context, req demoRequest, started time.Time, collector metrics.Collector) {
	run := results.NewRun(req.mode.String(), started)
	run.Cases = collector.GetCaseMetrics()

	if err := results.Publish(ctx, a.log, req.opts.resultsDSN, run); err != nil {
		a.log.WithError(err).Warn("Failed to store demo test results")
	}
}

func workerCount(concurrency, cases int) int {
	if concurrency <= 0 || concurrency > cases {
		return cases
	}

	return concurrency
}
