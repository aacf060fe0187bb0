// Package demotest runs recorded demos through a headless game build and
// folds the per-case exit statuses into a single verdict.
package demotest

import (
	"context"
	"time"

	"github.com/psydoom/psydoom-tools/internal/metrics"
	"github.com/psydoom/psydoom-tools/internal/output"
	"github.com/psydoom/psydoom-tools/internal/procrun"
	"github.com/psydoom/psydoom-tools/internal/testset"
	"github.com/sirupsen/logrus"
)

// Options configures a demo test run.
type Options struct {
	Executable    string
	RecordingsDir string
	Mode          Mode
	ArgStyle      ArgStyle
	Concurrency   int
	Timeout       time.Duration
}

// CaseOutcome is the result of running one test case.
type CaseOutcome struct {
	TestSet   string
	Recording string
	Expected  string
	ExitCode  int
	Err       error
	Duration  time.Duration
}

// Passed reports whether the game exited with status zero.
func (o CaseOutcome) Passed() bool {
	return o.Err == nil && o.ExitCode == 0
}

// Result is the aggregate of a whole run.
type Result struct {
	OK       bool
	Duration time.Duration
	Total    int
	Passed   int
	Failed   int
	Outcomes []CaseOutcome
}

// Runner executes test sets against a target executable.
type Runner struct {
	log       logrus.FieldLogger
	opts      Options
	procs     procrun.Runner
	formatter output.Formatter
	collector metrics.Collector
}

// NewRunner creates a demo test runner. Each finished case is reported to the
// formatter and the collector as it completes.
func NewRunner(log logrus.FieldLogger, opts Options, formatter output.Formatter, collector metrics.Collector) *Runner {
	return &Runner{
		log:  log.WithField("component", "demotest"),
		opts: opts,
		procs: procrun.NewRunner(log, procrun.Config{
			Concurrency: opts.Concurrency,
			Timeout:     opts.Timeout,
		}),
		formatter: formatter,
		collector: collector,
	}
}

// caseRef identifies the case behind a process job.
type caseRef struct {
	set       string
	recording string
	expected  string
}

// buildJobs returns one process job per case of every set, in catalog order.
func (r *Runner) buildJobs(sets []testset.TestSet) ([]procrun.Job, []caseRef) {
	var (
		jobs = make([]procrun.Job, 0, testset.CaseCount(sets))
		refs = make([]caseRef, 0, cap(jobs))
	)

	for _, set := range sets {
		disc := ""
		if set.DiscImage != "" {
			disc = testset.ResolvePath(r.opts.RecordingsDir, set.DiscImage)
		}

		for _, tc := range set.Cases {
			ref := caseRef{
				set:       set.Name,
				recording: testset.ResolvePath(r.opts.RecordingsDir, tc.Recording),
				expected:  testset.ResolvePath(r.opts.RecordingsDir, tc.Expected),
			}

			jobs = append(jobs, procrun.Job{
				Name: set.Name + "/" + tc.Recording,
				Path: r.opts.Executable,
				Args: Args(r.opts.ArgStyle, r.opts.Mode, disc, ref.recording, ref.expected),
			})
			refs = append(refs, ref)
		}
	}

	return jobs, refs
}

// Run launches every case of the given sets and waits for all of them. A
// failing case never stops the others; the verdict is the AND of all cases.
func (r *Runner) Run(ctx context.Context, sets []testset.TestSet) *Result {
	jobs, refs := r.buildJobs(sets)

	r.log.WithFields(logrus.Fields{
		"sets":        len(sets),
		"cases":       len(jobs),
		"mode":        r.opts.Mode.String(),
		"concurrency": r.opts.Concurrency,
	}).Info("Running demo tests")

	outcomes := make([]CaseOutcome, len(jobs))

	batch := r.procs.Run(ctx, jobs, func(o procrun.Outcome) {
		ref := refs[o.Index]
		outcome := CaseOutcome{
			TestSet:   ref.set,
			Recording: ref.recording,
			Expected:  ref.expected,
			ExitCode:  o.ExitCode,
			Err:       o.Err,
			Duration:  o.Duration,
		}
		outcomes[o.Index] = outcome

		r.report(outcome)
	})

	result := &Result{
		OK:       batch.OK(),
		Duration: batch.Duration,
		Total:    len(outcomes),
		Passed:   batch.Passed,
		Failed:   batch.Failed,
		Outcomes: outcomes,
	}

	r.log.WithFields(logrus.Fields{
		"passed":   result.Passed,
		"failed":   result.Failed,
		"duration": result.Duration,
	}).Info("Demo tests complete")

	return result
}

func (r *Runner) report(o CaseOutcome) {
	if r.collector != nil {
		metric := &metrics.CaseMetric{
			TestSet:   o.TestSet,
			Recording: o.Recording,
			Expected:  o.Expected,
			Passed:    o.Passed(),
			ExitCode:  o.ExitCode,
			Duration:  o.Duration,
			Timestamp: time.Now(),
		}
		if o.Err != nil {
			metric.ErrorMessage = o.Err.Error()
		}

		r.collector.RecordCase(metric)
	}

	if r.formatter != nil {
		r.formatter.PrintCase(output.CaseStatus{
			TestSet:   o.TestSet,
			Recording: o.Recording,
			Passed:    o.Passed(),
			ExitCode:  o.ExitCode,
			Duration:  o.Duration,
			Err:       o.Err,
		})
	}
}
