// Package procrun fans a batch of external commands out over a bounded pool of
// child processes and collects exactly one outcome per command.
package procrun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// waitDelay bounds how long a killed process may hold its output pipes open.
const waitDelay = 2 * time.Second

var (
	// ErrTimeout marks a job killed after exceeding its time limit.
	ErrTimeout = errors.New("process timed out")
	// ErrSkipped marks a job never launched because an earlier job failed.
	ErrSkipped = errors.New("skipped after earlier failure")
)

// Job is a single external command to execute.
type Job struct {
	Name string
	Path string
	Args []string
	Dir  string

	// Stdout and Stderr receive the child's output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// Outcome is the result of one job. ExitCode is -1 when the process never
// produced an exit status (launch failure, timeout, cancellation, skip).
type Outcome struct {
	Index    int
	Job      Job
	ExitCode int
	Err      error
	Duration time.Duration
}

// Passed reports whether the job ran and exited with status zero.
func (o Outcome) Passed() bool {
	return o.Err == nil && o.ExitCode == 0
}

// Result holds every outcome, in job order, and the batch wall-clock time.
type Result struct {
	Outcomes []Outcome
	Duration time.Duration
	Passed   int
	Failed   int
}

// OK is the logical AND of every outcome.
func (r *Result) OK() bool {
	return r.Failed == 0
}

// Config controls how a batch executes.
type Config struct {
	// Concurrency caps simultaneous processes; zero or less means one per job.
	Concurrency int
	// Timeout bounds each process; zero disables the limit.
	Timeout time.Duration
	// StopOnFailure prevents jobs not yet started from launching once any job fails.
	StopOnFailure bool
}

// Runner executes batches of jobs.
type Runner interface {
	// Run executes all jobs and blocks until each has an outcome. onDone, when
	// non-nil, is invoked once per outcome and never concurrently with itself.
	Run(ctx context.Context, jobs []Job, onDone func(Outcome)) *Result
}

type runner struct {
	cfg Config
	log logrus.FieldLogger
}

// NewRunner creates a new process runner.
func NewRunner(log logrus.FieldLogger, cfg Config) Runner {
	return &runner{
		cfg: cfg,
		log: log.WithField("component", "procrun"),
	}
}

func (r *runner) Run(ctx context.Context, jobs []Job, onDone func(Outcome)) *Result {
	start := time.Now()

	workers := r.cfg.Concurrency
	if workers <= 0 || workers > len(jobs) {
		workers = len(jobs)
	}

	r.log.WithFields(logrus.Fields{
		"jobs":    len(jobs),
		"workers": workers,
		"timeout": r.cfg.Timeout,
	}).Debug("starting process batch")

	var (
		doneMu sync.Mutex
		failed atomic.Bool
	)

	outcomes := make([]Outcome, len(jobs))
	sem := make(chan struct{}, max(workers, 1))
	g, gCtx := errgroup.WithContext(ctx)

	finish := func(o Outcome) {
		outcomes[o.Index] = o

		if !o.Passed() {
			failed.Store(true)
		}

		if onDone != nil {
			doneMu.Lock()
			defer doneMu.Unlock()
			onDone(o)
		}
	}

	// Slots are acquired in job order; with a single slot jobs run strictly in sequence.
	for i, job := range jobs {
		select {
		case sem <- struct{}{}:
		case <-gCtx.Done():
			finish(Outcome{Index: i, Job: job, ExitCode: -1, Err: gCtx.Err()})
			continue
		}

		if r.cfg.StopOnFailure && failed.Load() {
			<-sem
			finish(Outcome{Index: i, Job: job, ExitCode: -1, Err: ErrSkipped})

			continue
		}

		i, job := i, job
		g.Go(func() error {
			defer func() { <-sem }()

			finish(r.execute(gCtx, i, job))

			// Failures are recorded as outcomes, never as group errors, so a
			// failing job does not cancel its siblings.
			return nil
		})
	}

	_ = g.Wait()

	result := &Result{
		Outcomes: outcomes,
		Duration: time.Since(start),
	}

	for _, o := range outcomes {
		if o.Passed() {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	r.log.WithFields(logrus.Fields{
		"total":    len(outcomes),
		"passed":   result.Passed,
		"failed":   result.Failed,
		"duration": result.Duration,
	}).Debug("process batch complete")

	return result
}

// execute runs one job to completion.
func (r *runner) execute(ctx context.Context, index int, job Job) Outcome {
	var (
		start   = time.Now()
		outcome = Outcome{Index: index, Job: job, ExitCode: -1}
		log     = r.log.WithField("job", job.Name)
	)

	jobCtx := ctx
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		jobCtx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(jobCtx, job.Path, job.Args...) //nolint:gosec // G204: executing operator supplied tools is the purpose
	cmd.Dir = job.Dir
	cmd.Stdout = job.Stdout // nil connects the null device
	cmd.Stderr = job.Stderr
	cmd.WaitDelay = waitDelay

	log.WithField("args", job.Args).Debug("launching process")

	err := cmd.Run()
	outcome.Duration = time.Since(start)

	var exitErr *exec.ExitError

	switch {
	case err == nil:
		outcome.ExitCode = 0
	case ctx.Err() != nil:
		outcome.Err = fmt.Errorf("process cancelled: %w", ctx.Err())
	case jobCtx.Err() != nil:
		outcome.Err = fmt.Errorf("%w after %s", ErrTimeout, r.cfg.Timeout)
	case errors.As(err, &exitErr):
		outcome.ExitCode = exitErr.ExitCode()
	default:
		outcome.Err = fmt.Errorf("starting process: %w", err)
	}

	log.WithFields(logrus.Fields{
		"exit_code": outcome.ExitCode,
		"duration":  outcome.Duration,
	}).Debug("process finished")

	return outcome
}
