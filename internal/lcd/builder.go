// Package lcd builds PlayStation .LCD sound sample archives by driving the
// external LcdTool once per sample.
package lcd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/psydoom/psydoom-tools/internal/procrun"
	"github.com/sirupsen/logrus"
)

var (
	// ErrAddFailed is returned when the tool fails to add a sample to the archive.
	ErrAddFailed = errors.New("FAILED to add file to LCD") //nolint:staticcheck // message shown verbatim to users

	errNoSamples = errors.New("no samples to add")
)

// Sample is one VAG sound file and the WMD patch sample it belongs to.
type Sample struct {
	PatchIndex int
	File       string
}

// Options configures the archive build.
type Options struct {
	Tool       string
	Output     string
	Module     string
	SamplesDir string
}

// Builder runs LcdTool to create an archive and append samples to it.
type Builder struct {
	log   logrus.FieldLogger
	opts  Options
	procs procrun.Runner
}

// NewBuilder creates a new archive builder. Tool invocations run strictly one
// at a time and the build stops at the first failure.
func NewBuilder(log logrus.FieldLogger, opts Options) *Builder {
	return &Builder{
		log:  log.WithField("component", "lcd"),
		opts: opts,
		procs: procrun.NewRunner(log, procrun.Config{
			Concurrency:   1,
			StopOnFailure: true,
		}),
	}
}

// samplePath returns the path of a sample file as passed to the tool.
func (b *Builder) samplePath(s Sample) string {
	if b.opts.SamplesDir == "" {
		return s.File
	}

	return filepath.Join(b.opts.SamplesDir, s.File)
}

// jobs returns one tool invocation per sample; the first creates the archive
// and the rest append to it.
func (b *Builder) jobs(samples []Sample) []procrun.Job {
	jobs := make([]procrun.Job, 0, len(samples))

	for i, s := range samples {
		op := "-append"
		if i == 0 {
			op = "-create"
		}

		jobs = append(jobs, procrun.Job{
			Name: s.File,
			Path: b.opts.Tool,
			Args: []string{b.opts.Output, b.opts.Module, op, strconv.Itoa(s.PatchIndex), b.samplePath(s)},
		})
	}

	return jobs
}

// Build creates the archive from samples. onAdded, when non-nil, is called
// after each sample is added successfully.
func (b *Builder) Build(ctx context.Context, samples []Sample, onAdded func(Sample)) error {
	if len(samples) == 0 {
		return errNoSamples
	}

	b.log.WithFields(logrus.Fields{
		"output":  b.opts.Output,
		"module":  b.opts.Module,
		"samples": len(samples),
	}).Info("Building LCD archive")

	var failure error

	result := b.procs.Run(ctx, b.jobs(samples), func(o procrun.Outcome) {
		if o.Passed() {
			if onAdded != nil {
				onAdded(samples[o.Index])
			}

			return
		}

		if failure != nil || errors.Is(o.Err, procrun.ErrSkipped) {
			return
		}

		failure = fmt.Errorf("%w: %s", ErrAddFailed, b.samplePath(samples[o.Index]))

		b.log.WithFields(logrus.Fields{
			"sample":    o.Job.Name,
			"exit_code": o.ExitCode,
		}).WithError(o.Err).Debug("LcdTool failed")
	})

	if failure != nil {
		return failure
	}

	b.log.WithField("duration", result.Duration).Info("LCD archive built")

	return nil
}
