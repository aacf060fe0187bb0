// Package output prints human-friendly progress and results for the tools.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/psydoom/psydoom-tools/internal/format"
	"github.com/psydoom/psydoom-tools/internal/metrics"
	"github.com/psydoom/psydoom-tools/internal/output/table"
)

// CaseStatus is what the formatter needs to report one finished case.
type CaseStatus struct {
	TestSet   string
	Recording string
	Passed    bool
	ExitCode  int
	Duration  time.Duration
	Err       error
}

// Formatter provides clean, human-friendly output
type Formatter interface {
	PrintHeader(title string, sets []string, cases, workers int)
	PrintPhase(phase string)
	PrintProgress(message string, duration time.Duration)
	PrintSuccess(message string)
	PrintError(message string, err error)
	PrintCase(status CaseStatus)
	PrintFailures()
	PrintSummary(elapsed time.Duration)
	PrintAggregate(passed bool, elapsed time.Duration)
}

type formatter struct {
	writer  io.Writer
	verbose bool

	metrics           metrics.Collector
	failuresFormatter *table.FailuresFormatter
	summaryFormatter  *table.SummaryFormatter
	colors            *table.ColorHelper

	green *color.Color
	red   *color.Color
	blue  *color.Color
	gray  *color.Color
}

// NewFormatter creates a new output formatter
func NewFormatter(writer io.Writer, verbose bool, collector metrics.Collector) Formatter {
	renderer := table.NewRenderer()

	return &formatter{
		writer:            writer,
		verbose:           verbose,
		metrics:           collector,
		failuresFormatter: table.NewFailuresFormatter(renderer),
		summaryFormatter:  table.NewSummaryFormatter(renderer),
		colors:            table.NewColorHelper(),
		green:             color.New(color.FgGreen),
		red:               color.New(color.FgRed),
		blue:              color.New(color.FgBlue),
		gray:              color.New(color.FgHiBlack),
	}
}

// PrintHeader prints the run banner
func (f *formatter) PrintHeader(title string, sets []string, cases, workers int) {
	f.PrintPhase(title)
	f.gray.Fprintf(f.writer, "Test sets: %s\n", strings.Join(sets, ", "))
	f.gray.Fprintf(f.writer, "%s, %s\n\n", format.Plural(cases, "case"), format.Plural(workers, "worker"))
}

// PrintPhase prints phase separator
func (f *formatter) PrintPhase(phase string) {
	f.blue.Fprintf(f.writer, "\n▸ %s\n", phase)
}

// PrintProgress prints progress with timing
func (f *formatter) PrintProgress(message string, duration time.Duration) {
	if duration > 0 {
		f.gray.Fprintf(f.writer, "%s (%s)\n", message, format.Duration(duration))
		return
	}

	fmt.Fprintf(f.writer, "%s\n", message)
}

// PrintSuccess prints a green message
func (f *formatter) PrintSuccess(message string) {
	f.green.Fprintf(f.writer, "%s\n", message)
}

// PrintError prints red message + error details
func (f *formatter) PrintError(message string, err error) {
	f.red.Fprintf(f.writer, "%s", message)
	if err != nil {
		f.red.Fprintf(f.writer, ": %v", err)
	}

	fmt.Fprintf(f.writer, "\n")
}

// PrintCase prints the status line of one finished case
func (f *formatter) PrintCase(status CaseStatus) {
	line := f.colors.FormatStatus(status.Passed) + " " + status.Recording

	switch {
	case status.Err != nil:
		line += ": " + f.colors.Failure(status.Err.Error())
	case !status.Passed:
		line += ": " + f.colors.Failure(fmt.Sprintf("exit code %d", status.ExitCode))
	case f.verbose:
		line += f.colors.Muted(fmt.Sprintf(" (%s)", format.Duration(status.Duration)))
	}

	fmt.Fprintln(f.writer, line)
}

// PrintFailures prints a table of failed cases, if any
func (f *formatter) PrintFailures() {
	out := f.failuresFormatter.Format(f.metrics.GetFailedCases())
	if out == "" {
		return
	}

	fmt.Fprintln(f.writer, out)
}

// PrintSummary prints a summary table with aggregate statistics
func (f *formatter) PrintSummary(elapsed time.Duration) {
	fmt.Fprintln(f.writer, f.summaryFormatter.Format(f.metrics.GetSummary(), elapsed))
}

// PrintAggregate prints the overall verdict followed by the elapsed time
func (f *formatter) PrintAggregate(passed bool, elapsed time.Duration) {
	if passed {
		f.PrintSuccess("All demo tests passed!")
	} else {
		f.red.Fprintln(f.writer, "One or more demo tests FAILED!")
	}

	fmt.Fprintf(f.writer, "Elapsed time: %s\n", format.Duration(elapsed))
}
