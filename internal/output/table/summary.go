package table

import (
	"fmt"
	"time"

	"github.com/psydoom/psydoom-tools/internal/format"
	"github.com/psydoom/psydoom-tools/internal/metrics"
)

// SummaryFormatter formats summary statistics as a table.
type SummaryFormatter struct {
	renderer Renderer
	colors   *ColorHelper
}

// NewSummaryFormatter creates a new summary table formatter.
func NewSummaryFormatter(renderer Renderer) *SummaryFormatter {
	return &SummaryFormatter{
		renderer: renderer,
		colors:   NewColorHelper(),
	}
}

// Format converts summary metrics and the run's wall-clock time into a table.
func (f *SummaryFormatter) Format(summary metrics.SummaryMetric, elapsed time.Duration) string {
	passRate := summary.PassRate()

	passedValue := fmt.Sprintf("%d (%s)", summary.PassedCases, f.colors.FormatPercentage(passRate))

	failedValue := f.colors.Success("0")
	if summary.FailedCases > 0 {
		failedValue = f.colors.Failure(fmt.Sprintf("%d (%.1f%%)", summary.FailedCases, 100.0-passRate))
	}

	slowest := "-"
	if summary.SlowestCase != "" {
		slowest = fmt.Sprintf("%s (%s)", summary.SlowestCase, format.Duration(summary.SlowestDuration))
	}

	var (
		headers = []string{"Metric", "Value"}
		rows    = [][]string{
			{"Test Sets", fmt.Sprintf("%d", summary.TestSets)},
			{"Total Cases", f.colors.Bold(fmt.Sprintf("%d", summary.TotalCases))},
			{"Passed", passedValue},
			{"Failed", failedValue},
			{"Slowest Case", slowest},
			{"Elapsed", format.Duration(elapsed)},
		}
	)

	return "\n" + f.colors.Header("▸ Summary") + "\n\n" + f.renderer.RenderToString(headers, rows)
}
