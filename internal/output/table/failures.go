package table

import (
	"fmt"

	"github.com/psydoom/psydoom-tools/internal/format"
	"github.com/psydoom/psydoom-tools/internal/metrics"
)

const maxDetailLength = 60

// FailuresFormatter formats failed demo test cases as a table.
type FailuresFormatter struct {
	renderer Renderer
	colors   *ColorHelper
}

// NewFailuresFormatter creates a new failed-case table formatter.
func NewFailuresFormatter(renderer Renderer) *FailuresFormatter {
	return &FailuresFormatter{
		renderer: renderer,
		colors:   NewColorHelper(),
	}
}

// Format converts failed case metrics into a table. It returns an empty
// string when nothing failed.
func (f *FailuresFormatter) Format(failed []metrics.CaseMetric) string {
	if len(failed) == 0 {
		return ""
	}

	var (
		headers = []string{"Test Set", "Recording", "Exit Code", "Duration", "Details"}
		rows    = make([][]string, 0, len(failed))
	)

	for _, cm := range failed {
		details := cm.ErrorMessage
		if details == "" {
			details = fmt.Sprintf("result mismatch against %s", cm.Expected)
		}

		if len(details) > maxDetailLength {
			details = details[:maxDetailLength-3] + "..."
		}

		rows = append(rows, []string{
			cm.TestSet,
			cm.Recording,
			f.colors.FormatExitCode(cm.ExitCode),
			format.Duration(cm.Duration),
			f.colors.Muted(details),
		})
	}

	return "\n" + f.colors.Header("▸ Failed Cases") + "\n\n" + f.renderer.RenderToString(headers, rows)
}
