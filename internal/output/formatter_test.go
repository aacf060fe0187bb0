package output

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/psydoom/psydoom-tools/internal/metrics"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestFormatter(t *testing.T, verbose bool) (*bytes.Buffer, metrics.Collector, Formatter) {
	t.Helper()

	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	var (
		buf       = &bytes.Buffer{}
		collector = metrics.NewCollector(logrus.New())
	)

	return buf, collector, NewFormatter(buf, verbose, collector)
}

func TestFormatter_PrintCase(t *testing.T) {
	buf, _, f := newTestFormatter(t, false)

	f.PrintCase(CaseStatus{TestSet: "doom_ntsc", Recording: "doom_ntsc/MAP01.LMP", Passed: true})
	f.PrintCase(CaseStatus{TestSet: "doom_ntsc", Recording: "doom_ntsc/MAP37.LMP", ExitCode: 1})
	f.PrintCase(CaseStatus{TestSet: "doom_ntsc", Recording: "doom_ntsc/MAP38.LMP", ExitCode: -1, Err: errors.New("process timed out")})

	assert.Equal(t,
		"✓ PASS doom_ntsc/MAP01.LMP\n"+
			"✗ FAIL doom_ntsc/MAP37.LMP: exit code 1\n"+
			"✗ FAIL doom_ntsc/MAP38.LMP: process timed out\n",
		buf.String(),
	)
}

func TestFormatter_PrintCaseVerboseIncludesDuration(t *testing.T) {
	buf, _, f := newTestFormatter(t, true)

	f.PrintCase(CaseStatus{Recording: "doom_ntsc/MAP01.LMP", Passed: true, Duration: 1500 * time.Millisecond})

	assert.Equal(t, "✓ PASS doom_ntsc/MAP01.LMP (1.5s)\n", buf.String())
}

func TestFormatter_PrintAggregate(t *testing.T) {
	t.Run("passed", func(t *testing.T) {
		buf, _, f := newTestFormatter(t, false)
		f.PrintAggregate(true, 2*time.Second)
		assert.Equal(t, "All demo tests passed!\nElapsed time: 2.0s\n", buf.String())
	})

	t.Run("failed", func(t *testing.T) {
		buf, _, f := newTestFormatter(t, false)
		f.PrintAggregate(false, 2*time.Second)
		assert.Equal(t, "One or more demo tests FAILED!\nElapsed time: 2.0s\n", buf.String())
	})
}

func TestFormatter_PrintFailuresOnlyWhenFailed(t *testing.T) {
	buf, collector, f := newTestFormatter(t, false)

	collector.RecordCase(&metrics.CaseMetric{TestSet: "doom_ntsc", Recording: "doom_ntsc/MAP01.LMP", Passed: true})
	f.PrintFailures()
	assert.Empty(t, buf.String())

	collector.RecordCase(&metrics.CaseMetric{TestSet: "doom_ntsc", Recording: "doom_ntsc/MAP37.LMP", ExitCode: 1})
	f.PrintFailures()
	assert.Contains(t, buf.String(), "doom_ntsc/MAP37.LMP")
	assert.NotContains(t, buf.String(), "doom_ntsc/MAP01.LMP")
}
