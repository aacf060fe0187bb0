// Package metrics collects per-case demo test outcomes and aggregates them.
package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// CaseMetric captures the outcome of a single demo test case.
type CaseMetric struct {
	TestSet      string
	Recording    string
	Expected     string
	Passed       bool
	ExitCode     int
	Duration     time.Duration
	ErrorMessage string // empty unless the process could not run to completion
	Timestamp    time.Time
}

// SummaryMetric provides aggregate statistics across all recorded cases.
type SummaryMetric struct {
	TotalCases      int
	PassedCases     int
	FailedCases     int
	TestSets        int
	SlowestCase     string
	SlowestDuration time.Duration
}

// PassRate returns the percentage of passed cases.
func (s SummaryMetric) PassRate() float64 {
	if s.TotalCases == 0 {
		return 0
	}

	return float64(s.PassedCases) / float64(s.TotalCases) * 100.0
}

// Collector interface for metrics collection
type Collector interface {
	Start(ctx context.Context) error
	Stop() error
	RecordCase(metric *CaseMetric)
	GetCaseMetrics() []CaseMetric
	GetFailedCases() []CaseMetric
	GetSummary() SummaryMetric
}

type collector struct {
	log   logrus.FieldLogger
	mu    sync.RWMutex
	cases []CaseMetric
}

// NewCollector creates a new metrics collector
func NewCollector(log logrus.FieldLogger) Collector {
	return &collector{
		log:   log.WithField("component", "metrics_collector"),
		cases: make([]CaseMetric, 0, 64),
	}
}

func (c *collector) Start(_ context.Context) error {
	c.log.Debug("metrics collector started")

	return nil
}

func (c *collector) Stop() error {
	c.log.Debug("metrics collector stopped")

	return nil
}

func (c *collector) RecordCase(metric *CaseMetric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cases = append(c.cases, *metric)
}

func (c *collector) GetCaseMetrics() []CaseMetric {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]CaseMetric, len(c.cases))
	copy(result, c.cases)

	return result
}

func (c *collector) GetFailedCases() []CaseMetric {
	c.mu.RLock()
	defer c.mu.RUnlock()

	failed := make([]CaseMetric, 0)
	for _, cm := range c.cases {
		if !cm.Passed {
			failed = append(failed, cm)
		}
	}

	return failed
}

func (c *collector) GetSummary() SummaryMetric {
	c.mu.RLock()
	defer c.mu.RUnlock()

	summary := SummaryMetric{TotalCases: len(c.cases)}
	sets := make(map[string]struct{})

	for _, cm := range c.cases {
		sets[cm.TestSet] = struct{}{}

		if cm.Passed {
			summary.PassedCases++
		} else {
			summary.FailedCases++
		}

		if cm.Duration > summary.SlowestDuration {
			summary.SlowestDuration = cm.Duration
			summary.SlowestCase = cm.Recording
		}
	}

	summary.TestSets = len(sets)

	return summary
}

// Compile-time interface compliance check
var _ Collector = (*collector)(nil)
