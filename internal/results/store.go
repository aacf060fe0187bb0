// Package results persists demo test outcomes to ClickHouse.
package results

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/google/uuid"
	"github.com/psydoom/psydoom-tools/internal/metrics"
	"github.com/sirupsen/logrus"
)

const (
	tableName   = "demo_test_results"
	pingTimeout = 5 * time.Second
)

var errNoAddress = errors.New("no server address")

// Run describes one invocation of the demo test runner.
type Run struct {
	ID        uuid.UUID
	StartedAt time.Time
	Mode      string
	Cases     []metrics.CaseMetric
}

// NewRun starts a run record with a fresh identifier.
func NewRun(mode string, startedAt time.Time) Run {
	return Run{
		ID:        uuid.New(),
		StartedAt: startedAt,
		Mode:      mode,
	}
}

// row is one record of the demo_test_results table.
type row struct {
	RunID        uuid.UUID
	RunStartedAt time.Time
	Mode         string
	TestSet      string
	Recording    string
	Expected     string
	Passed       bool
	ExitCode     int32
	DurationMS   uint64
	Error        string
	FinishedAt   time.Time
}

func (r Run) rows() []row {
	rows := make([]row, 0, len(r.Cases))

	for _, c := range r.Cases {
		rows = append(rows, row{
			RunID:        r.ID,
			RunStartedAt: r.StartedAt,
			Mode:         r.Mode,
			TestSet:      c.TestSet,
			Recording:    c.Recording,
			Expected:     c.Expected,
			Passed:       c.Passed,
			ExitCode:     int32(c.ExitCode), //nolint:gosec // exit codes fit in int32
			DurationMS:   uint64(max(c.Duration.Milliseconds(), 0)),
			Error:        c.ErrorMessage,
			FinishedAt:   c.Timestamp,
		})
	}

	return rows
}

// Store writes runs to ClickHouse.
type Store struct {
	log  logrus.FieldLogger
	conn driver.Conn
}

// Open connects to ClickHouse using a clickhouse-go DSN and verifies the connection.
func Open(ctx context.Context, log logrus.FieldLogger, dsn string) (*Store, error) {
	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid results DSN: %w", err)
	}

	options.DialTimeout = 30 * time.Second
	options.Compression = &clickhouse.Compression{Method: clickhouse.CompressionLZ4}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := conn.Ping(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &Store{
		log:  log.WithField("component", "results"),
		conn: conn,
	}, nil
}

// Write inserts every case of the run in a single batch.
func (s *Store) Write(ctx context.Context, run Run) error {
	rows := run.rows()
	if len(rows) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, "INSERT INTO "+tableName)
	if err != nil {
		return fmt.Errorf("failed to prepare batch: %w", err)
	}

	for _, r := range rows {
		if err := batch.Append(
			r.RunID,
			r.RunStartedAt,
			r.Mode,
			r.TestSet,
			r.Recording,
			r.Expected,
			r.Passed,
			r.ExitCode,
			r.DurationMS,
			r.Error,
			r.FinishedAt,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("failed to append row for %s: %w", r.Recording, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"run_id": run.ID.String(),
		"rows":   len(rows),
	}).Info("Stored demo test results")

	return nil
}

// Close releases the connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Publish migrates the schema and stores the run, managing the connection itself.
func Publish(ctx context.Context, log logrus.FieldLogger, dsn string, run Run) error {
	if err := Migrate(log, dsn); err != nil {
		return err
	}

	store, err := Open(ctx, log, dsn)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	return store.Write(ctx, run)
}
