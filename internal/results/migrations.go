package results

import (
	"embed"
	"errors"
	"fmt"
	"net/url"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/clickhouse" // clickhouse driver for migrations
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate applies the embedded schema migrations to the database named in dsn.
func Migrate(log logrus.FieldLogger, dsn string) error {
	log = log.WithField("component", "results")

	connStr, err := migrateURL(dsn)
	if err != nil {
		return err
	}

	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, connStr)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.WithError(errors.Join(srcErr, dbErr)).Warn("Failed to close migration instance")
		}
	}()

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", upErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		log.Debug("No new migrations to apply")
		return nil
	}

	version, dirty, vErr := m.Version()
	if vErr != nil && !errors.Is(vErr, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", vErr)
	}

	log.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("Migrations applied")

	return nil
}

// migrateURL converts a clickhouse-go DSN into the URL form golang-migrate expects.
func migrateURL(dsn string) (string, error) {
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid results DSN: %w", err)
	}

	if len(opts.Addr) == 0 {
		return "", fmt.Errorf("invalid results DSN: %w", errNoAddress)
	}

	database := opts.Auth.Database
	if database == "" {
		database = "default"
	}

	q := url.Values{}
	q.Set("database", database)
	q.Set("x-multi-statement", "true")
	q.Set("x-migrations-table-engine", "MergeTree")

	if opts.Auth.Username != "" {
		q.Set("username", opts.Auth.Username)
	}

	if opts.Auth.Password != "" {
		q.Set("password", opts.Auth.Password)
	}

	return fmt.Sprintf("clickhouse://%s?%s", opts.Addr[0], q.Encode()), nil
}
