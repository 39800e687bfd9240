// Package migrations embeds the versioned SQL schema and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"
	"log/slog"
	"path"

	"inventory/internal/errors"

	"github.com/pressly/goose/v3"
)

// Goose dialect names for the supported drivers.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

const dir = "sql"

//go:embed sql/*.sql
var embedMigrations embed.FS

// newProvider builds a goose provider scoped to db. It leaves goose's
// package-level state untouched.
func newProvider(db *sql.DB, dialect string) (*goose.Provider, error) {
	var gooseDialect goose.Dialect
	switch dialect {
	case DialectPostgres:
		gooseDialect = goose.DialectPostgres
	case DialectSQLite:
		gooseDialect = goose.DialectSQLite3
	default:
		return nil, errors.Errorf("unsupported migration dialect %q", dialect)
	}

	fsys, err := fs.Sub(embedMigrations, dir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open embedded migrations")
	}

	provider, err := goose.NewProvider(gooseDialect, db, fsys)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migration provider")
	}

	return provider, nil
}

// Up applies every pending migration and logs each one applied.
func Up(ctx context.Context, db *sql.DB, dialect string, logger *slog.Logger) error {
	provider, err := newProvider(db, dialect)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}
	for _, result := range results {
		logResult(ctx, logger, "Migration applied", result)
	}

	return nil
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, db *sql.DB, dialect string, logger *slog.Logger) error {
	provider, err := newProvider(db, dialect)
	if err != nil {
		return err
	}

	result, err := provider.Down(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to roll back migration")
	}
	logResult(ctx, logger, "Migration rolled back", result)

	return nil
}

// Status reports every known migration with its applied state.
func Status(ctx context.Context, db *sql.DB, dialect string) ([]*goose.MigrationStatus, error) {
	provider, err := newProvider(db, dialect)
	if err != nil {
		return nil, err
	}

	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read migration status")
	}

	return statuses, nil
}

// Version returns the current schema version.
func Version(ctx context.Context, db *sql.DB, dialect string) (int64, error) {
	provider, err := newProvider(db, dialect)
	if err != nil {
		return 0, err
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read schema version")
	}

	return version, nil
}

func logResult(ctx context.Context, logger *slog.Logger, msg string, result *goose.MigrationResult) {
	if logger == nil || result == nil || result.Source == nil {
		return
	}

	logger.LogAttrs(ctx, slog.LevelInfo, msg,
		slog.Int64("version", result.Source.Version),
		slog.String("file", path.Base(result.Source.Path)),
		slog.Duration("duration", result.Duration),
	)
}
