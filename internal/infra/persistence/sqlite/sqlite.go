// Package sqlite opens an embedded SQLite database through the pure-Go glebarez driver.
// It backs local development and the repository tests.
package sqlite

import (
	"context"
	"log/slog"
	"time"

	"inventory/config"
	"inventory/internal/errors"
	"inventory/internal/infra/persistence/gormlog"
	"inventory/internal/infra/persistence/migrations"

	"github.com/glebarez/sqlite"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Open connects to the database at path with foreign keys enforced and applies
// the same goose migrations PostgreSQL runs.
func Open(path string, logger *slog.Logger, debug bool) (*gorm.DB, error) {
	db, err := Connect(path, logger, debug)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get SQLite sql.DB")
	}

	if err := migrations.Up(context.Background(), sqlDB, migrations.DialectSQLite, logger); err != nil {
		return nil, err
	}

	return db, nil
}

// Connect opens the database without touching the schema.
func Connect(path string, logger *slog.Logger, debug bool) (*gorm.DB, error) {
	if path == "" {
		path = MemoryPath
	}

	db, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)"), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlog.New(logger, debug),
		// Timestamp columns carry no zone; everything is stored as UTC.
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open SQLite database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get SQLite sql.DB")
	}
	// Every connection to :memory: is a separate database.
	if path == MemoryPath {
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// New opens the configured database and closes it on shutdown.
func New(params Params) (*gorm.DB, error) {
	db, err := Open(params.Config.Database.SQLitePath, params.Logger, params.Config.Env.Debug)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get SQLite sql.DB")
	}

	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping SQLite")
			}
			params.Logger.Info("SQLite database ready", slog.String("path", params.Config.Database.SQLitePath))

			return nil
		},
		OnStop: func(_ context.Context) error {
			return sqlDB.Close()
		},
	})

	return db, nil
}
