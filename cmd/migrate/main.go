package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path"
	"time"

	"inventory/config"
	logs "inventory/internal/infra/log"
	"inventory/internal/infra/persistence/migrations"
	"inventory/internal/infra/persistence/sqlite"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	pgLib "github.com/slighter12/go-lib/database/postgres"
)

// Supported commands:
// - up:      apply all pending migrations
// - down:    roll back the latest migration
// - status:  print applied and pending migrations
// - version: print the current schema version

func main() {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	driver := fs.String("driver", "", "Override database.driver (postgres, sqlite)")
	sqlitePath := fs.String("sqlite", "", "Override database.sqlitePath")
	fs.Usage = printUsage

	_ = fs.Parse(os.Args[1:])
	if fs.NArg() != 1 {
		printUsage()
		os.Exit(1)
	}

	if err := run(context.Background(), fs.Arg(0), *driver, *sqlitePath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command, driver, sqlitePath string) error {
	cfg, err := config.New()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if driver != "" {
		cfg.Database.Driver = driver
	}
	if sqlitePath != "" {
		cfg.Database.SQLitePath = sqlitePath
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return err
	}

	sqlDB, dialect, err := open(cfg, logger)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	switch command {
	case "up":
		return migrations.Up(ctx, sqlDB, dialect, logger)
	case "down":
		return migrations.Down(ctx, sqlDB, dialect, logger)
	case "status":
		statuses, err := migrations.Status(ctx, sqlDB, dialect)
		if err != nil {
			return err
		}
		printStatus(statuses)

		return nil
	case "version":
		version, err := migrations.Version(ctx, sqlDB, dialect)
		if err != nil {
			return err
		}
		fmt.Println(version)

		return nil
	default:
		printUsage()

		return errors.Errorf("unknown command %q", command)
	}
}

func open(cfg *config.Config, logger *slog.Logger) (*sql.DB, string, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		if cfg.Postgres == nil {
			return nil, "", errors.New("postgres configuration is missing")
		}
		db, err := pgLib.New(cfg.Postgres)
		if err != nil {
			return nil, "", errors.Wrap(err, "failed to connect to PostgreSQL")
		}
		sqlDB, err := db.DB()

		return sqlDB, migrations.DialectPostgres, errors.WithStack(err)
	case config.DriverSQLite:
		db, err := sqlite.Connect(cfg.Database.SQLitePath, logger, cfg.Env.Debug)
		if err != nil {
			return nil, "", err
		}
		sqlDB, err := db.DB()

		return sqlDB, migrations.DialectSQLite, errors.WithStack(err)
	default:
		return nil, "", errors.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func printStatus(statuses []*goose.MigrationStatus) {
	fmt.Printf("%-10s %-22s %s\n", "STATE", "APPLIED AT", "MIGRATION")
	for _, status := range statuses {
		appliedAt := "-"
		if status.State == goose.StateApplied {
			appliedAt = status.AppliedAt.UTC().Format(time.DateTime)
		}
		fmt.Printf("%-10s %-22s %s\n", status.State, appliedAt, path.Base(status.Source.Path))
	}
}

func printUsage() {
	fmt.Println("Usage: migrate [-driver postgres|sqlite] [-sqlite path] <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  up       Apply all pending migrations")
	fmt.Println("  down     Roll back the latest migration")
	fmt.Println("  status   Show applied and pending migrations")
	fmt.Println("  version  Print the current schema version")
}
