// Package persistence selects the storage driver at startup.
package persistence

import (
	"inventory/config"
	"inventory/internal/errors"
	"inventory/internal/infra/persistence/postgres"
	"inventory/internal/infra/persistence/sqlite"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Params defines the required parameters
type Params struct {
	fx.In

	Postgres postgres.Params
	SQLite   sqlite.Params
	Config   *config.Config
}

// New opens the database named by database.driver.
func New(params Params) (*gorm.DB, error) {
	switch params.Config.Database.Driver {
	case config.DriverPostgres, "":
		return postgres.New(params.Postgres)
	case config.DriverSQLite:
		return sqlite.New(params.SQLite)
	default:
		return nil, errors.Errorf("unsupported database driver %q", params.Config.Database.Driver)
	}
}
