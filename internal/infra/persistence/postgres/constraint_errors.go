package postgres

import (
	"strings"

	"inventory/internal/errors"
	"inventory/internal/infra/persistence/model"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

func asPgError(err error) (*pgconn.PgError, bool) {
	return errors.AsType[*pgconn.PgError](err)
}

func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if pgErr, ok := asPgError(err); ok {
		return pgErr.Code == pgUniqueViolation
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	if pgErr, ok := asPgError(err); ok {
		return pgErr.Code == pgForeignKeyViolation
	}

	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isCheckConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	if pgErr, ok := asPgError(err); ok {
		return pgErr.Code == pgCheckViolation
	}

	return strings.Contains(err.Error(), "CHECK constraint failed")
}

// uniqueUserColumn names the users column behind a unique violation, or ""
// when the driver did not say.
func uniqueUserColumn(err error) string {
	if pgErr, ok := asPgError(err); ok {
		switch pgErr.ConstraintName {
		case model.UsersUsernameIndex:
			return "username"
		case model.UsersEmailIndex:
			return "email"
		}

		return ""
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "users.username"):
		return "username"
	case strings.Contains(msg, "users.email"):
		return "email"
	}

	return ""
}
