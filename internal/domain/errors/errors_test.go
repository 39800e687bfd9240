package errors

import (
	"net/http"
	"testing"

	"inventory/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WithDetailsStillMatches(t *testing.T) {
	fields := []FieldError{{Field: "email", Rule: "email", Message: "email must be a valid email address"}}
	err := NewValidationError(fields)

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.False(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, fields, err.Details())
	assert.Nil(t, ErrValidationFailed.Details())
}

func TestBaseError_WrapMessageKeepsAppError(t *testing.T) {
	err := ErrProductNotFound.WrapMessage("update product")

	var appErr AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode())
	assert.Equal(t, "PRODUCT_NOT_FOUND", appErr.ErrorCode())
	assert.Contains(t, err.Error(), "update product")
}

func TestDatabaseExecuteError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDatabaseExecuteError(cause, "failed to create product")

	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", err.ErrorCode())
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, errors.Is(err, cause))
}
