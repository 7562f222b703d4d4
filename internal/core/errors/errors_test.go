package errors_test

import (
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/lorrc/user-management-api/internal/core/errors"
	"github.com/stretchr/testify/assert"
)

func TestStoreError(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("service: %w", apperrors.NewStoreError("create user", cause))

	var storeErr *apperrors.StoreError
	assert.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "create user", storeErr.Op)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	assert.Equal(t, "service: create user: connection refused", err.Error())
}

func TestStoreError_NilCause(t *testing.T) {
	err := apperrors.NewStoreError("probe", nil)
	assert.Equal(t, "probe: store unavailable", err.Error())
}

func TestValidationErrors(t *testing.T) {
	errs := apperrors.NewValidationErrors()
	assert.False(t, errs.HasErrors())

	errs.Add("email", "Email is required")
	errs.Add("email", "Invalid email format")
	errs.Add("name", "Name is required")

	assert.True(t, errs.HasErrors())
	assert.Len(t, errs.Errors["email"], 2)
	assert.Equal(t, "validation failed: 2 field(s) have errors", errs.Error())
}

func TestAppError(t *testing.T) {
	cause := errors.New("unexpected content type")
	err := apperrors.NewBadRequestError(cause, "Invalid request body")
	assert.Equal(t, 400, err.StatusCode)
	assert.Equal(t, "BAD_REQUEST", err.Code)
	assert.Equal(t, "Invalid request body", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := &apperrors.AppError{Err: cause}
	assert.Equal(t, "unexpected content type", bare.Error())
}
