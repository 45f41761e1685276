package validator

import (
	"testing"

	domainerrors "finsync/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestValidator_ReportsJSONFieldNames(t *testing.T) {
	err := New().Validate(&loginRequest{Email: "not-an-email"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, []domainerrors.FieldError{
		{Field: "email", Message: "must be a valid email address"},
		{Field: "password", Message: "is required"},
	}, appErr.Details())
	assert.Contains(t, appErr.Message(), "email must be a valid email address")
}

func TestValidator_Valid(t *testing.T) {
	assert.NoError(t, New().Validate(&loginRequest{Email: "bob@example.com", Password: "x"}))
}
