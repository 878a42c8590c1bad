package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		check  func(error) bool
		status int
	}{
		{"validation", NewValidationError("bad input"), IsValidation, http.StatusBadRequest},
		{"not found", NewNotFoundError("user"), IsNotFound, http.StatusNotFound},
		{"condition failed", NewConditionFailedError("precondition"), IsConditionFailed, http.StatusConflict},
		{"unauthenticated", NewUnauthenticatedError(""), IsUnauthenticated, http.StatusUnauthorized},
		{"not implemented", NewNotImplementedError("Query.foo"), IsNotImplemented, http.StatusNotImplemented},
		{"unavailable", NewUnavailableError("dynamodb", errors.New("down")), IsUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.Equal(t, tt.status, GetAppError(tt.err).HTTPStatus)
		})
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := NewNotFoundError("loan")
	wrapped := fmt.Errorf("returning book: %w", inner)
	assert.True(t, IsNotFound(wrapped))

	rewrapped := Wrap(inner, "more context")
	assert.True(t, IsNotFound(rewrapped))
}

func TestWrapPlainError(t *testing.T) {
	err := Wrap(errors.New("boom"), "doing a thing")
	appErr := GetAppError(err)
	assert.NotNil(t, appErr)
	assert.Equal(t, ErrorTypeInternal, appErr.Type)
	assert.ErrorContains(t, err, "doing a thing")
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "nothing"))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewInternalError("wrapper").WithCause(cause)
	assert.ErrorIs(t, err, cause)
}
