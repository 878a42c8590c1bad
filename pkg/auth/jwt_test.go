package auth

import (
	"context"
	"testing"
	"time"

	apperrors "betterreads-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	validator, err := NewJWTValidator(JWTConfig{
		SecretKey: "test-secret",
		Issuer:    "betterreads-backend",
	})
	require.NoError(t, err)

	token, err := validator.IssueToken("user-1", "reader@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "reader@example.com", claims.Email)
}

func TestJWTExpired(t *testing.T) {
	validator, err := NewJWTValidator(JWTConfig{SecretKey: "test-secret"})
	require.NoError(t, err)

	token, err := validator.IssueToken("user-1", "", -time.Minute)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTWrongSecret(t *testing.T) {
	issuer, err := NewJWTValidator(JWTConfig{SecretKey: "secret-a"})
	require.NoError(t, err)
	validator, err := NewJWTValidator(JWTConfig{SecretKey: "secret-b"})
	require.NoError(t, err)

	token, err := issuer.IssueToken("user-1", "", time.Hour)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTRequiresSecret(t *testing.T) {
	_, err := NewJWTValidator(JWTConfig{})
	assert.Error(t, err)
}

func TestSubject(t *testing.T) {
	ctx := SetUserInContext(context.Background(), &UserContext{Sub: "user-1"})
	sub, err := Subject(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)

	_, err = Subject(context.Background())
	assert.True(t, apperrors.IsUnauthenticated(err))

	_, err = Subject(SetUserInContext(context.Background(), &UserContext{}))
	assert.True(t, apperrors.IsUnauthenticated(err))
}
