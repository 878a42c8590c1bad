package auth

import (
	"context"

	apperrors "betterreads-backend/pkg/errors"
)

// UserContext holds the authenticated caller's identity for one request.
type UserContext struct {
	// Sub is the stable subject identifier issued by the identity provider.
	Sub   string
	Email string
}

type contextKey string

const userContextKey contextKey = "auth_user"

// SetUserInContext attaches the caller identity to the request context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext extracts the caller identity from the context
func GetUserFromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// Subject returns the caller's subject identifier, or an Unauthenticated
// error when no identity is attached. Every caller-scoped operation derives
// its partition key from this value and never from client arguments.
func Subject(ctx context.Context) (string, error) {
	user, ok := GetUserFromContext(ctx)
	if !ok || user.Sub == "" {
		return "", apperrors.NewUnauthenticatedError("no caller identity in request context")
	}
	return user.Sub, nil
}
