// Package auth provides bearer-token authentication for the viewer API.
package auth

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrInvalidAuthHeader is returned when the authorization header is malformed.
	ErrInvalidAuthHeader = errors.New("authorization header must use Bearer scheme")

	// ErrTokenIsEmpty is returned when no authorization token is present.
	ErrTokenIsEmpty = errors.New("authorization token is empty")

	// ErrUnauthenticated is returned when authentication fails.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Authenticator validates bearer tokens and returns user identity.
// Implementations MUST be goroutine-safe.
type Authenticator interface {
	// Authenticate validates a bearer token and returns user identity.
	// Returns error if the token is invalid or expired. The identity
	// string is used for logging. Context allows timeouts for auth
	// backend calls.
	Authenticate(ctx context.Context, token string) (identity string, err error)
}

// TokenFromHeader extracts the bearer token from an Authorization header
// value. Returns ErrTokenIsEmpty for a missing header and
// ErrInvalidAuthHeader for a non-Bearer scheme.
func TokenFromHeader(header string) (string, error) {
	if header == "" {
		return "", ErrTokenIsEmpty
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", ErrInvalidAuthHeader
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", ErrTokenIsEmpty
	}
	return token, nil
}
