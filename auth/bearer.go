package auth

import "context"

// bearerAuthenticator wraps a user-provided validation function.
type bearerAuthenticator struct {
	validateFunc func(token string) (identity string, err error)
}

// BearerAuth creates an Authenticator from a validation function.
// This is the simplest way to add authentication.
//
// Example:
//
//	a := auth.BearerAuth(func(token string) (string, error) {
//	    user, err := validateWithMyBackend(token)
//	    if err != nil {
//	        return "", auth.ErrUnauthenticated
//	    }
//	    return user.ID, nil
//	})
func BearerAuth(validateFunc func(token string) (identity string, err error)) Authenticator {
	return &bearerAuthenticator{validateFunc: validateFunc}
}

func (b *bearerAuthenticator) Authenticate(ctx context.Context, token string) (string, error) {
	return b.validateFunc(token)
}

// noAuthenticator allows every request.
type noAuthenticator struct{}

// NoAuth returns an Authenticator that allows all requests without
// validation. Useful for development and testing. DO NOT use in production.
func NoAuth() Authenticator {
	return noAuthenticator{}
}

func (noAuthenticator) Authenticate(ctx context.Context, token string) (string, error) {
	return "anonymous", nil
}
