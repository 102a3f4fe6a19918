package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Middleware returns a gin middleware that authenticates every request
// with a. A nil Authenticator allows all requests through untouched.
//
// On success the authenticated identity is placed on the request context
// and can be read with IdentityFromContext.
func Middleware(a Authenticator) gin.HandlerFunc {
	if a == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		token, err := TokenFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		identity, err := a.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrUnauthenticated.Error()})
			return
		}

		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}
