package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"diarybook/src/app/http/response"
	"diarybook/src/core/domain"
	"diarybook/src/core/ports"
)

// IdentityKey is the context key under which the verified identity is stored.
const IdentityKey = "identity"

const bearerPrefix = "Bearer "

// Authenticate rejects requests without a valid token and binds the caller's
// identity to the context otherwise. The cookie named cookieName is checked
// before the Authorization header.
func Authenticate(verifier ports.TokenVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := verifier.Verify(extractToken(c, cookieName))
		if err != nil {
			response.FromDomainError(c, err, GetRequestID(c), false)
			return
		}

		c.Set(IdentityKey, id)
		c.Next()
	}
}

// OptionalAuth binds an identity when a valid token is present and lets every
// request through regardless.
func OptionalAuth(verifier ports.TokenVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c, cookieName); token != "" {
			if id, err := verifier.Verify(token); err == nil {
				c.Set(IdentityKey, id)
			}
		}
		c.Next()
	}
}

// GetIdentity returns the identity bound by Authenticate or OptionalAuth.
func GetIdentity(c *gin.Context) (domain.Identity, bool) {
	if v, ok := c.Get(IdentityKey); ok {
		if id, ok := v.(domain.Identity); ok && !id.IsZero() {
			return id, true
		}
	}
	return domain.Identity{}, false
}

func extractToken(c *gin.Context, cookieName string) string {
	if cookieName != "" {
		if token, err := c.Cookie(cookieName); err == nil && token != "" {
			return token
		}
	}

	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, bearerPrefix); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
