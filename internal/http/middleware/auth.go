package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/secondchance/connect-backend/internal/auth"
	"github.com/secondchance/connect-backend/internal/domain"
)

// authContextKey is the Gin context key under which the authenticated
// caller's identity is stored.
const authContextKey = "authContext"

// Authenticate resolves the Authorization header into an AuthContext and
// stores it in the Gin context for downstream handlers.
//
// It never aborts: requests without a usable token simply proceed with no
// auth context, and the route wrapper decides whether that is a 401. This
// keeps unauthenticated endpoints (health, metrics) out of the auth path
// entirely.
func Authenticate(p auth.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, err := p.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			if !errors.Is(err, auth.ErrNoToken) {
				LoggerFrom(c).Debug().Err(err).Msg("token rejected")
			}
			c.Next()
			return
		}
		c.Set(authContextKey, ac)
		c.Next()
	}
}

// AuthFrom returns the authenticated caller's identity, if any.
func AuthFrom(c *gin.Context) (domain.AuthContext, bool) {
	if v, ok := c.Get(authContextKey); ok {
		if ac, ok := v.(domain.AuthContext); ok {
			return ac, true
		}
	}
	return domain.AuthContext{}, false
}

// SetAuth stores an auth context directly. Intended for tests that bypass
// token verification.
func SetAuth(c *gin.Context, ac domain.AuthContext) {
	c.Set(authContextKey, ac)
}
