package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/duynhne/booking-service/internal/core/domain"
)

const principalKey = "principal"

// TokenValidator resolves a bearer token into a Principal.
type TokenValidator interface {
	Validate(token string) (domain.Principal, error)
}

// RequireAuth rejects requests without a valid "Authorization: Bearer <token>"
// header with 401 and stores the resolved Principal on the context.
func RequireAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		const bearerPrefix = "Bearer "
		token, ok := strings.CutPrefix(authHeader, bearerPrefix)
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
			return
		}

		principal, err := tokens.Validate(token)
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("Token validation failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(principalKey, principal)

		logger := zerolog.Ctx(c.Request.Context()).With().Int64("user_id", int64(principal.ID)).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))

		c.Next()
	}
}

// RequireAdmin answers 403 unless the authenticated Principal is an admin.
// It must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if !principal.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin privileges required"})
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the Principal stored by RequireAuth.
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	principal, ok := v.(domain.Principal)
	return principal, ok
}
