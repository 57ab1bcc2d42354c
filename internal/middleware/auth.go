package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"greencart/internal/domain"
	"greencart/internal/service"
)

// claimsKey is the gin context key holding the caller's *service.Claims.
const claimsKey = "claims"

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	VerifyToken(token string) (*service.Claims, error)
}

// Authenticate returns middleware that requires a valid bearer token.
// Browsers cannot set headers on websocket handshakes, so a "token" query
// parameter is accepted as well.
func Authenticate(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = c.Query("token")
		}

		claims, err := verifier.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": service.ErrInvalidToken.Error()})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole returns middleware that only admits callers with the given role.
// It must run after Authenticate.
func RequireRole(role domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok || claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": service.ErrForbidden.Error()})
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the authenticated caller's claims.
func ClaimsFrom(c *gin.Context) (*service.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*service.Claims)
	return claims, ok
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
