package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	authctx "github.com/accessguide/accessguide-backend/internal/auth"
)

// APIKeyHeader carries the shared admin key.
const APIKeyHeader = "X-API-Key"

// APIKeyMiddleware accepts requests whose X-API-Key matches expected.
// An empty expected key rejects everything.
func APIKeyMiddleware(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expected == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "admin access is not configured"})
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}

		c.Set(authctx.CtxAuthMethod, authctx.MethodAPIKey)
		c.Next()
	}
}

// AdminAuth picks Firebase token auth when a verifier is available and falls
// back to the shared API key otherwise.
func AdminAuth(verifier TokenVerifier, adminClaim, apiKey string) gin.HandlerFunc {
	if verifier != nil {
		return FirebaseAuthMiddleware(verifier, adminClaim)
	}
	return APIKeyMiddleware(apiKey)
}
