package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxAuthMethod  = "auth_method"
)

// Authentication methods recorded under CtxAuthMethod.
const (
	MethodFirebase = "firebase"
	MethodAPIKey   = "api_key"
)

// UserFirebaseUID extracts the Firebase UID from the Gin context
// This is set by FirebaseAuthMiddleware
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// AuthMethod reports how the current request was authenticated.
func AuthMethod(c *gin.Context) string {
	return c.GetString(CtxAuthMethod)
}
