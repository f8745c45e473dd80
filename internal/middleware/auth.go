package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inc-tasks/task-api/internal/constants"
	apierrors "github.com/inc-tasks/task-api/internal/errors"
	"github.com/inc-tasks/task-api/internal/security"
)

// MsgTokenRequired is returned when the Authorization header is missing or not a bearer token
const MsgTokenRequired = "Authorization token required"

// TokenVerifier decodes access tokens
type TokenVerifier interface {
	VerifyAccessToken(token string) (*security.Claims, error)
}

// RequireAuth rejects requests without a valid access token and stores the identity in context
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			apierrors.Unauthorized(c, MsgTokenRequired)
			c.Abort()
			return
		}

		claims, err := verifier.VerifyAccessToken(token)
		if err != nil {
			apierrors.Respond(c, err)
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth stores the identity when a valid access token is present and otherwise
// lets the request through anonymously
func OptionalAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := verifier.VerifyAccessToken(token); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth. It allows the admin role or the Admin permission.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			apierrors.Unauthorized(c, MsgTokenRequired)
			c.Abort()
			return
		}
		if !identity.IsAdmin() {
			apierrors.ForbiddenResponse(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetIdentity retrieves the authenticated caller from context
func GetIdentity(c *gin.Context) (*security.Claims, bool) {
	value, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*security.Claims)
	return claims, ok
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

func setIdentity(c *gin.Context, claims *security.Claims) {
	c.Set(constants.ContextKeyIdentity, claims)
	c.Set(constants.ContextKeyUserID, claims.UserID)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
