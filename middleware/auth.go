package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"grambazaar/models"
	"grambazaar/utils"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Authenticator resolves a raw session token to the caller's identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.Identity, error)
}

// TokenFromRequest reads the session token from the cookie, falling back
// to an Authorization: Bearer header.
func TokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(utils.TokenCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

func setIdentity(c *gin.Context, identity models.Identity) {
	c.Set("userID", identity.UserID)
	c.Set("role", identity.Role)
	c.Set(identityKey, identity)
}

// IdentityFrom returns the identity stored by RequireUser or OptionalAuth.
func IdentityFrom(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}

func abortWithAppError(c *gin.Context, err error) {
	status, msg := http.StatusUnauthorized, "Authentication required"
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		status, msg = appErr.Status(), appErr.Message
		if appErr.Kind == utils.KindInternal {
			msg = "Internal server error"
		}
	}
	c.AbortWithStatusJSON(status, utils.ErrorResponse{Error: msg})
}

// RequireUser rejects requests without a valid session.
func RequireUser(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "Authentication required"})
			return
		}
		identity, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortWithAppError(c, err)
			return
		}
		setIdentity(c, identity)
		c.Next()
	}
}

// RequireAdmin must run after RequireUser.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "Authentication required"})
			return
		}
		if !identity.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{Error: "Admin access required"})
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches an identity when a valid session is present and
// never rejects the request.
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := TokenFromRequest(c); token != "" {
			if identity, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				setIdentity(c, identity)
			}
		}
		c.Next()
	}
}
