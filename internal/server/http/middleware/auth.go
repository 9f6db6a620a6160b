package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/Shanthi551/telecom-data-plan/internal/domain/errors"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
	"github.com/Shanthi551/telecom-data-plan/internal/session"
)

const (
	// UserContextKey holds the authenticated *model.User.
	UserContextKey = "user"
	// SessionContextKey holds the caller's *model.Session.
	SessionContextKey = "session"
	authCookieName    = "telecom_session"
)

// Authorizer resolves a client token to its live session and user.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*model.Session, *model.User, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(authorizer Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		s, user, err := authorizer.Authorize(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domainErrors.ErrUnauthorized) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(SessionContextKey, s)
		c.Set(UserContextKey, user)
		c.Next()
	}
}

// RequirePage rejects callers whose role menu does not include page.
func RequirePage(page session.Page) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := c.Get(UserContextKey)
		u, ok := user.(*model.User)
		if !ok || u == nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if !session.CanOpen(u.Role, page) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes the session token cookie and header. maxAge is in seconds.
func SetAuthCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, token, maxAge, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}

// ClearAuthCookie expires the session cookie on the client.
func ClearAuthCookie(c *gin.Context) {
	c.SetCookie(authCookieName, "", -1, "/", "", false, true)
}
