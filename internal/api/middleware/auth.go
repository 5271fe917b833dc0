package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"wardrobe/internal/api/models"
	"wardrobe/internal/api/repository"
	"wardrobe/internal/session"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

const userContextKey = "currentUser"

// Auth resolves the session cookie of incoming requests to a user. It is
// the only place tokens are read back out of requests.
type Auth struct {
	sessions *session.Service
	users    repository.UserRepository
}

// NewAuth creates the authentication middleware over the given token
// service and user store.
func NewAuth(sessions *session.Service, users repository.UserRepository) *Auth {
	return &Auth{sessions: sessions, users: users}
}

// CurrentUser attaches the requesting user to the context when the session
// cookie resolves to one. The request continues either way.
func (a *Auth) CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := a.resolve(c); user != nil {
			c.Set(userContextKey, user)
		}
		c.Next()
	}
}

// RequireUser redirects to the login page when no user resolves. This is
// control flow, not a failure: the client is sent to authenticate, never
// served a 5xx.
func (a *Auth) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := a.resolve(c)
		if user == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

// resolve walks cookie -> token -> username -> user. Every failure along the
// way collapses to nil.
func (a *Auth) resolve(c *gin.Context) *models.User {
	token, err := c.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}
	username, ok := a.sessions.Verify(token)
	if !ok {
		return nil
	}
	user, err := a.users.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		slog.Error("failed to look up session user", "username", username, "error", err)
		return nil
	}
	return user
}

// UserFromContext returns the user attached by CurrentUser or RequireUser.
func UserFromContext(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
