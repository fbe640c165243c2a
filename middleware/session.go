package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"wellness-admin/models"
	"wellness-admin/session"
)

const (
	SessionCookie = "wellness_session"

	sessionKey   = "session"
	sessionIDKey = "session_id"
)

// LoadSession resolves the session cookie once per request and stores the
// result on the gin context. A missing or stale cookie leaves the request anonymous.
func LoadSession(svc *session.Service, secure bool, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || id == "" {
			c.Next()
			return
		}

		sess, err := svc.Get(c.Request.Context(), id)
		switch {
		case err == nil:
			c.Set(sessionKey, sess)
			c.Set(sessionIDKey, id)
		case errors.Is(err, session.ErrNoSession):
			ClearSessionCookie(c, secure)
		default:
			logger.Printf("session lookup failed: %v", err)
			_ = c.Error(err)
		}
		c.Next()
	}
}

// RequireSession sends anonymous requests to the login page.
func RequireSession(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentSession(c); !ok {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

func CurrentSession(c *gin.Context) (*models.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*models.Session)
	return sess, ok && sess != nil
}

func CurrentSessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

func SetSessionCookie(c *gin.Context, id string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, maxAge, "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}
