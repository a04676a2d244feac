package middleware

import (
	"errors"  // Error inspection
	"strings" // String manipulation

	"event_marketplace/internal/session" // Session store
	"event_marketplace/internal/utils"   // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// CookieName is the cookie carrying the session token
const CookieName = "session"

// sessionKey is the gin context key of the loaded session
const sessionKey = "session"

// tokenFrom reads the token from the session cookie, falling back to a Bearer header
func tokenFrom(c *gin.Context) string {
	if v, err := c.Cookie(CookieName); err == nil && v != "" {
		return v // Cookie wins
	}
	authHeader := c.GetHeader("Authorization") // Get Authorization header
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// SessionMiddleware validates the session token and loads the session it
// points to. Requests without a valid token continue as anonymous.
func SessionMiddleware(secret string, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFrom(c)
		if tokenStr == "" {
			c.Next() // Anonymous
			return
		}
		claims, err := utils.ParseJWT(tokenStr, secret) // Parse the JWT token
		if err != nil {
			logrus.WithField("error", err.Error()).Debug("Ignoring invalid session token")
			c.Next()
			return
		}
		sess, err := sessions.Get(c.Request.Context(), claims.SessionID) // Load session state
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				logrus.WithFields(logrus.Fields{
					"session_id": claims.SessionID,
					"error":      err.Error(),
				}).Error("Failed to load session")
			}
			c.Next()
			return
		}
		c.Set(sessionKey, sess) // Store session in context
		c.Next()                // Proceed to the next handler
	}
}

// CurrentSession returns the session loaded for this request, or nil
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}

// SetSession replaces the session of this request, e.g. right after login
func SetSession(c *gin.Context, sess *session.Session) {
	c.Set(sessionKey, sess)
}
