package middleware

import (
	"net/http" // HTTP status codes

	"event_marketplace/internal/domain"  // Role definitions
	"event_marketplace/internal/session" // Session store

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// RequireRole lets a request through only when the session is logged in with
// the given role. Anyone else is sent to their own dashboard, or to the
// landing page when anonymous. It also keeps the at-home flag used by back
// navigation: the role dashboard sets it, every other page clears it.
func RequireRole(role domain.Role, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		// Check that the session exists and carries the requested role
		if sess == nil || sess.Username == "" || sess.Role != role {
			target := domain.RoleNone.Home()
			if sess != nil {
				target = sess.Role.Home() // Send other roles to their own dashboard
			}
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		atHome := c.FullPath() == role.Home()
		if sess.AtHome != atHome {
			sess.AtHome = atHome
			if err := sessions.Save(c.Request.Context(), sess); err != nil {
				logrus.WithFields(logrus.Fields{
					"session_id": sess.ID,
					"error":      err.Error(),
				}).Warn("Failed to save session")
			}
		}
		c.Next() // Role matches, proceed
	}
}
