package api

import (
	"fmt"      // Error formatting
	"net/http" // HTTP status codes

	"event_marketplace/internal/domain"     // Importing domain models
	"event_marketplace/internal/middleware" // Session access
	"event_marketplace/internal/service"    // Marketplace operations
	"event_marketplace/internal/session"    // Session state

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// ProfileForm is posted to /<role>/profile
type ProfileForm struct {
	Name        string `form:"name"`         // Display name
	Email       string `form:"email"`        // Contact email
	Phone       string `form:"phone"`        // Ignored for admins
	NewPassword string `form:"new_password"` // Empty keeps the password
}

func profilePath(role domain.Role) string {
	return "/" + role.String() + "/profile"
}

// ProfileHandler shows the caller's own account
func ProfileHandler(role domain.Role, identity *service.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		acc, err := identity.Account(role, sess.Username)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": acc.Username, "profile": acc.Profile()})
	}
}

// ProfileUpdateHandler edits the caller's own account; the session display
// name follows the new name
func ProfileUpdateHandler(role domain.Role, identity *service.Identity, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		var form ProfileForm
		if err := c.ShouldBind(&form); err != nil {
			redirectAfter(c, profilePath(role), fmt.Errorf("%w: %v", domain.ErrValidation, err), "profile")
			return
		}
		acc, err := identity.UpdateProfile(c.Request.Context(), role, sess.Username, service.ProfileUpdate{
			Name:        form.Name,
			Email:       form.Email,
			Phone:       form.Phone,
			NewPassword: form.NewPassword,
		})
		if err == nil && acc.Name != sess.Name {
			sess.Name = acc.Name // Keep the greeting in sync
			if serr := sessions.Save(c.Request.Context(), sess); serr != nil {
				logrus.WithField("error", serr.Error()).Warn("Failed to save session")
			}
		}
		redirectAfter(c, profilePath(role), err, "profile")
	}
}
