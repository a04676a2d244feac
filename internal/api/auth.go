package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"event_marketplace/internal/domain"     // Importing domain models
	"event_marketplace/internal/middleware" // Session access
	"event_marketplace/internal/service"    // Marketplace operations
	"event_marketplace/internal/session"    // Session state
	"event_marketplace/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// LoginRequest is the login form of every role
type LoginRequest struct {
	Username string `form:"username" binding:"required"` // Username must be provided
	Password string `form:"password" binding:"required"` // Password must be provided
}

// SignupRequest is the user and vendor registration form
type SignupRequest struct {
	Username string `form:"username"` // Checked by the service
	Password string `form:"password"` // Ignored for vendors
	Name     string `form:"name"`     // Display name
	Email    string `form:"email"`    // Contact email
	Phone    string `form:"phone"`    // Contact phone
}

func (r SignupRequest) toSignup() service.Signup {
	return service.Signup{Username: r.Username, Password: r.Password, Name: r.Name, Email: r.Email, Phone: r.Phone}
}

// CookieOptions controls the session cookie
type CookieOptions struct {
	Secret string // JWT signing secret
	Secure bool   // Only send over HTTPS
}

func setSessionCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, token, int(utils.SessionTTL.Seconds()), "/", "", secure, true)
}

func clearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, "", -1, "/", "", secure, true)
}

// IndexHandler is the landing page
func IndexHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := gin.H{
			"title":  "Event Marketplace",
			"logins": []string{"/admin/login", "/vendor/login", "/user/login"},
			"signup": []string{"/user/signup", "/vendor/signup"},
		}
		if sess := middleware.CurrentSession(c); sess != nil {
			resp["username"] = sess.Username  // Logged in user
			resp["role"] = sess.Role.String() // Their role
			resp["home"] = sess.Role.Home()   // Their dashboard
		}
		c.JSON(http.StatusOK, resp)
	}
}

// FormHandler describes a form page: where it posts and which fields it takes
func FormHandler(action string, fields ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"action": action, "fields": fields})
	}
}

// LoginHandler authenticates against the account table of one role and
// starts a session
func LoginHandler(role domain.Role, identity *service.Identity, sessions session.Store, opts CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind form to struct
		if err := c.ShouldBind(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
			return
		}
		acc, err := identity.Authenticate(role, req.Username, req.Password)
		if err != nil {
			// Unknown user, wrong table or bad password all look the same
			logrus.WithFields(logrus.Fields{
				"username": req.Username,
				"role":     role.String(),
			}).Info("Login failed")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials!"})
			return
		}
		// Drop any previous session of this browser
		if prev := middleware.CurrentSession(c); prev != nil {
			_ = sessions.Delete(c.Request.Context(), prev.ID)
		}
		sess := session.New(acc.Username, role, acc.Name)
		if err := sessions.Save(c.Request.Context(), sess); err != nil {
			respondError(c, err)
			return
		}
		token, err := utils.GenerateJWT(sess.ID, role.String(), opts.Secret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		setSessionCookie(c, token, opts.Secure)
		logrus.WithFields(logrus.Fields{
			"username": acc.Username,
			"role":     role.String(),
		}).Info("Login succeeded")
		c.Redirect(http.StatusSeeOther, role.Home()) // Go to the role dashboard
	}
}

// UserSignupHandler registers a user account
func UserSignupHandler(identity *service.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if _, err := identity.SignupUser(c.Request.Context(), req.toSignup()); err != nil {
			signupError(c, err)
			return
		}
		// Signed in visitors go back to their dashboard
		target := domain.RoleNone.Home()
		if sess := middleware.CurrentSession(c); sess != nil {
			target = sess.Role.Home()
		}
		c.Redirect(http.StatusSeeOther, target)
	}
}

// VendorSignupHandler files a vendor registration for admin approval
func VendorSignupHandler(identity *service.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if _, err := identity.SignupVendor(c.Request.Context(), req.toSignup()); err != nil {
			signupError(c, err)
			return
		}
		c.Redirect(http.StatusSeeOther, "/vendor/login") // Wait for approval, then log in
	}
}

func signupError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists!"})
		return
	}
	respondError(c, err)
}

// LogoutHandler ends the session
func LogoutHandler(sessions session.Store, opts CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess := middleware.CurrentSession(c); sess != nil {
			if err := sessions.Delete(c.Request.Context(), sess.ID); err != nil {
				logrus.WithField("error", err.Error()).Warn("Failed to delete session")
			}
		}
		clearSessionCookie(c, opts.Secure)
		c.Redirect(http.StatusFound, domain.RoleNone.Home())
	}
}

// BackHandler steps back: sub-page to dashboard, dashboard to landing page
func BackHandler(sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		target := sess.BackTarget()
		if sess != nil {
			if err := sessions.Save(c.Request.Context(), sess); err != nil {
				logrus.WithField("error", err.Error()).Warn("Failed to save session")
			}
		}
		c.Redirect(http.StatusFound, target)
	}
}

// HealthHandler reports liveness
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
