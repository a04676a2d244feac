package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"event_marketplace/internal/domain"     // Domain errors
	"event_marketplace/internal/middleware" // Session access

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// statusOf maps a domain error to an HTTP status
func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrEmptyCart), errors.Is(err, domain.ErrNothingFulfilled):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError answers with the status and message of err
func respondError(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"path":  c.Request.URL.Path,
			"error": err.Error(),
		}).Error("Request failed")
		c.JSON(status, gin.H{"error": "Internal server error"}) // Hide internals
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// redirectAfter finishes a form post with a 303 to target. Domain errors
// from the action are logged and otherwise ignored, like a page reload.
func redirectAfter(c *gin.Context, target string, err error, action string) {
	if err != nil {
		entry := logrus.WithFields(logrus.Fields{
			"action": action,
			"error":  err.Error(),
		})
		if sess := middleware.CurrentSession(c); sess != nil {
			entry = entry.WithField("username", sess.Username)
		}
		if statusOf(err) == http.StatusInternalServerError {
			entry.Error("Action failed")
		} else {
			entry.Debug("Action ignored")
		}
	}
	c.Redirect(http.StatusSeeOther, target)
}
