package api

import (
	"fmt"      // Error formatting
	"net/http" // HTTP status codes

	"event_marketplace/internal/domain"     // Importing domain models
	"event_marketplace/internal/middleware" // Session access
	"event_marketplace/internal/service"    // Marketplace operations

	"github.com/gin-gonic/gin" // Gin web framework
)

// MembershipForm is posted to /admin/memberships
type MembershipForm struct {
	Action       string `form:"action" binding:"required"` // add or delete
	Username     string `form:"username"`                  // User to enrol (add)
	Tier         string `form:"membership_type"`           // Membership tier (add)
	Duration     string `form:"duration"`                  // Membership duration (add)
	MembershipID uint64 `form:"membership_id"`             // Membership to remove (delete)
}

// NotificationForm is posted to /admin/notifications
type NotificationForm struct {
	Action         string `form:"action" binding:"required"`          // mark_read, approve_vendor or reject_vendor
	NotificationID uint64 `form:"notification_id" binding:"required"` // Target entry
}

// AdminDashboardHandler shows the admin counters
func AdminDashboardHandler(dashboards *service.Dashboards) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		c.JSON(http.StatusOK, gin.H{
			"name":  sess.Name,          // Display name
			"stats": dashboards.Admin(), // Recomputed on every request
		})
	}
}

// MaintenanceHandler shows the table totals
func MaintenanceHandler(dashboards *service.Dashboards) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dashboards.Maintenance())
	}
}

// AllProductsHandler lists every product
func AllProductsHandler(catalog *service.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"products": catalog.List()})
	}
}

// AllDataHandler dumps users, vendors, products and orders
func AllDataHandler(dashboards *service.Dashboards) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dashboards.AllData())
	}
}

// MembershipsHandler lists memberships and the users that can be enrolled
func MembershipsHandler(identity *service.Identity, memberships *service.Memberships) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"users":       identity.Users(),   // Candidates
			"memberships": memberships.List(), // Current memberships
		})
	}
}

// MembershipActionHandler adds or deletes a membership
func MembershipActionHandler(memberships *service.Memberships) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form MembershipForm
		if err := c.ShouldBind(&form); err != nil {
			redirectAfter(c, "/admin/memberships", fmt.Errorf("%w: %v", domain.ErrValidation, err), "membership")
			return
		}
		var err error
		switch form.Action {
		case "add":
			_, err = memberships.Add(c.Request.Context(), form.Username, form.Tier, form.Duration)
		case "delete":
			err = memberships.Delete(c.Request.Context(), form.MembershipID)
		default:
			err = fmt.Errorf("%w: unknown action %q", domain.ErrValidation, form.Action)
		}
		redirectAfter(c, "/admin/memberships", err, "membership_"+form.Action)
	}
}

// AdminNotificationsHandler lists the admin queue
func AdminNotificationsHandler(notifications *service.Notifications) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"notifications": notifications.AdminList(),   // Newest first
			"unread_count":  notifications.AdminUnread(), // Unread entries
		})
	}
}

// AdminNotificationActionHandler marks read, approves or rejects a vendor signup
func AdminNotificationActionHandler(notifications *service.Notifications) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form NotificationForm
		if err := c.ShouldBind(&form); err != nil {
			redirectAfter(c, "/admin/notifications", fmt.Errorf("%w: %v", domain.ErrValidation, err), "notification")
			return
		}
		ctx := c.Request.Context()
		var err error
		switch form.Action {
		case "mark_read":
			err = notifications.MarkAdminRead(ctx, form.NotificationID)
		case "approve_vendor":
			_, err = notifications.ApproveVendor(ctx, form.NotificationID)
		case "reject_vendor":
			err = notifications.RejectVendor(ctx, form.NotificationID)
		default:
			err = fmt.Errorf("%w: unknown action %q", domain.ErrValidation, form.Action)
		}
		redirectAfter(c, "/admin/notifications", err, form.Action)
	}
}
