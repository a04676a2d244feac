package api

import (
	"errors"   // Error inspection
	"fmt"      // Error formatting
	"net/http" // HTTP status codes

	"event_marketplace/internal/domain"     // Importing domain models
	"event_marketplace/internal/middleware" // Session access
	"event_marketplace/internal/service"    // Marketplace operations

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// CartForm is posted to /user/cart
type CartForm struct {
	Action    string `form:"action" binding:"required"` // update, remove or checkout
	ProductID uint64 `form:"product_id"`                // Target line (update, remove)
	Quantity  int    `form:"quantity"`                  // New quantity (update)
}

// GuestForm is posted to /user/guest-list
type GuestForm struct {
	Action  string `form:"action" binding:"required"` // add or delete
	Name    string `form:"guest_name"`                // Guest name (add)
	Email   string `form:"guest_email"`               // Guest email (add)
	Phone   string `form:"guest_phone"`               // Guest phone (add)
	Event   string `form:"event"`                     // Event name (add)
	GuestID uint64 `form:"guest_id"`                  // Entry to remove (delete)
}

// RequestForm is posted to /user/requests
type RequestForm struct {
	Vendor  string `form:"vendor_username"` // Addressed vendor
	Message string `form:"message"`         // Free text
}

// UserDashboardHandler shows the user counters
func UserDashboardHandler(dashboards *service.Dashboards) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		c.JSON(http.StatusOK, gin.H{
			"name":  sess.Name,                      // Display name
			"stats": dashboards.User(sess.Username), // Recomputed on every request
		})
	}
}

// BrowseProductsHandler lists the whole catalog
func BrowseProductsHandler(catalog *service.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"products": catalog.List()})
	}
}

// VendorsHandler lists vendors with their product counts
func VendorsHandler(catalog *service.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"vendors": catalog.VendorDirectory()})
	}
}

// OrdersHandler lists the user's orders
func OrdersHandler(orders *service.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		c.JSON(http.StatusOK, gin.H{"orders": orders.ListByUser(sess.Username)})
	}
}

// AddToCartHandler puts a product in the cart; quantity defaults to 1
func AddToCartHandler(carts *service.Carts) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		var form ProductForm
		if err := c.ShouldBind(&form); err != nil {
			redirectAfter(c, "/user/browse-products", fmt.Errorf("%w: %v", domain.ErrValidation, err), "add_to_cart")
			return
		}
		if form.Quantity == 0 {
			form.Quantity = 1 // Default quantity
		}
		err := carts.Add(c.Request.Context(), sess.Username, form.ProductID, form.Quantity)
		redirectAfter(c, "/user/browse-products", err, "add_to_cart")
	}
}

// CartHandler shows the cart joined against the catalog
func CartHandler(carts *service.Carts) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		view := carts.View(sess.Username)
		c.JSON(http.StatusOK, gin.H{
			"cart_items": view.Items, // Lines with a live product
			"total":      view.Total, // Sum of line totals
		})
	}
}

// CartActionHandler updates or removes a line, or checks out. Lines that
// cannot be filled are dropped without a message.
func CartActionHandler(carts *service.Carts, orders *service.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		var form CartForm
		if err := c.ShouldBind(&form); err != nil {
			redirectAfter(c, "/user/cart", fmt.Errorf("%w: %v", domain.ErrValidation, err), "cart")
			return
		}
		ctx := c.Request.Context()
		var err error
		switch form.Action {
		case "update":
			err = carts.Update(ctx, sess.Username, form.ProductID, form.Quantity)
		case "remove":
			err = carts.Remove(ctx, sess.Username, form.ProductID)
		case "checkout":
			res, checkoutErr := orders.Checkout(ctx, sess.Username)
			if checkoutErr == nil {
				logrus.WithFields(logrus.Fields{
					"order_id": res.Order.ID,
					"username": sess.Username,
				}).Debug("Checkout redirect")
				c.Redirect(http.StatusSeeOther, "/user/orders") // Order placed
				return
			}
			if !errors.Is(checkoutErr, domain.ErrEmptyCart) && !errors.Is(checkoutErr, domain.ErrNothingFulfilled) {
				logrus.WithFields(logrus.Fields{
					"username": sess.Username,
					"error":    checkoutErr.Error(),
				}).Error("Checkout error")
			}
			c.Redirect(http.StatusSeeOther, "/user/cart") // Nothing ordered
			return
		default:
			err = fmt.Errorf("%w: unknown action %q", domain.ErrValidation, form.Action)
		}
		redirectAfter(c, "/user/cart", err, "cart_"+form.Action)
	}
}

// GuestListHandler lists the user's guests
func GuestListHandler(guests *service.Guests) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		c.JSON(http.StatusOK, gin.H{"guests": guests.ListByOwner(sess.Username)})
	}
}

// GuestActionHandler adds or deletes a guest
func GuestActionHandler(guests *service.Guests) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		var form GuestForm
		if err := c.ShouldBind(&form); err != nil {
			redirectAfter(c, "/user/guest-list", fmt.Errorf("%w: %v", domain.ErrValidation, err), "guest")
			return
		}
		var err error
		switch form.Action {
		case "add":
			_, err = guests.Add(c.Request.Context(), sess.Username, service.NewGuest{
				Name:  form.Name,
				Email: form.Email,
				Phone: form.Phone,
				Event: form.Event,
			})
		case "delete":
			err = guests.Delete(c.Request.Context(), sess.Username, form.GuestID)
		default:
			err = fmt.Errorf("%w: unknown action %q", domain.ErrValidation, form.Action)
		}
		redirectAfter(c, "/user/guest-list", err, "guest_"+form.Action)
	}
}

// MyRequestsHandler lists the requests the user sent
func MyRequestsHandler(requests *service.Requests) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		c.JSON(http.StatusOK, gin.H{"requests": requests.ListByUser(sess.Username)})
	}
}

// CreateRequestHandler sends a request to a vendor
func CreateRequestHandler(requests *service.Requests) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		var form RequestForm
		if err := c.ShouldBind(&form); err != nil {
			redirectAfter(c, "/user/requests", fmt.Errorf("%w: %v", domain.ErrValidation, err), "request")
			return
		}
		_, err := requests.Create(c.Request.Context(), sess.Username, form.Vendor, form.Message)
		redirectAfter(c, "/user/requests", err, "request")
	}
}
