package api

import (
	"fmt"      // Error formatting
	"net/http" // HTTP status codes

	"event_marketplace/internal/domain"     // Importing domain models
	"event_marketplace/internal/middleware" // Session access
	"event_marketplace/internal/service"    // Marketplace operations

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Exact prices
)

// AddItemForm is posted to /vendor/add-item
type AddItemForm struct {
	Name        string `form:"name" binding:"required"`  // Product name
	Description string `form:"description"`              // Free text
	Category    string `form:"category"`                 // Free text
	Price       string `form:"price" binding:"required"` // Decimal string
	Stock       int    `form:"stock" binding:"min=0"`    // Initial stock
}

// ProductForm targets one product, optionally with a quantity
type ProductForm struct {
	ProductID uint64 `form:"product_id" binding:"required"` // Target product
	Quantity  int    `form:"quantity"`                      // Units, where used
}

// AddStockForm is posted to /vendor/add-stock
type AddStockForm struct {
	ProductID uint64 `form:"product_id" binding:"required"` // Target product
	AddQty    int    `form:"add_qty" binding:"required"`    // Units to add
}

// VendorDashboardHandler shows the vendor counters
func VendorDashboardHandler(dashboards *service.Dashboards) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		c.JSON(http.StatusOK, gin.H{
			"name":  sess.Name,                        // Display name
			"stats": dashboards.Vendor(sess.Username), // Recomputed on every request
		})
	}
}

// VendorProductsHandler lists the vendor's own products
func VendorProductsHandler(catalog *service.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		c.JSON(http.StatusOK, gin.H{"products": catalog.ListByVendor(sess.Username)})
	}
}

// AddItemHandler lists a new product
func AddItemHandler(catalog *service.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		var form AddItemForm
		if err := c.ShouldBind(&form); err != nil {
			redirectAfter(c, "/vendor/products", fmt.Errorf("%w: %v", domain.ErrValidation, err), "add_item")
			return
		}
		price, err := decimal.NewFromString(form.Price)
		if err != nil {
			redirectAfter(c, "/vendor/products", fmt.Errorf("%w: price %q", domain.ErrValidation, form.Price), "add_item")
			return
		}
		_, err = catalog.Create(c.Request.Context(), sess.Username, service.NewProduct{
			Name:        form.Name,
			Description: form.Description,
			Category:    form.Category,
			Price:       price,
			Stock:       form.Stock,
		})
		redirectAfter(c, "/vendor/products", err, "add_item")
	}
}

// AddStockHandler increases stock of an owned product; foreign ids are ignored
func AddStockHandler(catalog *service.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		var form AddStockForm
		if err := c.ShouldBind(&form); err != nil {
			redirectAfter(c, "/vendor/products", fmt.Errorf("%w: %v", domain.ErrValidation, err), "add_stock")
			return
		}
		_, err := catalog.AddStock(c.Request.Context(), sess.Username, form.ProductID, form.AddQty)
		redirectAfter(c, "/vendor/products", err, "add_stock")
	}
}

// DeleteProductHandler removes an owned product
func DeleteProductHandler(catalog *service.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		var form ProductForm
		if err := c.ShouldBind(&form); err != nil {
			redirectAfter(c, "/vendor/products", fmt.Errorf("%w: %v", domain.ErrValidation, err), "delete_product")
			return
		}
		err := catalog.Delete(c.Request.Context(), sess.Username, form.ProductID)
		redirectAfter(c, "/vendor/products", err, "delete_product")
	}
}

// TransactionsHandler lists the orders holding the vendor's products
func TransactionsHandler(orders *service.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		c.JSON(http.StatusOK, orders.VendorLedger(sess.Username))
	}
}

// VendorNotificationsHandler lists the vendor's queue
func VendorNotificationsHandler(notifications *service.Notifications) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		c.JSON(http.StatusOK, gin.H{
			"notifications": notifications.VendorList(sess.Username),   // Newest first
			"unread_count":  notifications.VendorUnread(sess.Username), // Unread entries
		})
	}
}

// VendorMarkReadHandler marks one of the vendor's notifications read
func VendorMarkReadHandler(notifications *service.Notifications) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		var form struct {
			NotificationID uint64 `form:"notification_id" binding:"required"`
		}
		if err := c.ShouldBind(&form); err != nil {
			redirectAfter(c, "/vendor/notifications", fmt.Errorf("%w: %v", domain.ErrValidation, err), "mark_read")
			return
		}
		err := notifications.MarkVendorRead(c.Request.Context(), sess.Username, form.NotificationID)
		redirectAfter(c, "/vendor/notifications", err, "mark_read")
	}
}

// UserRequestsHandler lists the requests users sent to the vendor
func UserRequestsHandler(requests *service.Requests) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		c.JSON(http.StatusOK, gin.H{"requests": requests.ListForVendor(sess.Username)})
	}
}
