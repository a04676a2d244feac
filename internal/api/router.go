package api

import (
	"event_marketplace/internal/domain"     // Role definitions
	"event_marketplace/internal/middleware" // Custom middleware
	"event_marketplace/internal/service"    // Marketplace operations
	"event_marketplace/internal/session"    // Session store

	"github.com/gin-gonic/gin" // Gin web framework
)

// Deps is everything the HTTP layer needs
type Deps struct {
	Services       *service.Services // Marketplace operations
	Sessions       session.Store     // Session state
	Cookie         CookieOptions     // Session cookie settings
	TrustedProxies []string          // Proxies allowed to set client IP headers
}

// NewRouter builds the gin engine with every route
func NewRouter(d Deps) (*gin.Engine, error) {
	r := gin.New() // Gin router instance
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.SessionMiddleware(d.Cookie.Secret, d.Sessions))

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		return nil, err
	}

	svc := d.Services

	// Public routes
	r.GET("/", IndexHandler())                            // Landing page
	r.GET("/back", BackHandler(d.Sessions))               // Back navigation
	r.GET("/logout", LogoutHandler(d.Sessions, d.Cookie)) // End session
	r.GET("/health", HealthHandler())                     // Liveness

	// Auth routes
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleVendor, domain.RoleUser} {
		path := "/" + role.String() + "/login"
		r.GET(path, FormHandler(path, "username", "password"))
		r.POST(path, LoginHandler(role, svc.Identity, d.Sessions, d.Cookie))
	}
	r.GET("/user/signup", FormHandler("/user/signup", "username", "password", "name", "email", "phone"))
	r.POST("/user/signup", UserSignupHandler(svc.Identity))
	r.GET("/vendor/signup", FormHandler("/vendor/signup", "username", "name", "email", "phone"))
	r.POST("/vendor/signup", VendorSignupHandler(svc.Identity))

	// Admin routes (admin session only)
	admin := r.Group("/admin", middleware.RequireRole(domain.RoleAdmin, d.Sessions))
	admin.GET("/dashboard", AdminDashboardHandler(svc.Dashboards))
	admin.GET("/maintenance", MaintenanceHandler(svc.Dashboards))
	admin.GET("/all-products", AllProductsHandler(svc.Catalog))
	admin.GET("/all-data", AllDataHandler(svc.Dashboards))
	admin.GET("/memberships", MembershipsHandler(svc.Identity, svc.Memberships))
	admin.POST("/memberships", MembershipActionHandler(svc.Memberships))
	admin.GET("/notifications", AdminNotificationsHandler(svc.Notifications))
	admin.POST("/notifications", AdminNotificationActionHandler(svc.Notifications))
	admin.GET("/profile", ProfileHandler(domain.RoleAdmin, svc.Identity))
	admin.POST("/profile", ProfileUpdateHandler(domain.RoleAdmin, svc.Identity, d.Sessions))

	// Vendor routes (vendor session only)
	vendor := r.Group("/vendor", middleware.RequireRole(domain.RoleVendor, d.Sessions))
	vendor.GET("/dashboard", VendorDashboardHandler(svc.Dashboards))
	vendor.GET("/products", VendorProductsHandler(svc.Catalog))
	vendor.GET("/add-item", FormHandler("/vendor/add-item", "name", "description", "category", "price", "stock"))
	vendor.POST("/add-item", AddItemHandler(svc.Catalog))
	vendor.POST("/add-stock", AddStockHandler(svc.Catalog))
	vendor.POST("/update-product", AddStockHandler(svc.Catalog))
	vendor.POST("/delete-product", DeleteProductHandler(svc.Catalog))
	vendor.GET("/transactions", TransactionsHandler(svc.Orders))
	vendor.GET("/notifications", VendorNotificationsHandler(svc.Notifications))
	vendor.POST("/notifications", VendorMarkReadHandler(svc.Notifications))
	vendor.GET("/user-requests", UserRequestsHandler(svc.Requests))
	vendor.GET("/profile", ProfileHandler(domain.RoleVendor, svc.Identity))
	vendor.POST("/profile", ProfileUpdateHandler(domain.RoleVendor, svc.Identity, d.Sessions))

	// User routes (user session only)
	user := r.Group("/user", middleware.RequireRole(domain.RoleUser, d.Sessions))
	user.GET("/dashboard", UserDashboardHandler(svc.Dashboards))
	user.GET("/browse-products", BrowseProductsHandler(svc.Catalog))
	user.GET("/vendors", VendorsHandler(svc.Catalog))
	user.GET("/orders", OrdersHandler(svc.Orders))
	user.POST("/add-to-cart", AddToCartHandler(svc.Carts))
	user.GET("/cart", CartHandler(svc.Carts))
	user.POST("/cart", CartActionHandler(svc.Carts, svc.Orders))
	user.GET("/guest-list", GuestListHandler(svc.Guests))
	user.POST("/guest-list", GuestActionHandler(svc.Guests))
	user.GET("/requests", MyRequestsHandler(svc.Requests))
	user.POST("/requests", CreateRequestHandler(svc.Requests))
	user.GET("/profile", ProfileHandler(domain.RoleUser, svc.Identity))
	user.POST("/profile", ProfileUpdateHandler(domain.RoleUser, svc.Identity, d.Sessions))

	return r, nil
}
