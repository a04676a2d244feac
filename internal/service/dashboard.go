package service

import (
	"event_marketplace/internal/domain" // Importing domain models
	"event_marketplace/internal/store"  // State the counters read
)

// AdminStats are the admin dashboard counters
type AdminStats struct {
	Users       int `json:"users_count"`    // User accounts
	Vendors     int `json:"vendors_count"`  // Approved vendors
	Products    int `json:"products_count"` // Listed products
	Orders      int `json:"orders_count"`   // Placed orders
	UnreadCount int `json:"unread_count"`   // Unread admin notifications
}

// MaintenanceStats are the admin maintenance totals
type MaintenanceStats struct {
	Users         int `json:"total_users"`
	Vendors       int `json:"total_vendors"`
	Products      int `json:"total_products"`
	Orders        int `json:"total_orders"`
	Notifications int `json:"total_notifications"`
}

// VendorStats are the vendor dashboard counters
type VendorStats struct {
	Products     int `json:"my_products_count"`    // Products the vendor lists
	Orders       int `json:"my_orders_count"`      // Orders with at least one of its lines
	UnreadCount  int `json:"unread_notifications"` // Unread vendor notifications
	UserRequests int `json:"user_requests_count"`  // Requests addressed to it
}

// UserStats are the user dashboard counters
type UserStats struct {
	Products  int `json:"products_count"` // Whole catalog
	CartLines int `json:"cart_count"`     // Distinct cart lines, not units
	Orders    int `json:"orders_count"`   // The user's orders
	Guests    int `json:"guest_count"`    // The user's guests
}

// AllData is the admin dump of every table that has a view
type AllData struct {
	Users    []domain.Profile `json:"users"`
	Vendors  []domain.Profile `json:"vendors"`
	Products []domain.Product `json:"products"`
	Orders   []domain.Order   `json:"orders"`
}

// AdminStatsOf computes the admin dashboard from the state
func AdminStatsOf(st *store.State) AdminStats {
	return AdminStats{
		Users:       len(st.Users),
		Vendors:     len(st.Vendors),
		Products:    len(st.Products),
		Orders:      len(st.Orders),
		UnreadCount: adminUnread(st),
	}
}

// MaintenanceStatsOf computes the maintenance totals from the state
func MaintenanceStatsOf(st *store.State) MaintenanceStats {
	return MaintenanceStats{
		Users:         len(st.Users),
		Vendors:       len(st.Vendors),
		Products:      len(st.Products),
		Orders:        len(st.Orders),
		Notifications: len(st.AdminNotifications),
	}
}

// VendorStatsOf computes a vendor dashboard. An order counts once when any
// of its lines belongs to the vendor.
func VendorStatsOf(st *store.State, vendor string) VendorStats {
	s := VendorStats{UnreadCount: vendorUnread(st, vendor)}
	for _, p := range st.Products {
		if p.Vendor == vendor {
			s.Products++
		}
	}
	for _, o := range st.Orders {
		if o.HasVendor(vendor) {
			s.Orders++ // Once per order, not per line
		}
	}
	for _, r := range st.Requests {
		if r.Vendor == vendor {
			s.UserRequests++
		}
	}
	return s
}

// UserStatsOf computes a user dashboard
func UserStatsOf(st *store.State, username string) UserStats {
	s := UserStats{Products: len(st.Products), CartLines: len(st.Carts[username])}
	for _, o := range st.Orders {
		if o.Username == username {
			s.Orders++
		}
	}
	for _, g := range st.Guests {
		if g.Owner == username {
			s.Guests++
		}
	}
	return s
}

// Dashboards recomputes the aggregates on every call
type Dashboards struct {
	base
}

func (d *Dashboards) Admin() (s AdminStats) {
	d.store.View(func(st *store.State) { s = AdminStatsOf(st) })
	return s
}

func (d *Dashboards) Maintenance() (s MaintenanceStats) {
	d.store.View(func(st *store.State) { s = MaintenanceStatsOf(st) })
	return s
}

func (d *Dashboards) Vendor(vendor string) (s VendorStats) {
	d.store.View(func(st *store.State) { s = VendorStatsOf(st, vendor) })
	return s
}

func (d *Dashboards) User(username string) (s UserStats) {
	d.store.View(func(st *store.State) { s = UserStatsOf(st, username) })
	return s
}

// AllData dumps users, vendors, products and orders without password hashes
func (d *Dashboards) AllData() (out AllData) {
	d.store.View(func(st *store.State) {
		out = AllData{
			Users:    sortedProfiles(st.Users),   // Profiles carry no hash
			Vendors:  sortedProfiles(st.Vendors), // Profiles carry no hash
			Products: append([]domain.Product{}, st.Products...),
			Orders:   append([]domain.Order{}, st.Orders...),
		}
	})
	return out
}
