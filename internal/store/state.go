package store

import (
	"event_marketplace/internal/domain"
)

// Table names one durable record of the persisted state
type Table string

const (
	TableAdmins              Table = "admins"               // Admin accounts
	TableVendors             Table = "vendors"              // Vendor accounts
	TableUsers               Table = "users"                // User accounts
	TableProducts            Table = "products"             // Catalog, with id sequence
	TableCarts               Table = "carts"                // Per-user carts
	TableOrders              Table = "orders"               // Placed orders, with id sequence
	TableAdminNotifications  Table = "admin_notifications"  // Admin queue, with id sequence
	TableVendorNotifications Table = "vendor_notifications" // Vendor queues, with id sequence
	TableMemberships         Table = "memberships"          // Memberships, with id sequence
	TableGuests              Table = "guests"               // Guest lists, with id sequence
	TableRequests            Table = "requests"             // User requests, with id sequence
)

// Tables lists every persisted table in save order
var Tables = []Table{
	TableAdmins, TableVendors, TableUsers,
	TableProducts, TableCarts, TableOrders,
	TableAdminNotifications, TableVendorNotifications,
	TableMemberships, TableGuests, TableRequests,
}

// State is the whole mutable application state. It is only ever touched
// through Store.Update and Store.View, which hold the store lock.
type State struct {
	Admins  map[string]domain.Account // Keyed by username
	Vendors map[string]domain.Account // Keyed by username
	Users   map[string]domain.Account // Keyed by username

	Products   []domain.Product // In id order
	ProductSeq uint64           // Last issued product id

	Carts map[string]domain.Cart // Keyed by username

	Orders   []domain.Order // Append only
	OrderSeq uint64         // Last issued order id

	AdminNotifications   []domain.AdminNotification
	AdminNotificationSeq uint64

	VendorNotifications   []domain.VendorNotification
	VendorNotificationSeq uint64

	Memberships   []domain.Membership
	MembershipSeq uint64

	Guests   []domain.GuestEntry
	GuestSeq uint64

	Requests   []domain.UserRequest
	RequestSeq uint64

	dirty map[Table]struct{} // Tables touched by the running update
}

// NewState returns an empty state with all maps allocated
func NewState() *State {
	return &State{
		Admins:  map[string]domain.Account{},
		Vendors: map[string]domain.Account{},
		Users:   map[string]domain.Account{},
		Carts:   map[string]domain.Cart{},
		dirty:   map[Table]struct{}{}, // Nothing touched yet
	}
}

// Touch marks tables as changed so the store saves them after the update
func (st *State) Touch(tables ...Table) {
	for _, t := range tables {
		st.dirty[t] = struct{}{} // Saved when the update returns
	}
}

// next advances a sequence and returns the new id; ids start at 1
func next(seq *uint64) uint64 {
	*seq++      // Never reused, even after deletes
	return *seq // New id
}

// Next*ID issue the next id of each sequence
func (st *State) NextProductID() uint64            { return next(&st.ProductSeq) }
func (st *State) NextOrderID() uint64              { return next(&st.OrderSeq) }
func (st *State) NextAdminNotificationID() uint64  { return next(&st.AdminNotificationSeq) }
func (st *State) NextVendorNotificationID() uint64 { return next(&st.VendorNotificationSeq) }
func (st *State) NextMembershipID() uint64         { return next(&st.MembershipSeq) }
func (st *State) NextGuestID() uint64              { return next(&st.GuestSeq) }
func (st *State) NextRequestID() uint64            { return next(&st.RequestSeq) }

// AccountTable returns the account table for a role, nil for RoleNone
func (st *State) AccountTable(role domain.Role) (map[string]domain.Account, Table) {
	switch role {
	case domain.RoleAdmin:
		return st.Admins, TableAdmins
	case domain.RoleVendor:
		return st.Vendors, TableVendors
	case domain.RoleUser:
		return st.Users, TableUsers
	}
	return nil, "" // Anonymous has no table
}

// UsernameTaken reports whether a username exists in any account table or
// is held by a vendor registration still awaiting a decision
func (st *State) UsernameTaken(username string) bool {
	if _, ok := st.Admins[username]; ok {
		return true
	}
	if _, ok := st.Vendors[username]; ok {
		return true
	}
	if _, ok := st.Users[username]; ok {
		return true
	}
	// Pending vendor registrations reserve their username
	for _, n := range st.AdminNotifications {
		if n.PendingVendor() && n.Username == username {
			return true
		}
	}
	return false
}

// ProductIndex returns the slice index of a product
func (st *State) ProductIndex(id uint64) (int, bool) {
	for i := range st.Products {
		if st.Products[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// Product returns a copy of a product
func (st *State) Product(id uint64) (domain.Product, bool) {
	if i, ok := st.ProductIndex(id); ok {
		return st.Products[i], true
	}
	return domain.Product{}, false
}
