package events

import (
	"context" // Publish deadlines
	"time"    // Event timestamps
)

// Routing keys of published domain events
const (
	KeyAccountSignup  = "account.signup"  // User signup or pending vendor registration
	KeyVendorApproved = "vendor.approved" // Admin approved a vendor
	KeyOrderPlaced    = "order.placed"    // Checkout created an order
	KeyRequestCreated = "request.created" // User sent a vendor a request
)

// Publisher sends a JSON encoded event under a routing key
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Nop drops every event; used when no broker is configured
type Nop struct{}

// PublishJSON discards the event
func (Nop) PublishJSON(context.Context, string, any) error { return nil }

// AccountSignup is published on every signup
type AccountSignup struct {
	Username string    `json:"username"` // New username
	Role     string    `json:"role"`     // user or vendor
	Pending  bool      `json:"pending"`  // Vendor waiting for approval
	At       time.Time `json:"at"`       // Signup time
}

// VendorApproved is published when a pending vendor becomes an account
type VendorApproved struct {
	Username       string    `json:"username"`        // Vendor username
	NotificationID uint64    `json:"notification_id"` // Approved admin notification
	At             time.Time `json:"at"`              // Approval time
}

// OrderPlaced is published after a successful checkout
type OrderPlaced struct {
	OrderID  uint64    `json:"order_id"` // New order id
	Username string    `json:"username"` // Buyer
	Total    string    `json:"total"`    // Decimal string
	Vendors  []string  `json:"vendors"`  // Vendors with accepted lines
	At       time.Time `json:"at"`       // Order time
}

// RequestCreated is published when a user writes to a vendor
type RequestCreated struct {
	RequestID uint64    `json:"request_id"` // New request id
	Username  string    `json:"username"`   // Sender
	Vendor    string    `json:"vendor"`     // Addressed vendor
	At        time.Time `json:"at"`         // Request time
}
