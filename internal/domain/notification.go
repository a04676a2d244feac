package domain

import "time"

// Kinds of admin notifications
const (
	KindUserSignup   = "user_signup"
	KindVendorSignup = "vendor_signup"
)

// AdminNotification Model. For vendor signups it also carries the pending
// registration that approval turns into an account.
type AdminNotification struct {
	ID        uint64    `json:"id"`
	Kind      string    `json:"kind"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}

// PendingVendor reports whether the entry still holds an undecided vendor registration
func (n AdminNotification) PendingVendor() bool {
	return n.Kind == KindVendorSignup && !n.Read
}

// VendorNotification Model
type VendorNotification struct {
	ID        uint64    `json:"id"`
	Vendor    string    `json:"vendor"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}
