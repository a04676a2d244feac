package domain

import "time"

// MembershipStatusActive is assigned to every new membership
const MembershipStatusActive = "Active"

// Membership Model
type Membership struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Tier      string    `json:"tier"`
	Duration  string    `json:"duration"`
	StartDate time.Time `json:"start_date"`
	Status    string    `json:"status"`
}

// GuestEntry Model
type GuestEntry struct {
	ID        uint64    `json:"id"`
	Owner     string    `json:"owner"`
	Name      string    `json:"guest_name"`
	Email     string    `json:"guest_email"`
	Phone     string    `json:"guest_phone"`
	Event     string    `json:"event"`
	CreatedAt time.Time `json:"created_at"`
}

// UserRequest Model: a message from a user to a vendor
type UserRequest struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Vendor    string    `json:"vendor"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
