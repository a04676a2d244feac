package service

import (
	"context" // Request scoped contexts
	"fmt"     // Error wrapping
	"time"    // Notification timestamps

	"event_marketplace/internal/domain" // Importing domain models
	"event_marketplace/internal/events" // Approval events
	"event_marketplace/internal/store"  // Notification and account tables

	"github.com/sirupsen/logrus" // Logging
)

// Notifications owns the admin queue and the per-vendor queues. Entries are
// never removed; only their read flag changes, and only from false to true.
type Notifications struct {
	base
	vendorPassword string // Password given to approved vendors
}

// notifyVendor appends to a vendor's queue; caller holds the store lock and
// touches the table
func notifyVendor(st *store.State, vendor, message string, at time.Time) {
	st.VendorNotifications = append(st.VendorNotifications, domain.VendorNotification{
		ID:        st.NextVendorNotificationID(),
		Vendor:    vendor,
		Message:   message,
		CreatedAt: at, // Read defaults to false
	})
}

func adminIndex(st *store.State, id uint64) (int, bool) {
	for i := range st.AdminNotifications {
		if st.AdminNotifications[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// AdminList returns the admin queue, newest first
func (n *Notifications) AdminList() []domain.AdminNotification {
	var out []domain.AdminNotification
	n.store.View(func(st *store.State) {
		out = make([]domain.AdminNotification, 0, len(st.AdminNotifications))
		for i := len(st.AdminNotifications) - 1; i >= 0; i-- { // Walk backwards for newest first
			out = append(out, st.AdminNotifications[i])
		}
	})
	return out
}

// AdminUnread counts unread admin notifications
func (n *Notifications) AdminUnread() int {
	var c int
	n.store.View(func(st *store.State) { c = adminUnread(st) })
	return c
}

func adminUnread(st *store.State) int {
	c := 0
	for _, an := range st.AdminNotifications {
		if !an.Read {
			c++
		}
	}
	return c
}

// MarkAdminRead sets the read flag; marking a read entry again is a no-op
func (n *Notifications) MarkAdminRead(ctx context.Context, id uint64) error {
	return n.store.Update(ctx, func(st *store.State) error {
		i, ok := adminIndex(st, id)
		if !ok {
			return fmt.Errorf("%w: notification %d", domain.ErrNotFound, id)
		}
		if !st.AdminNotifications[i].Read {
			st.AdminNotifications[i].Read = true // Never flips back
			st.Touch(store.TableAdminNotifications)
		}
		return nil
	})
}

// ApproveVendor turns a pending vendor registration into a vendor account
// with the default password and marks the entry read. approved is false when
// the entry was already decided, in which case nothing changes.
func (n *Notifications) ApproveVendor(ctx context.Context, id uint64) (approved bool, err error) {
	hash, err := hashPassword(n.vendorPassword)
	if err != nil {
		return false, err
	}
	var acc domain.Account
	err = n.store.Update(ctx, func(st *store.State) error {
		i, ok := adminIndex(st, id)
		if !ok {
			return fmt.Errorf("%w: notification %d", domain.ErrNotFound, id)
		}
		entry := st.AdminNotifications[i]
		if entry.Kind != domain.KindVendorSignup {
			return fmt.Errorf("%w: notification %d is not a vendor signup", domain.ErrValidation, id)
		}
		if entry.Read {
			return nil // Already approved or rejected
		}
		for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleVendor, domain.RoleUser} {
			if table, _ := st.AccountTable(role); table != nil {
				if _, taken := table[entry.Username]; taken {
					return fmt.Errorf("%w: username %q already exists", domain.ErrConflict, entry.Username) // Claimed while pending
				}
			}
		}
		acc = domain.Account{
			Username: entry.Username,
			Password: hash, // Default vendor password
			Name:     entry.Name,
			Email:    entry.Email,
			Phone:    entry.Phone,
			Role:     domain.RoleVendor,
		}
		st.Vendors[acc.Username] = acc       // Vendor can log in from now on
		st.AdminNotifications[i].Read = true // Decided
		st.Touch(store.TableVendors, store.TableAdminNotifications)
		approved = true
		return nil
	})
	if err != nil || !approved {
		return false, err
	}
	logrus.WithFields(logrus.Fields{
		"username":        acc.Username,
		"notification_id": id,
	}).Info("Vendor approved")
	n.publish(ctx, events.KeyVendorApproved, events.VendorApproved{Username: acc.Username, NotificationID: id, At: n.now()})
	return true, nil
}

// RejectVendor marks a vendor signup read without creating an account,
// which also releases the reserved username
func (n *Notifications) RejectVendor(ctx context.Context, id uint64) error {
	return n.store.Update(ctx, func(st *store.State) error {
		i, ok := adminIndex(st, id)
		if !ok {
			return fmt.Errorf("%w: notification %d", domain.ErrNotFound, id)
		}
		if st.AdminNotifications[i].Kind != domain.KindVendorSignup {
			return fmt.Errorf("%w: notification %d is not a vendor signup", domain.ErrValidation, id)
		}
		if !st.AdminNotifications[i].Read {
			st.AdminNotifications[i].Read = true
			st.Touch(store.TableAdminNotifications)
			logrus.WithField("notification_id", id).Info("Vendor registration rejected") // Username is free again
		}
		return nil
	})
}

// VendorList returns a vendor's queue, newest first
func (n *Notifications) VendorList(vendor string) []domain.VendorNotification {
	out := []domain.VendorNotification{}
	n.store.View(func(st *store.State) {
		for i := len(st.VendorNotifications) - 1; i >= 0; i-- {
			if st.VendorNotifications[i].Vendor == vendor {
				out = append(out, st.VendorNotifications[i])
			}
		}
	})
	return out
}

// VendorUnread counts a vendor's unread notifications
func (n *Notifications) VendorUnread(vendor string) int {
	var c int
	n.store.View(func(st *store.State) { c = vendorUnread(st, vendor) })
	return c
}

func vendorUnread(st *store.State, vendor string) int {
	c := 0
	for _, vn := range st.VendorNotifications {
		if vn.Vendor == vendor && !vn.Read {
			c++
		}
	}
	return c
}

// MarkVendorRead sets the read flag of an entry addressed to the vendor
func (n *Notifications) MarkVendorRead(ctx context.Context, vendor string, id uint64) error {
	return n.store.Update(ctx, func(st *store.State) error {
		for i := range st.VendorNotifications {
			if st.VendorNotifications[i].ID != id {
				continue
			}
			if st.VendorNotifications[i].Vendor != vendor {
				return fmt.Errorf("%w: notification %d", domain.ErrAuthorization, id) // Another vendor's entry
			}
			if !st.VendorNotifications[i].Read {
				st.VendorNotifications[i].Read = true
				st.Touch(store.TableVendorNotifications)
			}
			return nil
		}
		return fmt.Errorf("%w: notification %d", domain.ErrNotFound, id)
	})
}
