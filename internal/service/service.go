// Package service implements the marketplace operations on top of the
// shared store. Every mutation runs inside store.Update; events are
// published after the lock is released.
package service

import (
	"context" // Request scoped contexts
	"fmt"     // Error wrapping
	"sort"    // Stable listings
	"strings" // Blank field checks
	"time"    // Timestamps

	"event_marketplace/internal/domain" // Importing domain models
	"event_marketplace/internal/events" // Domain event publishing
	"event_marketplace/internal/store"  // Shared state

	"github.com/sirupsen/logrus" // Logging
)

type base struct {
	store  *store.Store     // Shared state
	events events.Publisher // Broker or Nop
	now    func() time.Time // Overridden in tests
}

func newBase(st *store.Store, pub events.Publisher) base {
	if pub == nil {
		pub = events.Nop{} // No broker configured
	}
	return base{store: st, events: pub, now: time.Now}
}

// publish sends an event; broker failures never fail the operation
func (b base) publish(ctx context.Context, key string, v any) {
	if err := b.events.PublishJSON(ctx, key, v); err != nil {
		logrus.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("Failed to publish event")
	}
}

// Services bundles every component around one store
type Services struct {
	Identity      *Identity      // Accounts, login and profiles
	Catalog       *Catalog       // Products and stock
	Carts         *Carts         // Per-user carts
	Orders        *Orders        // Checkout and order history
	Notifications *Notifications // Admin and vendor queues
	Memberships   *Memberships   // Admin managed memberships
	Guests        *Guests        // Per-user guest lists
	Requests      *Requests      // User to vendor messages
	Dashboards    *Dashboards    // Role dashboards
}

// New wires all services to the same store and publisher
func New(st *store.Store, pub events.Publisher, vendorDefaultPassword string) *Services {
	b := newBase(st, pub)
	return &Services{
		Identity:      &Identity{base: b},
		Catalog:       &Catalog{base: b},
		Carts:         &Carts{base: b},
		Orders:        &Orders{base: b},
		Notifications: &Notifications{base: b, vendorPassword: vendorDefaultPassword},
		Memberships:   &Memberships{base: b},
		Guests:        &Guests{base: b},
		Requests:      &Requests{base: b},
		Dashboards:    &Dashboards{base: b},
	}
}

// required fails with ErrValidation naming the first blank field
func required(fields ...[2]string) error {
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrValidation, f[0]) // f is {name, value}
		}
	}
	return nil
}

// sortedProfiles lists accounts by username
func sortedProfiles(accounts map[string]domain.Account) []domain.Profile {
	out := make([]domain.Profile, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Profile())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}
