package service

import (
	"context"
	"fmt"

	"event_marketplace/internal/domain"
	"event_marketplace/internal/store"
)

// NewGuest is a guest a user adds to their list
type NewGuest struct {
	Name  string // Required
	Email string // Optional
	Phone string // Optional
	Event string // Required
}

// Guests is the per-user guest list registry
type Guests struct {
	base
}

// Add appends a guest owned by the user
func (g *Guests) Add(ctx context.Context, owner string, in NewGuest) (domain.GuestEntry, error) {
	if err := required([2]string{"guest_name", in.Name}, [2]string{"event", in.Event}); err != nil {
		return domain.GuestEntry{}, err
	}
	var entry domain.GuestEntry
	err := g.store.Update(ctx, func(st *store.State) error {
		entry = domain.GuestEntry{
			ID:        st.NextGuestID(),
			Owner:     owner, // Session user
			Name:      in.Name,
			Email:     in.Email,
			Phone:     in.Phone,
			Event:     in.Event,
			CreatedAt: g.now(),
		}
		st.Guests = append(st.Guests, entry)
		st.Touch(store.TableGuests)
		return nil
	})
	return entry, err
}

// Delete removes a guest only if the user owns it
func (g *Guests) Delete(ctx context.Context, owner string, id uint64) error {
	return g.store.Update(ctx, func(st *store.State) error {
		for i := range st.Guests {
			if st.Guests[i].ID == id && st.Guests[i].Owner == owner { // Other users' guests look missing
				st.Guests = append(st.Guests[:i], st.Guests[i+1:]...)
				st.Touch(store.TableGuests)
				return nil
			}
		}
		return fmt.Errorf("%w: guest %d", domain.ErrNotFound, id)
	})
}

// ListByOwner returns the user's guests
func (g *Guests) ListByOwner(owner string) []domain.GuestEntry {
	out := []domain.GuestEntry{}
	g.store.View(func(st *store.State) {
		for _, e := range st.Guests {
			if e.Owner == owner {
				out = append(out, e)
			}
		}
	})
	return out
}
