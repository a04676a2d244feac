package service

import (
	"context"
	"fmt"
	"time"

	"event_marketplace/internal/domain"
	"event_marketplace/internal/store"
)

// Memberships is the admin managed membership registry
type Memberships struct {
	base
}

// Add gives an existing user a membership starting today
func (m *Memberships) Add(ctx context.Context, username, tier, duration string) (domain.Membership, error) {
	if err := required([2]string{"username", username}, [2]string{"membership_type", tier}, [2]string{"duration", duration}); err != nil {
		return domain.Membership{}, err
	}
	var ms domain.Membership
	err := m.store.Update(ctx, func(st *store.State) error {
		if _, ok := st.Users[username]; !ok {
			return fmt.Errorf("%w: user %q", domain.ErrNotFound, username) // Only users hold memberships
		}
		now := m.now()
		ms = domain.Membership{
			ID:        st.NextMembershipID(),
			Username:  username,
			Tier:      tier,
			Duration:  duration,
			StartDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), // Midnight today
			Status:    domain.MembershipStatusActive,                                             // New memberships are active
		}
		st.Memberships = append(st.Memberships, ms)
		st.Touch(store.TableMemberships)
		return nil
	})
	return ms, err
}

// Delete removes a membership by id
func (m *Memberships) Delete(ctx context.Context, id uint64) error {
	return m.store.Update(ctx, func(st *store.State) error {
		for i := range st.Memberships {
			if st.Memberships[i].ID == id {
				st.Memberships = append(st.Memberships[:i], st.Memberships[i+1:]...) // Keep id order
				st.Touch(store.TableMemberships)
				return nil
			}
		}
		return fmt.Errorf("%w: membership %d", domain.ErrNotFound, id)
	})
}

// List returns every membership
func (m *Memberships) List() []domain.Membership {
	out := []domain.Membership{}
	m.store.View(func(st *store.State) { out = append(out, st.Memberships...) }) // Copy under the lock
	return out
}
