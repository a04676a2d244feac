package service

import (
	"context"
	"fmt"

	"event_marketplace/internal/domain"
	"event_marketplace/internal/events"
	"event_marketplace/internal/store"
)

// Requests carries messages from users to vendors
type Requests struct {
	base
}

// Create records a request to an existing vendor and notifies that vendor
func (r *Requests) Create(ctx context.Context, username, vendor, message string) (domain.UserRequest, error) {
	if err := required([2]string{"vendor_username", vendor}, [2]string{"message", message}); err != nil {
		return domain.UserRequest{}, err
	}
	var req domain.UserRequest
	err := r.store.Update(ctx, func(st *store.State) error {
		if _, ok := st.Vendors[vendor]; !ok {
			return fmt.Errorf("%w: vendor %q", domain.ErrNotFound, vendor) // Pending vendors cannot receive requests
		}
		req = domain.UserRequest{
			ID:        st.NextRequestID(),
			Username:  username,
			Vendor:    vendor,
			Message:   message,
			CreatedAt: r.now(),
		}
		st.Requests = append(st.Requests, req)
		notifyVendor(st, vendor, fmt.Sprintf("Request #%d from %s: %s", req.ID, username, message), req.CreatedAt)
		st.Touch(store.TableRequests, store.TableVendorNotifications) // Request and vendor queue
		return nil
	})
	if err != nil {
		return domain.UserRequest{}, err
	}
	r.publish(ctx, events.KeyRequestCreated, events.RequestCreated{RequestID: req.ID, Username: username, Vendor: vendor, At: req.CreatedAt})
	return req, nil
}

// ListForVendor returns the requests addressed to a vendor
func (r *Requests) ListForVendor(vendor string) []domain.UserRequest {
	return r.filter(func(q domain.UserRequest) bool { return q.Vendor == vendor })
}

// ListByUser returns the requests a user sent
func (r *Requests) ListByUser(username string) []domain.UserRequest {
	return r.filter(func(q domain.UserRequest) bool { return q.Username == username })
}

func (r *Requests) filter(keep func(domain.UserRequest) bool) []domain.UserRequest {
	out := []domain.UserRequest{}
	r.store.View(func(st *store.State) {
		for _, q := range st.Requests {
			if keep(q) {
				out = append(out, q)
			}
		}
	})
	return out
}
