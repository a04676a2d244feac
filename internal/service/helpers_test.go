package service

import (
	"context"
	"sync"
	"testing"

	"event_marketplace/internal/domain"
	"event_marketplace/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	bcryptCost = bcrypt.MinCost
}

// recorder captures published events
type recorder struct {
	mu   sync.Mutex
	keys []string
}

func (r *recorder) PublishJSON(_ context.Context, key string, _ any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, key)
	return nil
}

func (r *recorder) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.keys...)
}

func newTestServices(t *testing.T) (*Services, *store.Store, *recorder) {
	t.Helper()
	st := store.New(nil)
	rec := &recorder{}
	return New(st, rec, "vendor123"), st, rec
}

func seedAccount(t *testing.T, st *store.Store, role domain.Role, username string) {
	t.Helper()
	require.NoError(t, st.Update(context.Background(), func(s *store.State) error {
		table, name := s.AccountTable(role)
		table[username] = domain.Account{Username: username, Name: username, Role: role}
		s.Touch(name)
		return nil
	}))
}

func seedProduct(t *testing.T, svc *Services, vendor string, price int64, stock int) domain.Product {
	t.Helper()
	p, err := svc.Catalog.Create(context.Background(), vendor, NewProduct{
		Name:  "item",
		Price: decimal.NewFromInt(price),
		Stock: stock,
	})
	require.NoError(t, err)
	return p
}
