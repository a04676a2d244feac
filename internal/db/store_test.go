package db

import (
	"context"
	"testing"

	"event_marketplace/internal/domain"
	"event_marketplace/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateSurvivesRestart(t *testing.T) {
	gw := openTestDB(t)
	ctx := context.Background()

	st := store.New(gw)
	require.NoError(t, st.Load(ctx))
	require.NoError(t, st.Update(ctx, func(s *store.State) error {
		s.Products = append(s.Products, domain.Product{
			ID:     s.NextProductID(),
			Name:   "Projector",
			Price:  decimal.RequireFromString("49.90"),
			Stock:  2,
			Vendor: "v1",
		})
		s.Carts["u1"] = domain.Cart{1: 2}
		s.Touch(store.TableProducts, store.TableCarts)
		return nil
	}))

	restarted := store.New(gw)
	require.NoError(t, restarted.Load(ctx))
	restarted.View(func(s *store.State) {
		require.Len(t, s.Products, 1)
		assert.True(t, decimal.RequireFromString("49.90").Equal(s.Products[0].Price))
		assert.Equal(t, domain.Cart{1: 2}, s.Carts["u1"])
		assert.Empty(t, s.Orders)
	})
	require.NoError(t, restarted.Update(ctx, func(s *store.State) error {
		assert.Equal(t, uint64(2), s.NextProductID())
		return nil
	}))
}
