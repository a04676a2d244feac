package service

import (
	"context"
	"sync"
	"testing"

	"event_marketplace/internal/domain"
	"event_marketplace/internal/events"
	"event_marketplace/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stockOf(t *testing.T, svc *Services, id uint64) int {
	t.Helper()
	p, err := svc.Catalog.Get(id)
	require.NoError(t, err)
	return p.Stock
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _, rec := newTestServices(t)
	p := seedProduct(t, svc, "v1", 100, 5)

	_, err := svc.Orders.Checkout(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	_, err = svc.Orders.Checkout(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	assert.Empty(t, svc.Orders.List())
	assert.Equal(t, 5, stockOf(t, svc, p.ID))
	assert.Empty(t, rec.Keys())
}

func TestCheckoutOverStockLineIsDropped(t *testing.T) {
	// v1 lists p1 (price 100, stock 5); u1 adds 3 then updates to 10
	svc, _, _ := newTestServices(t)
	ctx := context.Background()
	p1 := seedProduct(t, svc, "v1", 100, 5)

	require.NoError(t, svc.Carts.Add(ctx, "u1", p1.ID, 3))
	require.NoError(t, svc.Carts.Update(ctx, "u1", p1.ID, 10))

	res, err := svc.Orders.Checkout(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrNothingFulfilled)
	require.NotNil(t, res)
	require.Len(t, res.Lines, 1)
	assert.False(t, res.Lines[0].Accepted)
	assert.Equal(t, domain.DropInsufficient, res.Lines[0].Reason)
	assert.Equal(t, 5, res.Lines[0].Available)

	assert.Empty(t, svc.Orders.List())
	assert.Equal(t, 5, stockOf(t, svc, p1.ID))
	// nothing was ordered, so the cart is left as it was
	assert.Equal(t, domain.Cart{p1.ID: 10}, svc.Carts.Lines("u1"))
}

func TestCheckoutExactStockSucceeds(t *testing.T) {
	svc, _, rec := newTestServices(t)
	ctx := context.Background()
	p1 := seedProduct(t, svc, "v1", 100, 5)

	require.NoError(t, svc.Carts.Add(ctx, "u1", p1.ID, 5))
	res, err := svc.Orders.Checkout(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, uint64(1), res.Order.ID)
	assert.Equal(t, domain.OrderStatusConfirmed, res.Order.Status)
	assert.True(t, decimal.NewFromInt(500).Equal(res.Order.Total))
	assert.Equal(t, 0, stockOf(t, svc, p1.ID))
	assert.Empty(t, svc.Carts.Lines("u1"))
	assert.Contains(t, rec.Keys(), events.KeyOrderPlaced)
}

func TestCheckoutPartialFulfilmentClearsWholeCart(t *testing.T) {
	svc, _, _ := newTestServices(t)
	ctx := context.Background()
	ok := seedProduct(t, svc, "v1", 10, 4)
	short := seedProduct(t, svc, "v2", 20, 1)
	gone := seedProduct(t, svc, "v2", 30, 9)

	require.NoError(t, svc.Carts.Add(ctx, "u1", ok.ID, 2))
	require.NoError(t, svc.Carts.Add(ctx, "u1", short.ID, 2))
	require.NoError(t, svc.Carts.Add(ctx, "u1", gone.ID, 1))
	require.NoError(t, svc.Catalog.Delete(ctx, "v2", gone.ID))

	res, err := svc.Orders.Checkout(ctx, "u1")
	require.NoError(t, err)

	require.Len(t, res.Order.Lines, 1)
	assert.Equal(t, ok.ID, res.Order.Lines[0].ProductID)
	assert.True(t, decimal.NewFromInt(20).Equal(res.Order.Total))
	require.Len(t, res.Lines, 3)
	assert.True(t, res.Lines[0].Accepted)
	assert.Equal(t, domain.DropInsufficient, res.Lines[1].Reason)
	assert.Equal(t, domain.DropMissing, res.Lines[2].Reason)

	assert.Equal(t, 2, stockOf(t, svc, ok.ID))
	assert.Equal(t, 1, stockOf(t, svc, short.ID))
	assert.Empty(t, svc.Carts.Lines("u1"))
}

func TestOrderTotalIsASnapshot(t *testing.T) {
	svc, st, _ := newTestServices(t)
	ctx := context.Background()
	p := seedProduct(t, svc, "v1", 100, 5)

	require.NoError(t, svc.Carts.Add(ctx, "u1", p.ID, 2))
	res, err := svc.Orders.Checkout(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, st.Update(ctx, func(s *store.State) error {
		i, _ := s.ProductIndex(p.ID)
		s.Products[i].Price = decimal.NewFromInt(999)
		return nil
	}))
	require.NoError(t, svc.Catalog.Delete(ctx, "v1", p.ID))

	orders := svc.Orders.ListByUser("u1")
	require.Len(t, orders, 1)
	assert.True(t, decimal.NewFromInt(200).Equal(orders[0].Total))
	assert.True(t, decimal.NewFromInt(100).Equal(orders[0].Lines[0].UnitPrice))
	assert.Equal(t, res.Order.ID, orders[0].ID)
}

func TestConcurrentCheckoutsDoNotDoubleDecrement(t *testing.T) {
	svc, _, _ := newTestServices(t)
	ctx := context.Background()
	p := seedProduct(t, svc, "v1", 10, 5)
	require.NoError(t, svc.Carts.Add(ctx, "u1", p.ID, 3))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Orders.Checkout(ctx, "u1")
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrEmptyCart)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 2, stockOf(t, svc, p.ID))
	assert.Len(t, svc.Orders.List(), 1)
}

func TestStockNeverNegative(t *testing.T) {
	svc, _, _ := newTestServices(t)
	ctx := context.Background()
	p := seedProduct(t, svc, "v1", 1, 3)

	for _, user := range []string{"a", "b", "c", "d"} {
		require.NoError(t, svc.Carts.Add(ctx, user, p.ID, 2))
		_, _ = svc.Orders.Checkout(ctx, user)
		for _, prod := range svc.Catalog.List() {
			assert.GreaterOrEqual(t, prod.Stock, 0)
		}
	}
	assert.Equal(t, 1, stockOf(t, svc, p.ID))
	assert.Len(t, svc.Orders.List(), 1)
}

func TestCheckoutNotifiesVendorsAndFillsLedger(t *testing.T) {
	svc, _, _ := newTestServices(t)
	ctx := context.Background()
	a := seedProduct(t, svc, "v1", 10, 10)
	b := seedProduct(t, svc, "v2", 7, 10)

	require.NoError(t, svc.Carts.Add(ctx, "u1", a.ID, 2))
	require.NoError(t, svc.Carts.Add(ctx, "u1", b.ID, 1))
	res, err := svc.Orders.Checkout(ctx, "u1")
	require.NoError(t, err)

	require.Len(t, svc.Notifications.VendorList("v1"), 1)
	assert.Equal(t, 1, svc.Notifications.VendorUnread("v2"))
	assert.Contains(t, svc.Notifications.VendorList("v1")[0].Message, "u1")

	ledger := svc.Orders.VendorLedger("v1")
	require.Len(t, ledger.Sales, 1)
	assert.Equal(t, res.Order.ID, ledger.Sales[0].OrderID)
	assert.True(t, decimal.NewFromInt(20).Equal(ledger.Earnings))
	assert.Empty(t, svc.Orders.VendorLedger("v3").Sales)
}

func TestOrderIDsAreMonotonic(t *testing.T) {
	svc, _, _ := newTestServices(t)
	ctx := context.Background()
	p := seedProduct(t, svc, "v1", 1, 10)

	var last uint64
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Carts.Add(ctx, "u1", p.ID, 1))
		res, err := svc.Orders.Checkout(ctx, "u1")
		require.NoError(t, err)
		assert.Greater(t, res.Order.ID, last)
		last = res.Order.ID
	}
}
