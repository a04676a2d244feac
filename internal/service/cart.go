package service

import (
	"context" // Request scoped contexts
	"fmt"     // Error wrapping
	"math"    // Overflow bounds
	"sort"    // Stable line order

	"event_marketplace/internal/domain" // Importing domain models
	"event_marketplace/internal/store"  // Cart table

	"github.com/shopspring/decimal" // Line totals
)

// Carts manages the per-user product to quantity mapping. Stock is not
// checked here; checkout settles over-committed lines.
type Carts struct {
	base
}

// Add puts quantity units of a product in the cart, summing with an
// existing line
func (c *Carts) Add(ctx context.Context, username string, productID uint64, qty int) error {
	if qty < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", domain.ErrValidation)
	}
	return c.store.Update(ctx, func(st *store.State) error {
		if _, ok := st.ProductIndex(productID); !ok {
			return fmt.Errorf("%w: product %d", domain.ErrNotFound, productID) // Only listed products
		}
		cart := st.Carts[username] // nil when the user has no cart yet
		if qty > math.MaxInt-cart[productID] {
			return fmt.Errorf("%w: quantity would overflow", domain.ErrValidation) // Keep lines >= 1
		}
		if cart == nil {
			cart = domain.Cart{}
			st.Carts[username] = cart
		}
		cart[productID] += qty // Sum with an existing line
		st.Touch(store.TableCarts)
		return nil
	})
}

// Update replaces the quantity of an existing line; zero removes it.
// A missing line is left alone and reported as ErrNotFound.
func (c *Carts) Update(ctx context.Context, username string, productID uint64, qty int) error {
	if qty < 0 {
		return fmt.Errorf("%w: quantity must not be negative", domain.ErrValidation)
	}
	return c.store.Update(ctx, func(st *store.State) error {
		cart := st.Carts[username]
		if _, ok := cart[productID]; !ok {
			return fmt.Errorf("%w: cart line %d", domain.ErrNotFound, productID)
		}
		if qty == 0 {
			removeLine(st, username, productID) // Zero removes the line
		} else {
			cart[productID] = qty // Replace, not add
		}
		st.Touch(store.TableCarts)
		return nil
	})
}

// Remove deletes a line
func (c *Carts) Remove(ctx context.Context, username string, productID uint64) error {
	return c.store.Update(ctx, func(st *store.State) error {
		if _, ok := st.Carts[username][productID]; !ok {
			return fmt.Errorf("%w: cart line %d", domain.ErrNotFound, productID)
		}
		removeLine(st, username, productID)
		st.Touch(store.TableCarts)
		return nil
	})
}

func removeLine(st *store.State, username string, productID uint64) {
	delete(st.Carts[username], productID)
	if len(st.Carts[username]) == 0 {
		delete(st.Carts, username) // Drop empty carts
	}
}

// View joins the cart against the current catalog. Lines whose product was
// deleted are skipped but stay in the cart.
func (c *Carts) View(username string) domain.CartView {
	view := domain.CartView{Items: []domain.CartItem{}, Total: decimal.Zero}
	c.store.View(func(st *store.State) {
		for _, id := range sortedLineIDs(st.Carts[username]) {
			p, ok := st.Product(id)
			if !ok {
				continue // Product deleted since it was added
			}
			qty := st.Carts[username][id]
			lineTotal := p.Price.Mul(decimal.NewFromInt(int64(qty))) // Price times quantity
			view.Items = append(view.Items, domain.CartItem{Product: p, Quantity: qty, LineTotal: lineTotal})
			view.Total = view.Total.Add(lineTotal)
		}
	})
	return view
}

// Lines returns a copy of the raw cart, including lines for deleted products
func (c *Carts) Lines(username string) domain.Cart {
	out := domain.Cart{}
	c.store.View(func(st *store.State) {
		for id, qty := range st.Carts[username] {
			out[id] = qty
		}
	})
	return out
}

func sortedLineIDs(cart domain.Cart) []uint64 {
	ids := make([]uint64, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] }) // Map order is random
	return ids
}
