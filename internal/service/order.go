package service

import (
	"context" // Request scoped contexts
	"fmt"     // Error wrapping
	"sort"    // Ledger order
	"time"    // Sale timestamps

	"event_marketplace/internal/domain" // Importing domain models
	"event_marketplace/internal/events" // Order events
	"event_marketplace/internal/store"  // Products, carts and orders

	"github.com/shopspring/decimal" // Money arithmetic
	"github.com/sirupsen/logrus"    // Logging
)

// CheckoutResult is the placed order plus what happened to each cart line
type CheckoutResult struct {
	Order domain.Order        `json:"order"` // Zero when nothing was fulfilled
	Lines []domain.LineResult `json:"lines"` // Accepted and dropped lines
}

// VendorSale is the part of an order that belongs to one vendor
type VendorSale struct {
	OrderID   uint64             `json:"order_id"`   // Source order
	Username  string             `json:"username"`   // Buyer
	Lines     []domain.OrderLine `json:"lines"`      // Only this vendor's lines
	Total     decimal.Decimal    `json:"total"`      // Sum of those lines
	Status    string             `json:"status"`     // Order status
	CreatedAt time.Time          `json:"created_at"` // Order time
}

// VendorLedger lists a vendor's sales and their sum
type VendorLedger struct {
	Sales    []VendorSale    `json:"sales"`    // Newest first
	Earnings decimal.Decimal `json:"earnings"` // Sum of all sales
}

// Orders turns carts into orders
type Orders struct {
	base
}

// checkoutPlan is computed without touching the state
type checkoutPlan struct {
	lines     []domain.OrderLine  // Accepted lines
	indexes   []int               // product slice index per accepted line
	results   []domain.LineResult // Outcome of every cart line
	total     decimal.Decimal     // Sum of accepted lines
	vendors   []string            // Vendors to notify, first seen order
	perVendor map[string]int      // Units sold per vendor
}

// plan scans the cart in product id order. A line is accepted when the
// product exists and stock >= quantity; everything else is dropped.
func plan(st *store.State, cart domain.Cart) (p checkoutPlan, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("checkout scan: %v", r) // Abort before anything is applied
		}
	}()
	p.total = decimal.Zero
	p.perVendor = map[string]int{}
	for _, id := range sortedLineIDs(cart) {
		qty := cart[id]
		i, ok := st.ProductIndex(id)
		if !ok {
			p.results = append(p.results, domain.LineResult{ProductID: id, Quantity: qty, Reason: domain.DropMissing})
			continue // Product deleted
		}
		prod := st.Products[i]
		if qty < 1 || prod.Stock < qty {
			p.results = append(p.results, domain.LineResult{ProductID: id, Quantity: qty, Reason: domain.DropInsufficient, Available: prod.Stock})
			continue // Never partially filled
		}
		lineTotal := prod.Price.Mul(decimal.NewFromInt(int64(qty)))
		p.lines = append(p.lines, domain.OrderLine{
			ProductID: id,
			Name:      prod.Name,
			Vendor:    prod.Vendor,
			UnitPrice: prod.Price, // Snapshot of the price at checkout
			Quantity:  qty,
			LineTotal: lineTotal,
		})
		p.indexes = append(p.indexes, i)
		p.results = append(p.results, domain.LineResult{ProductID: id, Quantity: qty, Accepted: true})
		p.total = p.total.Add(lineTotal)
		if _, seen := p.perVendor[prod.Vendor]; !seen {
			p.vendors = append(p.vendors, prod.Vendor)
		}
		p.perVendor[prod.Vendor] += qty
	}
	return p, nil
}

// Checkout converts the user's cart into a confirmed order. Lines whose
// product is gone or short on stock are dropped; if nothing is left the cart
// stays as it is and ErrNothingFulfilled is returned. On success the whole
// cart is cleared, dropped lines included.
func (o *Orders) Checkout(ctx context.Context, username string) (*CheckoutResult, error) {
	var res *CheckoutResult
	err := o.store.Update(ctx, func(st *store.State) error {
		cart := st.Carts[username]
		if len(cart) == 0 {
			return domain.ErrEmptyCart // Nothing to check out
		}
		p, err := plan(st, cart)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"username": username,
				"error":    err.Error(),
			}).Error("Checkout failed")
			return err
		}
		if len(p.lines) == 0 {
			res = &CheckoutResult{Lines: p.results} // Report why each line dropped
			return domain.ErrNothingFulfilled       // Cart left unchanged
		}

		// apply: nothing below can fail
		for n, i := range p.indexes {
			st.Products[i].Stock -= p.lines[n].Quantity // Planned against current stock, never negative
		}
		order := domain.Order{
			ID:        st.NextOrderID(),
			Username:  username,
			Lines:     p.lines,
			Total:     p.total,
			Status:    domain.OrderStatusConfirmed,
			CreatedAt: o.now(),
		}
		st.Orders = append(st.Orders, order)
		delete(st.Carts, username) // Dropped lines go too
		for _, v := range p.vendors {
			notifyVendor(st, v, fmt.Sprintf("Order #%d: %s ordered %d item(s) of your products", order.ID, username, p.perVendor[v]), o.now())
		}
		st.Touch(store.TableProducts, store.TableOrders, store.TableCarts, store.TableVendorNotifications)
		res = &CheckoutResult{Order: order, Lines: p.results}
		return nil
	})
	if err != nil {
		return res, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id": res.Order.ID,
		"username": username,
		"lines":    len(res.Order.Lines),
		"total":    res.Order.Total.String(),
	}).Info("Order placed")
	o.publish(ctx, events.KeyOrderPlaced, events.OrderPlaced{
		OrderID:  res.Order.ID,
		Username: username,
		Total:    res.Order.Total.String(),
		Vendors:  vendorsOf(res.Order),
		At:       res.Order.CreatedAt,
	})
	return res, nil
}

func vendorsOf(o domain.Order) []string {
	var out []string
	seen := map[string]bool{}
	for _, l := range o.Lines {
		if !seen[l.Vendor] { // Keep first seen order
			seen[l.Vendor] = true
			out = append(out, l.Vendor)
		}
	}
	return out
}

// ListByUser returns a user's orders, oldest first
func (o *Orders) ListByUser(username string) []domain.Order {
	out := []domain.Order{}
	o.store.View(func(st *store.State) {
		for _, ord := range st.Orders {
			if ord.Username == username {
				out = append(out, ord)
			}
		}
	})
	return out
}

// List returns every order
func (o *Orders) List() []domain.Order {
	var out []domain.Order
	o.store.View(func(st *store.State) { out = append([]domain.Order{}, st.Orders...) })
	return out
}

// VendorLedger collects the vendor's lines of every order, newest first
func (o *Orders) VendorLedger(vendor string) VendorLedger {
	var ledger VendorLedger
	o.store.View(func(st *store.State) { ledger = vendorLedger(st, vendor) })
	return ledger
}

func vendorLedger(st *store.State, vendor string) VendorLedger {
	ledger := VendorLedger{Sales: []VendorSale{}, Earnings: decimal.Zero}
	for _, ord := range st.Orders {
		sale := VendorSale{OrderID: ord.ID, Username: ord.Username, Total: decimal.Zero, Status: ord.Status, CreatedAt: ord.CreatedAt}
		for _, l := range ord.Lines {
			if l.Vendor == vendor {
				sale.Lines = append(sale.Lines, l)
				sale.Total = sale.Total.Add(l.LineTotal)
			}
		}
		if len(sale.Lines) > 0 {
			ledger.Sales = append(ledger.Sales, sale)
			ledger.Earnings = ledger.Earnings.Add(sale.Total)
		}
	}
	// newest first
	sort.SliceStable(ledger.Sales, func(i, j int) bool { return ledger.Sales[i].OrderID > ledger.Sales[j].OrderID })
	return ledger
}
