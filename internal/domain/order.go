package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusConfirmed is the only status checkout produces
const OrderStatusConfirmed = "Confirmed"

// OrderLine is a snapshot of one accepted cart line
type OrderLine struct {
	ProductID uint64          `json:"product_id"`
	Name      string          `json:"name"`
	Vendor    string          `json:"vendor"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Order Model; immutable once placed
type Order struct {
	ID        uint64          `json:"id"`
	Username  string          `json:"username"`
	Lines     []OrderLine     `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// HasVendor reports whether any line belongs to the vendor
func (o Order) HasVendor(vendor string) bool {
	for _, l := range o.Lines {
		if l.Vendor == vendor {
			return true
		}
	}
	return false
}

// Why a cart line was left out of an order
const (
	DropMissing      = "product_missing"
	DropInsufficient = "insufficient_stock"
)

// LineResult reports the outcome of one cart line at checkout
type LineResult struct {
	ProductID uint64 `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Accepted  bool   `json:"accepted"`
	Reason    string `json:"reason,omitempty"`
	Available int    `json:"available,omitempty"`
}
