package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product Model
type Product struct {
	ID          uint64          `json:"id"`          // Monotonic id
	Name        string          `json:"name"`        // Product name
	Description string          `json:"description"` // Free text
	Category    string          `json:"category"`    // Category label
	Price       decimal.Decimal `json:"price"`       // Unit price, never negative
	Stock       int             `json:"stock"`       // Units available, never negative
	Vendor      string          `json:"vendor"`      // Owning vendor username
	CreatedAt   time.Time       `json:"created_at"`  // Creation timestamp
}

// InStock reports whether at least one unit is available
func (p Product) InStock() bool {
	return p.Stock > 0
}
