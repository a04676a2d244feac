package domain

import "github.com/shopspring/decimal"

// Cart maps product id to requested quantity; every value is >= 1
type Cart map[uint64]int

// CartItem is one joined line of a cart view
type CartItem struct {
	Product   Product         `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartView is a cart joined against the current catalog
type CartView struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}
