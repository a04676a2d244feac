package service

import (
	"context" // Request scoped contexts
	"fmt"     // Error wrapping
	"math"    // Overflow bounds
	"sort"    // Vendor directory order

	"event_marketplace/internal/domain" // Importing domain models
	"event_marketplace/internal/store"  // Product table

	"github.com/shopspring/decimal" // Prices
	"github.com/sirupsen/logrus"    // Logging
)

// NewProduct is what a vendor submits to list an item
type NewProduct struct {
	Name        string          // Required
	Description string          // Free text
	Category    string          // Free text
	Price       decimal.Decimal // Must not be negative
	Stock       int             // Initial units, must not be negative
}

// VendorListing is a vendor profile with the number of products it lists
type VendorListing struct {
	domain.Profile
	ProductCount int `json:"product_count"` // Products the vendor lists
}

// Catalog owns the products
type Catalog struct {
	base
}

// Create lists a new product owned by the vendor
func (c *Catalog) Create(ctx context.Context, vendor string, in NewProduct) (domain.Product, error) {
	if err := required([2]string{"name", in.Name}); err != nil {
		return domain.Product{}, err
	}
	if in.Price.IsNegative() {
		return domain.Product{}, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if in.Stock < 0 {
		return domain.Product{}, fmt.Errorf("%w: stock must not be negative", domain.ErrValidation)
	}
	var p domain.Product
	err := c.store.Update(ctx, func(st *store.State) error {
		p = domain.Product{
			ID:          st.NextProductID(),
			Name:        in.Name,
			Description: in.Description,
			Category:    in.Category,
			Price:       in.Price,
			Stock:       in.Stock,
			Vendor:      vendor, // Owner for stock and delete checks
			CreatedAt:   c.now(),
		}
		st.Products = append(st.Products, p)
		st.Touch(store.TableProducts)
		return nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	logrus.WithFields(logrus.Fields{
		"product_id": p.ID,
		"vendor":     vendor,
		"stock":      p.Stock,
	}).Info("Product created")
	return p, nil
}

// AddStock increases the stock of a product the vendor owns. A product that
// is missing or owned by someone else yields ErrNotFound and changes nothing.
func (c *Catalog) AddStock(ctx context.Context, vendor string, productID uint64, qty int) (domain.Product, error) {
	if qty < 1 {
		return domain.Product{}, fmt.Errorf("%w: quantity must be at least 1", domain.ErrValidation)
	}
	var p domain.Product
	err := c.store.Update(ctx, func(st *store.State) error {
		i, ok := st.ProductIndex(productID)
		if !ok || st.Products[i].Vendor != vendor {
			return fmt.Errorf("%w: product %d", domain.ErrNotFound, productID) // Foreign products look missing
		}
		if qty > math.MaxInt-st.Products[i].Stock {
			return fmt.Errorf("%w: stock would overflow", domain.ErrValidation) // Wrapping would go negative
		}
		st.Products[i].Stock += qty // Apply the increase
		p = st.Products[i]          // Return the updated copy
		st.Touch(store.TableProducts)
		return nil
	})
	return p, err
}

// Delete removes a product the vendor owns. Carts keep their lines for it;
// cart views skip them.
func (c *Catalog) Delete(ctx context.Context, vendor string, productID uint64) error {
	return c.store.Update(ctx, func(st *store.State) error {
		i, ok := st.ProductIndex(productID)
		if !ok || st.Products[i].Vendor != vendor {
			return fmt.Errorf("%w: product %d", domain.ErrNotFound, productID)
		}
		st.Products = append(st.Products[:i], st.Products[i+1:]...) // Keep id order
		st.Touch(store.TableProducts)
		return nil
	})
}

// Get returns one product
func (c *Catalog) Get(productID uint64) (domain.Product, error) {
	var (
		p  domain.Product
		ok bool
	)
	c.store.View(func(st *store.State) { p, ok = st.Product(productID) })
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: product %d", domain.ErrNotFound, productID)
	}
	return p, nil
}

// List returns every product in id order
func (c *Catalog) List() []domain.Product {
	var out []domain.Product
	c.store.View(func(st *store.State) {
		out = append([]domain.Product{}, st.Products...) // Copy under the lock
	})
	return out
}

// ListByVendor returns the products a vendor owns
func (c *Catalog) ListByVendor(vendor string) []domain.Product {
	out := []domain.Product{}
	c.store.View(func(st *store.State) {
		for _, p := range st.Products {
			if p.Vendor == vendor {
				out = append(out, p)
			}
		}
	})
	return out
}

// VendorDirectory lists every vendor with its product count
func (c *Catalog) VendorDirectory() []VendorListing {
	var out []VendorListing
	c.store.View(func(st *store.State) {
		counts := map[string]int{}
		for _, p := range st.Products {
			counts[p.Vendor]++ // Products per vendor
		}
		for _, v := range st.Vendors {
			out = append(out, VendorListing{Profile: v.Profile(), ProductCount: counts[v.Username]})
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}
