// Package catalog holds the immutable product set shared by every session.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

var (
	ErrInvalidProductID = errors.New("product id must be positive")
	ErrDuplicateProduct = errors.New("duplicate product id")
	ErrPriceOutOfRange  = errors.New("product price out of range")
	ErrEmptyProductName = errors.New("product name is required")
)

// Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	products []domain.Product
	byID     map[int64]int
	// lowercased names, index-aligned with products
	names []string
}

// New validates products and returns a catalog preserving their order.
func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[int64]int, len(products)),
		names:    make([]string, 0, len(products)),
	}
	for _, p := range products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidProductID, p.ID)
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateProduct, p.ID)
		}
		if p.Price < domain.MinPrice || p.Price > domain.MaxPrice {
			return nil, fmt.Errorf("%w: product %d costs %d", ErrPriceOutOfRange, p.ID, p.Price)
		}
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("%w: product %d", ErrEmptyProductName, p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
		c.names = append(c.names, strings.ToLower(p.Name))
	}
	return c, nil
}

func (c *Catalog) FindByID(id int64) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// All returns every product in catalog order.
func (c *Catalog) All() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Search matches query case-insensitively as a substring of product names.
// A blank query returns the whole catalog. Catalog order is kept.
func (c *Catalog) Search(query string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.All()
	}
	out := make([]domain.Product, 0)
	for i, name := range c.names {
		if strings.Contains(name, q) {
			out = append(out, c.products[i])
		}
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.products)
}
