package catalog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// Catalog is an in-memory product registry safe for concurrent use.
type Catalog struct {
	mu       sync.RWMutex
	products map[string]Product
	order    []string
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{products: make(map[string]Product)}
}

// Add registers a product. SKUs are unique.
func (c *Catalog) Add(p Product) error {
	p.SKU = strings.TrimSpace(p.SKU)
	if err := p.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.products[p.SKU]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSKU, p.SKU)
	}
	c.products[p.SKU] = p
	c.order = append(c.order, p.SKU)
	return nil
}

// Product returns the product registered under sku.
func (c *Catalog) Product(sku string) (Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[sku]
	if !ok {
		return Product{}, &UnknownSKUError{SKU: sku}
	}
	return p, nil
}

// Category resolves the category of sku.
func (c *Catalog) Category(sku string) (Category, error) {
	p, err := c.Product(sku)
	if err != nil {
		return "", err
	}
	return p.Category, nil
}

// List returns every product in registration order.
func (c *Catalog) List() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Product, 0, len(c.order))
	for _, sku := range c.order {
		out = append(out, c.products[sku])
	}
	return out
}

// ListByCategory returns the products of a category in registration order.
func (c *Catalog) ListByCategory(category Category) ([]Product, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Product, 0)
	for _, sku := range c.order {
		if p := c.products[sku]; p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// UpdatePrice changes the current price of sku. Prices already frozen in
// carts are unaffected.
func (c *Catalog) UpdatePrice(sku string, price decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", ErrInvalidProduct)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[sku]
	if !ok {
		return &UnknownSKUError{SKU: sku}
	}
	p.Price = price
	c.products[sku] = p
	return nil
}
