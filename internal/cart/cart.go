// Package cart holds shopping carts. Prices are frozen from the catalog when
// an item is added and stock is checked against the merged quantity.
package cart

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/money"
	"github.com/noah-isme/toko-checkout/internal/pricing"
)

var (
	// ErrNotFound indicates the requested cart could not be located.
	ErrNotFound = errors.New("cart not found")
	// ErrItemNotFound is returned when a SKU is not in the cart.
	ErrItemNotFound = errors.New("cart item not found")
	// ErrInvalidQuantity is returned for quantities below one.
	ErrInvalidQuantity = errors.New("quantity must be >= 1")
)

// ProductSource resolves catalog products. *catalog.Catalog satisfies it.
type ProductSource interface {
	Product(sku string) (catalog.Product, error)
}

// StockChecker verifies availability. *inventory.Stock satisfies it.
type StockChecker interface {
	EnsureAvailable(sku string, qty int) error
}

// Item is a cart line with the unit price captured at add time.
type Item struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Total returns the rounded line total.
func (i Item) Total() decimal.Decimal {
	return money.Round2(i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))))
}

// Cart is safe for concurrent use.
type Cart struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	products ProductSource
	stock    StockChecker
	items    map[string]*Item
	order    []string
}

// New creates an empty cart bound to a product source and stock.
func New(id string, products ProductSource, stock StockChecker) *Cart {
	return &Cart{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		products:  products,
		stock:     stock,
		items:     make(map[string]*Item),
	}
}

// AddItem adds qty units of sku. Adding a SKU already in the cart increases
// its quantity and keeps the original frozen price.
func (c *Cart) AddItem(sku string, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	product, err := c.products.Product(sku)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.items[sku]; ok {
		merged := existing.Quantity + qty
		if err := c.stock.EnsureAvailable(sku, merged); err != nil {
			return err
		}
		existing.Quantity = merged
		return nil
	}
	if err := c.stock.EnsureAvailable(sku, qty); err != nil {
		return err
	}
	c.items[sku] = &Item{SKU: sku, Name: product.Name, Quantity: qty, UnitPrice: product.Price}
	c.order = append(c.order, sku)
	return nil
}

// RemoveItem drops a SKU from the cart.
func (c *Cart) RemoveItem(sku string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[sku]; !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, sku)
	}
	delete(c.items, sku)
	for i, s := range c.order {
		if s == sku {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// UpdateQuantity replaces the quantity of a SKU already in the cart.
func (c *Cart) UpdateQuantity(sku string, qty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[sku]
	if !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, sku)
	}
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if err := c.stock.EnsureAvailable(sku, qty); err != nil {
		return err
	}
	item.Quantity = qty
	return nil
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, 0, len(c.order))
	for _, sku := range c.order {
		out = append(out, *c.items[sku])
	}
	return out
}

// LineItems converts the cart into pricing input.
func (c *Cart) LineItems() []pricing.LineItem {
	return LineItemsOf(c.Items())
}

// LineItemsOf converts a snapshot taken with Items into pricing input.
func LineItemsOf(items []Item) []pricing.LineItem {
	out := make([]pricing.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, pricing.LineItem{SKU: it.SKU, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	return out
}

// Subtotal sums the rounded line totals.
func (c *Cart) Subtotal() decimal.Decimal {
	return money.Round2(money.SumBy(c.Items(), Item.Total))
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order) == 0
}
