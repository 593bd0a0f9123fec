// Package inventory tracks on-hand quantities per SKU.
package inventory

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrInsufficientStock is returned when a SKU has fewer units than requested.
	ErrInsufficientStock = errors.New("inventory: insufficient stock")
	// ErrInvalidQuantity is returned for negative quantities.
	ErrInvalidQuantity = errors.New("inventory: quantity must be >= 0")
)

// InsufficientStockError reports the shortfall for one SKU.
type InsufficientStockError struct {
	SKU       string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("inventory: insufficient stock for %s: available %d, requested %d", e.SKU, e.Available, e.Requested)
}

// Is lets errors.Is match ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// Stock holds quantities keyed by SKU. Unknown SKUs have zero units.
type Stock struct {
	mu    sync.RWMutex
	units map[string]int
}

// New returns an empty stock.
func New() *Stock {
	return &Stock{units: make(map[string]int)}
}

// NewWithLevels returns a stock initialised with the provided levels.
func NewWithLevels(levels map[string]int) (*Stock, error) {
	s := New()
	for sku, qty := range levels {
		if err := s.Set(sku, qty); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Set overwrites the quantity held for sku.
func (s *Stock) Set(sku string, qty int) error {
	if qty < 0 {
		return fmt.Errorf("%w: %s got %d", ErrInvalidQuantity, sku, qty)
	}
	s.mu.Lock()
	s.units[sku] = qty
	s.mu.Unlock()
	return nil
}

// Add restocks sku by qty units.
func (s *Stock) Add(sku string, qty int) error {
	if qty < 0 {
		return fmt.Errorf("%w: %s got %d", ErrInvalidQuantity, sku, qty)
	}
	s.mu.Lock()
	s.units[sku] += qty
	s.mu.Unlock()
	return nil
}

// Remove takes qty units of sku out of stock.
func (s *Stock) Remove(sku string, qty int) error {
	if qty < 0 {
		return fmt.Errorf("%w: %s got %d", ErrInvalidQuantity, sku, qty)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if available := s.units[sku]; available < qty {
		return &InsufficientStockError{SKU: sku, Available: available, Requested: qty}
	}
	s.units[sku] -= qty
	return nil
}

// Quantity returns the units held for sku.
func (s *Stock) Quantity(sku string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.units[sku]
}

// EnsureAvailable fails when fewer than qty units of sku are held.
func (s *Stock) EnsureAvailable(sku string, qty int) error {
	if available := s.Quantity(sku); available < qty {
		return &InsufficientStockError{SKU: sku, Available: available, Requested: qty}
	}
	return nil
}

// Line is a quantity request for one SKU.
type Line struct {
	SKU      string
	Quantity int
}

// RemoveAll removes every line or none: availability is checked for the whole
// batch before any quantity changes.
func (s *Stock) RemoveAll(lines []Line) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[string]int, len(lines))
	for _, l := range lines {
		if l.Quantity < 0 {
			return fmt.Errorf("%w: %s got %d", ErrInvalidQuantity, l.SKU, l.Quantity)
		}
		wanted[l.SKU] += l.Quantity
		if available := s.units[l.SKU]; available < wanted[l.SKU] {
			return &InsufficientStockError{SKU: l.SKU, Available: available, Requested: wanted[l.SKU]}
		}
	}
	for _, l := range lines {
		s.units[l.SKU] -= l.Quantity
	}
	return nil
}
