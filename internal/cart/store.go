package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Store keeps carts in memory keyed by id.
type Store struct {
	Products ProductSource
	Stock    StockChecker

	mu    sync.RWMutex
	carts map[string]*Cart
}

// NewStore builds a store whose carts resolve products and stock from the given sources.
func NewStore(products ProductSource, stock StockChecker) *Store {
	return &Store{Products: products, Stock: stock, carts: make(map[string]*Cart)}
}

// Create registers a new empty cart with a random id.
func (s *Store) Create() *Cart {
	c := New(uuid.NewString(), s.Products, s.Stock)
	s.mu.Lock()
	if s.carts == nil {
		s.carts = make(map[string]*Cart)
	}
	s.carts[c.ID] = c
	s.mu.Unlock()
	return c
}

// Get returns the cart with the given id.
func (s *Store) Get(id string) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

// Delete forgets a cart. Unknown ids are ignored.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.carts, id)
	s.mu.Unlock()
}
