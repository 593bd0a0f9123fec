package order

import "sync"

// Store keeps orders in memory in creation order.
type Store struct {
	mu     sync.RWMutex
	orders map[string]*Order
	ids    []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{orders: make(map[string]*Order)}
}

// Save inserts a new order.
func (s *Store) Save(o Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.orders == nil {
		s.orders = make(map[string]*Order)
	}
	if _, ok := s.orders[o.ID]; ok {
		return ErrDuplicateID
	}
	c := o.clone()
	s.orders[o.ID] = &c
	s.ids = append(s.ids, o.ID)
	return nil
}

// Get returns a copy of the order.
func (s *Store) Get(id string) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o.clone(), nil
}

// Update applies fn to the stored order under the store lock. The order is
// left untouched when fn fails.
func (s *Store) Update(id string, fn func(*Order) error) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	next := o.clone()
	if err := fn(&next); err != nil {
		return o.clone(), err
	}
	*o = next
	return next.clone(), nil
}

// List returns copies of every order, oldest first.
func (s *Store) List() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, s.orders[id].clone())
	}
	return out
}
