// Package report aggregates paid orders into the sales register.
package report

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/events"
	"github.com/noah-isme/toko-checkout/internal/money"
	"github.com/noah-isme/toko-checkout/internal/order"
)

// CategoryLookup resolves the category of a SKU. *catalog.Catalog satisfies it.
type CategoryLookup interface {
	Category(sku string) (catalog.Category, error)
}

// OrderSource loads orders by id. *order.Service satisfies it.
type OrderSource interface {
	Get(id string) (order.Order, error)
}

// ProductQuantity is one row of the best sellers ranking.
type ProductQuantity struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// Sales is the register of paid orders. It is safe for concurrent use.
type Sales struct {
	Catalog CategoryLookup

	mu      sync.RWMutex
	orders  []order.Order
	seen    map[string]struct{}
	version uint64
}

// Register records a paid order. Orders in any other status, and orders
// already registered, are ignored. It reports whether the order was added.
func (s *Sales) Register(o order.Order) bool {
	if o.Status != order.StatusPaid {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[o.ID]; ok {
		return false
	}
	s.seen[o.ID] = struct{}{}
	s.orders = append(s.orders, o)
	s.version++
	return true
}

// Version changes every time an order is registered.
func (s *Sales) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Count returns the number of registered orders.
func (s *Sales) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// TotalRevenue sums the grand totals of registered orders.
func (s *Sales) TotalRevenue() decimal.Decimal {
	return s.sum(func(o order.Order) decimal.Decimal { return o.Breakdown.GrandTotal })
}

// TotalTax sums the taxes of registered orders.
func (s *Sales) TotalTax() decimal.Decimal {
	return s.sum(func(o order.Order) decimal.Decimal { return o.Breakdown.TotalTax })
}

// TotalDiscount sums the discounts of registered orders.
func (s *Sales) TotalDiscount() decimal.Decimal {
	return s.sum(func(o order.Order) decimal.Decimal { return o.Breakdown.TotalDiscount })
}

func (s *Sales) sum(field func(order.Order) decimal.Decimal) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return money.Round2(money.SumBy(s.orders, field))
}

// TopProducts ranks SKUs by units sold, highest first. Ties keep the order
// in which SKUs were first sold. n below one returns every SKU.
func (s *Sales) TopProducts(n int) []ProductQuantity {
	s.mu.RLock()
	rows := make([]ProductQuantity, 0)
	index := make(map[string]int)
	for _, o := range s.orders {
		for _, it := range o.Items {
			i, ok := index[it.SKU]
			if !ok {
				i = len(rows)
				index[it.SKU] = i
				rows = append(rows, ProductQuantity{SKU: it.SKU})
			}
			rows[i].Quantity += it.Quantity
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Quantity > rows[j].Quantity })
	if n > 0 && n < len(rows) {
		rows = rows[:n]
	}
	return rows
}

// RevenueByCategory sums item totals per product category, before discounts.
func (s *Sales) RevenueByCategory() (map[catalog.Category]decimal.Decimal, error) {
	if s.Catalog == nil {
		return nil, fmt.Errorf("report: catalog not configured")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[catalog.Category]decimal.Decimal)
	for _, o := range s.orders {
		for _, it := range o.Items {
			category, err := s.Catalog.Category(it.SKU)
			if err != nil {
				return nil, fmt.Errorf("report: order %s: %w", o.ID, err)
			}
			out[category] = money.Round2(out[category].Add(it.Total()))
		}
	}
	return out, nil
}

// PaidNotifier registers orders as they are paid. Other topics are ignored.
func (s *Sales) PaidNotifier(orders OrderSource) events.Notifier {
	return events.NotifierFunc(func(_ context.Context, ev events.Event) error {
		if ev.Topic != events.TopicOrderPaid {
			return nil
		}
		o, err := orders.Get(ev.AggregateID)
		if err != nil {
			return fmt.Errorf("report: load paid order %s: %w", ev.AggregateID, err)
		}
		s.Register(o)
		return nil
	})
}
