package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/events"
	"github.com/noah-isme/toko-checkout/internal/money"
	"github.com/noah-isme/toko-checkout/internal/order"
	"github.com/noah-isme/toko-checkout/internal/pricing"
)

func paidOrder(id string, total, tax, discount string, items ...order.Item) order.Order {
	return order.Order{
		ID:     id,
		Items:  items,
		Status: order.StatusPaid,
		Breakdown: pricing.Breakdown{
			GrandTotal:    money.New(total),
			TotalTax:      money.New(tax),
			TotalDiscount: money.New(discount),
		},
	}
}

func newSales(t *testing.T) *Sales {
	t.Helper()
	c, err := catalog.Seed()
	require.NoError(t, err)
	return &Sales{Catalog: c}
}

func TestRegisterOnlyPaidOrdersOnce(t *testing.T) {
	s := newSales(t)
	o := paidOrder("PED-1", "230.33", "39.33", "19.00")
	require.True(t, s.Register(o))
	require.False(t, s.Register(o))

	open := o
	open.ID, open.Status = "PED-2", order.StatusOpen
	require.False(t, s.Register(open))
	cancelled := o
	cancelled.ID, cancelled.Status = "PED-3", order.StatusCancelled
	require.False(t, s.Register(cancelled))

	require.Equal(t, 1, s.Count())
	require.Equal(t, uint64(1), s.Version())
}

func TestTotalsAndRankings(t *testing.T) {
	s := newSales(t)
	s.Register(paidOrder("PED-1", "230.33", "39.33", "19.00",
		order.Item{SKU: "CAMISETA", Quantity: 2, UnitPrice: money.New("30.00")},
		order.Item{SKU: "MEIA", Quantity: 1, UnitPrice: money.New("10.00")},
		order.Item{SKU: "CALCA", Quantity: 1, UnitPrice: money.New("120.00")},
	))
	s.Register(paidOrder("PED-2", "636.01", "115.19", "88.98",
		order.Item{SKU: "MICRO", Quantity: 1, UnitPrice: money.New("499.90")},
		order.Item{SKU: "VASO", Quantity: 1, UnitPrice: money.New("89.90")},
		order.Item{SKU: "MEIA", Quantity: 2, UnitPrice: money.New("10.00")},
	))

	require.Equal(t, "866.34", s.TotalRevenue().StringFixed(2))
	require.Equal(t, "154.52", s.TotalTax().StringFixed(2))
	require.Equal(t, "107.98", s.TotalDiscount().StringFixed(2))

	top := s.TopProducts(3)
	require.Equal(t, []ProductQuantity{{"MEIA", 3}, {"CAMISETA", 2}, {"CALCA", 1}}, top)
	require.Len(t, s.TopProducts(0), 5)

	byCategory, err := s.RevenueByCategory()
	require.NoError(t, err)
	require.Equal(t, "210.00", byCategory[catalog.CategoryApparel].StringFixed(2))
	require.Equal(t, "499.90", byCategory[catalog.CategoryAppliance].StringFixed(2))
	require.Equal(t, "89.90", byCategory[catalog.CategoryDecor].StringFixed(2))
}

func TestRevenueByCategoryUnknownSKU(t *testing.T) {
	s := newSales(t)
	s.Register(paidOrder("PED-1", "1", "0", "0", order.Item{SKU: "GONE", Quantity: 1, UnitPrice: money.New("1")}))
	_, err := s.RevenueByCategory()
	require.ErrorIs(t, err, catalog.ErrUnknownSKU)
}

func TestPaidNotifierRegistersPaidOrders(t *testing.T) {
	s := newSales(t)
	orders := &order.Service{Store: order.NewStore()}
	bus := &events.Bus{Store: &events.MemoryStore{}}
	bus.Subscribe(s.PaidNotifier(orders))
	orders.Events = bus
	ctx := context.Background()

	o := paidOrder("PED-1", "26.36", "0.36", "0", order.Item{SKU: "ARROZ", Quantity: 1, UnitPrice: money.New("6.00")})
	o.Status = order.StatusOpen
	require.NoError(t, orders.Place(ctx, o))
	require.Zero(t, s.Count())

	_, err := orders.Pay(ctx, "PED-1")
	require.NoError(t, err)
	require.Equal(t, 1, s.Count())
	require.Equal(t, "26.36", s.TotalRevenue().StringFixed(2))
}
