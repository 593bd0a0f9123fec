package checkout

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-checkout/internal/cart"
	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/customer"
	"github.com/noah-isme/toko-checkout/internal/events"
	"github.com/noah-isme/toko-checkout/internal/inventory"
	"github.com/noah-isme/toko-checkout/internal/lock"
	"github.com/noah-isme/toko-checkout/internal/obs"
	"github.com/noah-isme/toko-checkout/internal/order"
	"github.com/noah-isme/toko-checkout/internal/pricing"
)

type fixture struct {
	svc    *Service
	stock  *inventory.Stock
	carts  *cart.Store
	events *events.MemoryStore
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	c, err := catalog.Seed()
	require.NoError(t, err)
	stock, err := inventory.NewWithLevels(catalog.DemoStockLevels())
	require.NoError(t, err)
	mem := &events.MemoryStore{}
	svc := &Service{
		Catalog: c,
		Stock:   stock,
		Engine:  pricing.NewEngine(c, nil),
		Orders:  &order.Service{Store: order.NewStore(), Events: &events.Bus{Store: mem}},
		Locker:  &lockSpy{},
	}
	return fixture{svc: svc, stock: stock, carts: cart.NewStore(c, stock), events: mem}
}

type lockSpy struct {
	mu   sync.Mutex
	keys []string
}

func (l *lockSpy) WithLock(ctx context.Context, key string, _ time.Duration, fn func(context.Context) error) error {
	l.mu.Lock()
	l.keys = append(l.keys, key)
	l.mu.Unlock()
	return fn(ctx)
}

func fill(t *testing.T, c *cart.Cart, lines map[string]int) {
	t.Helper()
	for sku, qty := range lines {
		require.NoError(t, c.AddItem(sku, qty))
	}
}

func TestCheckoutPlacesOpenOrder(t *testing.T) {
	f := newFixture(t)
	c := f.carts.Create()
	fill(t, c, map[string]int{"CAMISETA": 2, "MEIA": 1, "CALCA": 1})

	o, err := f.svc.Checkout(context.Background(), Input{
		Customer:     customer.New("C1", "Ana", "VIP"),
		Cart:         c,
		Installments: 3,
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(o.ID, "PED-"))
	require.Equal(t, order.StatusOpen, o.Status)
	require.Equal(t, "C1", o.CustomerID)
	require.Equal(t, 3, o.Installments)
	require.Len(t, o.Items, 3)
	require.Equal(t, "230.33", o.Breakdown.GrandTotal.StringFixed(2))

	require.Equal(t, 18, f.stock.Quantity("CAMISETA"))
	require.Equal(t, 29, f.stock.Quantity("MEIA"))
	require.Equal(t, 9, f.stock.Quantity("CALCA"))

	stored, err := f.svc.Orders.Get(o.ID)
	require.NoError(t, err)
	require.Equal(t, o.ID, stored.ID)
	created := f.events.List(events.TopicOrderCreated)
	require.Len(t, created, 1)
	require.Equal(t, o.ID, created[0].AggregateID)
	require.Equal(t, []string{StockLockKey}, f.svc.Locker.(*lockSpy).keys)
}

func TestCheckoutRejectsBeforeTouchingStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	buyer := customer.New("C2", "Bruno", "REGULAR")

	_, err := f.svc.Checkout(ctx, Input{Customer: buyer, Cart: f.carts.Create()})
	require.ErrorIs(t, err, pricing.ErrEmptyCart)

	c := f.carts.Create()
	fill(t, c, map[string]int{"ARROZ": 1, "MICRO": 1})

	_, err = f.svc.Checkout(ctx, Input{Customer: buyer, Cart: c, Installments: 2})
	require.ErrorIs(t, err, catalog.ErrInvalidInstallments)
	_, err = f.svc.Checkout(ctx, Input{Customer: buyer, Cart: c, Installments: -1})
	require.ErrorIs(t, err, catalog.ErrInvalidInstallments)

	_, err = f.svc.Checkout(ctx, Input{Customer: buyer, Cart: c, CouponCode: "INVALIDO"})
	require.ErrorIs(t, err, pricing.ErrInvalidCoupon)

	require.Equal(t, 50, f.stock.Quantity("ARROZ"))
	require.Equal(t, 5, f.stock.Quantity("MICRO"))
	require.Empty(t, f.events.List(""))
}

type resizingCatalog struct {
	ProductSource
	cart *cart.Cart
	once sync.Once
}

func (r *resizingCatalog) Product(sku string) (catalog.Product, error) {
	r.once.Do(func() { _ = r.cart.UpdateQuantity("CAMISETA", 5) })
	return r.ProductSource.Product(sku)
}

func TestCheckoutUsesOneCartSnapshot(t *testing.T) {
	f := newFixture(t)
	c := f.carts.Create()
	fill(t, c, map[string]int{"CAMISETA": 1})
	f.svc.Catalog = &resizingCatalog{ProductSource: f.svc.Catalog, cart: c}

	o, err := f.svc.Checkout(context.Background(), Input{
		Customer: customer.New("C9", "Davi", "REGULAR"),
		Cart:     c,
	})
	require.NoError(t, err)
	require.Len(t, o.Items, 1)
	require.Equal(t, 1, o.Items[0].Quantity)
	require.Equal(t, "30.00", o.Breakdown.Subtotal.StringFixed(2))
	require.True(t, o.Breakdown.Subtotal.Equal(o.Items[0].Total()))
	require.Equal(t, 19, f.stock.Quantity("CAMISETA"))
}

func TestCheckoutInsufficientStockIsAtomic(t *testing.T) {
	f := newFixture(t)
	c := f.carts.Create()
	fill(t, c, map[string]int{"ARROZ": 2, "MICRO": 5})
	require.NoError(t, f.stock.Set("MICRO", 4))

	obs.MustRegisterDomainMetrics("test", prometheus.NewRegistry())
	before := testutil.ToFloat64(obs.CheckoutOrdersTotal.WithLabelValues("insufficient_stock"))

	_, err := f.svc.Checkout(context.Background(), Input{Customer: customer.New("C2", "Bruno", ""), Cart: c})
	require.ErrorIs(t, err, inventory.ErrInsufficientStock)
	require.Equal(t, 50, f.stock.Quantity("ARROZ"))
	require.Equal(t, 4, f.stock.Quantity("MICRO"))
	require.Equal(t, before+1, testutil.ToFloat64(obs.CheckoutOrdersTotal.WithLabelValues("insufficient_stock")))
}

func TestConcurrentCheckoutsNeverOversell(t *testing.T) {
	f := newFixture(t)
	f.svc.Locker = &lock.Local{}
	require.NoError(t, f.stock.Set("VASO", 3))

	carts := make([]*cart.Cart, 6)
	for i := range carts {
		carts[i] = f.carts.Create()
		fill(t, carts[i], map[string]int{"VASO": 1})
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	placed := 0
	for _, c := range carts {
		wg.Add(1)
		go func(c *cart.Cart) {
			defer wg.Done()
			if _, err := f.svc.Checkout(context.Background(), Input{Customer: customer.New("C", "", ""), Cart: c}); err == nil {
				mu.Lock()
				placed++
				mu.Unlock()
			}
		}(c)
	}
	wg.Wait()
	require.Equal(t, 3, placed)
	require.Equal(t, 0, f.stock.Quantity("VASO"))
}
