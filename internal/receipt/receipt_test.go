package receipt

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/customer"
	"github.com/noah-isme/toko-checkout/internal/money"
	"github.com/noah-isme/toko-checkout/internal/order"
	"github.com/noah-isme/toko-checkout/internal/pricing"
)

func TestFormatBRL(t *testing.T) {
	require.Equal(t, "R$ 12,34", FormatBRL(money.New("12.34")))
	require.Equal(t, "R$ 0,00", FormatBRL(money.New("0")))
	require.Equal(t, "R$ 1234,57", FormatBRL(money.New("1234.565")))
}

func pricedOrder(t *testing.T, coupon string, items ...pricing.LineItem) order.Order {
	t.Helper()
	c, err := catalog.Seed()
	require.NoError(t, err)
	b, err := pricing.NewEngine(c, nil).Calculate(context.Background(), pricing.Request{
		Customer: customer.Regular, Items: items, CouponCode: coupon,
	})
	require.NoError(t, err)
	o := order.Order{ID: "PED-1", CustomerID: "C2", Breakdown: b, Status: order.StatusOpen, Installments: 1}
	for _, it := range items {
		o.Items = append(o.Items, order.Item{SKU: it.SKU, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	return o
}

func TestLines(t *testing.T) {
	o := pricedOrder(t, "ETIC10",
		pricing.LineItem{SKU: "VASO", Quantity: 1, UnitPrice: money.New("89.90")},
		pricing.LineItem{SKU: "MICRO", Quantity: 1, UnitPrice: money.New("499.90")},
	)
	o.Installments = 3
	lines := Lines(o)
	require.Equal(t, "=== FISCAL RECEIPT ===", lines[0])
	require.Contains(t, lines, "VASO | Qty: 1 | Unit: R$ 89,90 | Total: R$ 89,90")
	require.Contains(t, lines, "Subtotal: R$ 589,80")
	require.Contains(t, lines, "- ETIC10 (Coupon ETIC10 10% off): -R$ 58,98")
	require.Contains(t, lines, "Total Discounts: -R$ 88,98")
	require.Contains(t, lines, "Installments: 3x R$ 212,00")
	require.Contains(t, lines, "Grand Total: R$ 636,01")
	require.Equal(t, "Status: OPEN", lines[len(lines)-1])

	var appliance, decor int
	for i, l := range lines {
		switch l {
		case "- appliance: R$ 97,63":
			appliance = i
		case "- decor: R$ 17,56":
			decor = i
		}
	}
	require.NotZero(t, appliance)
	require.Greater(t, decor, appliance)
}

func TestLinesWithoutDiscounts(t *testing.T) {
	o := pricedOrder(t, "", pricing.LineItem{SKU: "ARROZ", Quantity: 1, UnitPrice: money.New("6.00")})
	require.Contains(t, Lines(o), "Discounts: none")
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Printer{W: &buf}.Print([]string{"a", "b"}))
	require.Equal(t, "a\nb\n", buf.String())
	require.NoError(t, Printer{}.Print([]string{"ignored"}))
}

func TestReceiptHandler(t *testing.T) {
	svc := &order.Service{Store: order.NewStore()}
	o := pricedOrder(t, "", pricing.LineItem{SKU: "ARROZ", Quantity: 2, UnitPrice: money.New("6.00")})
	require.NoError(t, svc.Place(context.Background(), o))

	r := chi.NewRouter()
	r.Get("/api/v1/orders/{id}/receipt", (&Handler{Orders: svc}).Receipt)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/orders/PED-1/receipt?format=text", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "Grand Total: R$ 32,72\n")

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/orders/PED-1/receipt", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "Status: OPEN")

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/orders/NOPE/receipt", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
}
