package order_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-checkout/internal/money"
	"github.com/noah-isme/toko-checkout/internal/order"
	"github.com/noah-isme/toko-checkout/internal/pricing"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := &order.Service{Store: order.NewStore()}
	require.NoError(t, svc.Place(context.Background(), order.Order{
		ID:        "PED-1",
		Items:     []order.Item{{SKU: "ARROZ", Quantity: 1, UnitPrice: money.New("6.00")}},
		Breakdown: pricing.Breakdown{GrandTotal: money.New("26.36")},
		Status:    order.StatusOpen,
		CreatedAt: time.Now(),
	}))
	h := &order.Handler{Svc: svc}
	r := chi.NewRouter()
	r.Get("/api/v1/orders", h.List)
	r.Get("/api/v1/orders/{id}", h.Get)
	r.Post("/api/v1/orders/{id}/pay", h.Pay)
	r.Post("/api/v1/orders/{id}/cancel", h.Cancel)
	return r
}

func call(r http.Handler, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	r := newRouter(t)

	rr := call(r, http.MethodGet, "/api/v1/orders/PED-1")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"grandTotal":"26.36"`)

	rr = call(r, http.MethodPost, "/api/v1/orders/PED-1/pay")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"status":"PAID"`)

	rr = call(r, http.MethodPost, "/api/v1/orders/PED-1/cancel")
	require.Equal(t, http.StatusConflict, rr.Code)
	require.Contains(t, rr.Body.String(), "INVALID_TRANSITION")

	rr = call(r, http.MethodGet, "/api/v1/orders?status=paid")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "PED-1")

	rr = call(r, http.MethodGet, "/api/v1/orders?status=open")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotContains(t, rr.Body.String(), "PED-1")

	rr = call(r, http.MethodPost, "/api/v1/orders/NOPE/pay")
	require.Equal(t, http.StatusNotFound, rr.Code)
}
