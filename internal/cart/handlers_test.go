package cart_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-checkout/internal/cart"
	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/inventory"
	"github.com/noah-isme/toko-checkout/internal/pricing"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()
	c, err := catalog.Seed()
	require.NoError(t, err)
	s, err := inventory.NewWithLevels(catalog.DemoStockLevels())
	require.NoError(t, err)
	h := &cart.Handler{Store: cart.NewStore(c, s), Engine: pricing.NewEngine(c, nil)}
	r := chi.NewRouter()
	r.Post("/api/v1/carts", h.Create)
	r.Get("/api/v1/carts/{id}", h.Get)
	r.Post("/api/v1/carts/{id}/items", h.AddItem)
	r.Patch("/api/v1/carts/{id}/items/{sku}", h.UpdateItem)
	r.Delete("/api/v1/carts/{id}/items/{sku}", h.RemoveItem)
	return r
}

func do(t *testing.T, srv http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rr
}

func createCart(t *testing.T, srv http.Handler) string {
	t.Helper()
	rr := do(t, srv, http.MethodPost, "/api/v1/carts", "")
	require.Equal(t, http.StatusCreated, rr.Code)
	var body struct {
		Data struct {
			CartID string `json:"cartId"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.CartID)
	return body.Data.CartID
}

func TestCartFlowWithPricingPreview(t *testing.T) {
	srv := newServer(t)
	id := createCart(t, srv)
	base := "/api/v1/carts/" + id

	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, base+"/items", `{"sku":"CAMISETA","quantity":2}`).Code)
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, base+"/items", `{"sku":"MEIA","quantity":1}`).Code)
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, base+"/items", `{"sku":"CALCA","quantity":1}`).Code)

	rr := do(t, srv, http.MethodGet, base+"?customer=vip", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Data struct {
			Subtotal string `json:"subtotal"`
			Pricing  struct {
				GrandTotal string `json:"grandTotal"`
			} `json:"pricing"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "190.00", body.Data.Subtotal)
	require.Equal(t, "230.33", body.Data.Pricing.GrandTotal)

	rr = do(t, srv, http.MethodGet, base+"?coupon=BOGUS", "")
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	require.Contains(t, rr.Body.String(), "INVALID_COUPON")
}

func TestCartItemErrors(t *testing.T) {
	srv := newServer(t)
	id := createCart(t, srv)
	base := "/api/v1/carts/" + id

	rr := do(t, srv, http.MethodPost, base+"/items", `{"sku":"MICRO","quantity":999}`)
	require.Equal(t, http.StatusConflict, rr.Code)
	require.Contains(t, rr.Body.String(), "INSUFFICIENT_STOCK")

	rr = do(t, srv, http.MethodPost, base+"/items", `{"sku":"NOPE","quantity":1}`)
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Contains(t, rr.Body.String(), "UNKNOWN_SKU")

	rr = do(t, srv, http.MethodPost, base+"/items", `{"sku":"ARROZ","quantity":0}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = do(t, srv, http.MethodPatch, base+"/items/ARROZ", `{"quantity":2}`)
	require.Equal(t, http.StatusNotFound, rr.Code)

	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, base+"/items", `{"sku":"ARROZ","quantity":1}`).Code)
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPatch, base+"/items/ARROZ", `{"quantity":3}`).Code)
	require.Equal(t, http.StatusNoContent, do(t, srv, http.MethodDelete, base+"/items/ARROZ", "").Code)

	rr = do(t, srv, http.MethodGet, "/api/v1/carts/missing", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
}
