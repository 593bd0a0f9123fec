package checkout

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestCheckoutHandler(t *testing.T) {
	f := newFixture(t)
	h := &Handler{Svc: f.svc, Carts: f.carts}
	r := chi.NewRouter()
	r.Post("/api/v1/checkout", h.Checkout)

	c := f.carts.Create()
	fill(t, c, map[string]int{"MICRO": 1, "VASO": 1})

	post := func(body string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body)))
		return rr
	}

	rr := post(`{"cartId":"` + c.ID + `","customer":{"id":"C2"},"coupon":"NOPE"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	require.Contains(t, rr.Body.String(), "INVALID_COUPON")

	rr = post(`{"cartId":"` + c.ID + `","customer":{"id":"C2"},"installments":6}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	require.Contains(t, rr.Body.String(), "INVALID_INSTALLMENTS")

	rr = post(`{"cartId":"` + c.ID + `","customer":{"id":"C2","classification":"REGULAR"},"coupon":"ETIC10","installments":5}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	var body struct {
		Data struct {
			ID        string `json:"id"`
			Status    string `json:"status"`
			Breakdown struct {
				GrandTotal string `json:"grandTotal"`
			} `json:"breakdown"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "OPEN", body.Data.Status)
	require.Equal(t, "636.01", body.Data.Breakdown.GrandTotal)

	rr = post(`{"cartId":"` + c.ID + `","customer":{"id":"C2"}}`)
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = post(`{"customer":{"id":"C2"}}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	require.Contains(t, rr.Body.String(), "VALIDATION")
}
