package receipt

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/toko-checkout/internal/common"
	"github.com/noah-isme/toko-checkout/internal/order"
)

// Handler serves order receipts.
type Handler struct {
	Orders *order.Service
}

// Receipt handles GET /api/v1/orders/{id}/receipt. Pass format=text for a
// plain text rendering.
func (h *Handler) Receipt(w http.ResponseWriter, r *http.Request) {
	o, err := h.Orders.Get(chi.URLParam(r, "id"))
	if err != nil {
		common.WriteError(w, order.AsAppError(err))
		return
	}
	lines := Lines(o)
	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_ = Printer{W: w}.Print(lines)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": lines})
}
