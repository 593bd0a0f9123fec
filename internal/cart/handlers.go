package cart

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/common"
	"github.com/noah-isme/toko-checkout/internal/customer"
	"github.com/noah-isme/toko-checkout/internal/inventory"
	"github.com/noah-isme/toko-checkout/internal/pricing"
)

// Handler wires carts to HTTP.
type Handler struct {
	Store  *Store
	Engine *pricing.Engine
}

type addItemRequest struct {
	SKU      string `json:"sku" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// Create handles POST /api/v1/carts.
func (h *Handler) Create(w http.ResponseWriter, _ *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart store not configured", nil)
		return
	}
	c := h.Store.Create()
	common.JSON(w, http.StatusCreated, map[string]any{"data": map[string]any{"cartId": c.ID}})
}

// Get handles GET /api/v1/carts/{id}. When the engine is configured a price
// preview is included, honouring the optional customer and coupon query
// parameters.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := h.load(w, r)
	if !ok {
		return
	}
	data := map[string]any{
		"id":       c.ID,
		"items":    c.Items(),
		"subtotal": c.Subtotal().StringFixed(2),
	}
	if h.Engine != nil && !c.IsEmpty() {
		q := r.URL.Query()
		preview, err := h.Engine.Calculate(r.Context(), pricing.Request{
			Customer:   customer.ParseClassification(q.Get("customer")),
			Items:      c.LineItems(),
			CouponCode: strings.TrimSpace(q.Get("coupon")),
		})
		if err != nil {
			h.writeError(w, err)
			return
		}
		data["pricing"] = preview
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": data})
}

// AddItem handles POST /api/v1/carts/{id}/items.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	c, ok := h.load(w, r)
	if !ok {
		return
	}
	var req addItemRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	if err := c.AddItem(strings.TrimSpace(req.SKU), req.Quantity); err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": c.Items()})
}

// UpdateItem handles PATCH /api/v1/carts/{id}/items/{sku}.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	c, ok := h.load(w, r)
	if !ok {
		return
	}
	var req updateItemRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	if err := c.UpdateQuantity(chi.URLParam(r, "sku"), req.Quantity); err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": c.Items()})
}

// RemoveItem handles DELETE /api/v1/carts/{id}/items/{sku}.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := c.RemoveItem(chi.URLParam(r, "sku")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*Cart, bool) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart store not configured", nil)
		return nil, false
	}
	c, err := h.Store.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return nil, false
	}
	return c, true
}

// AsAppError maps cart, catalog and stock failures onto API error codes.
func AsAppError(err error) error {
	var stockErr *inventory.InsufficientStockError
	switch {
	case errors.Is(err, ErrNotFound):
		return common.NewAppError("NOT_FOUND", "cart not found", http.StatusNotFound, err)
	case errors.Is(err, ErrItemNotFound):
		return common.NewAppError("NOT_FOUND", err.Error(), http.StatusNotFound, err)
	case errors.Is(err, ErrInvalidQuantity), errors.Is(err, inventory.ErrInvalidQuantity):
		return common.NewAppError("INVALID_QUANTITY", err.Error(), http.StatusUnprocessableEntity, err)
	case errors.As(err, &stockErr):
		appErr := common.NewAppError("INSUFFICIENT_STOCK", err.Error(), http.StatusConflict, err)
		appErr.Details = map[string]any{
			"sku":       stockErr.SKU,
			"available": stockErr.Available,
			"requested": stockErr.Requested,
		}
		return appErr
	case errors.Is(err, catalog.ErrUnknownSKU):
		return catalog.AsAppError(err)
	}
	return pricing.AsAppError(err)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	common.WriteError(w, AsAppError(err))
}
