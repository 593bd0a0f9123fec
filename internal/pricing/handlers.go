package pricing

import (
	"errors"
	"net/http"
	"strings"

	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/common"
	"github.com/noah-isme/toko-checkout/internal/customer"
)

// Handler exposes the stateless quote endpoint.
type Handler struct {
	Engine *Engine
}

type quoteRequest struct {
	Customer string     `json:"customer" validate:"omitempty,oneof=VIP REGULAR vip regular"`
	Coupon   string     `json:"coupon"`
	Items    []LineItem `json:"items"`
}

// Quote handles POST /api/v1/pricing/quote.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if h.Engine == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "pricing not configured", nil)
		return
	}
	var req quoteRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	breakdown, err := h.Engine.Calculate(r.Context(), Request{
		Customer:   customer.ParseClassification(req.Customer),
		Items:      req.Items,
		CouponCode: strings.TrimSpace(req.Coupon),
	})
	if err != nil {
		common.WriteError(w, AsAppError(err))
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": breakdown})
}

// AsAppError maps pricing failures onto API error codes.
func AsAppError(err error) error {
	var couponErr *InvalidCouponError
	var skuErr *catalog.UnknownSKUError
	switch {
	case errors.Is(err, ErrEmptyCart):
		return common.NewAppError("EMPTY_CART", "cart has no items", http.StatusUnprocessableEntity, err)
	case errors.Is(err, ErrInvalidLineItem):
		return common.NewAppError("INVALID_ITEM", err.Error(), http.StatusUnprocessableEntity, err)
	case errors.As(err, &couponErr):
		appErr := common.NewAppError("INVALID_COUPON", "coupon is not recognised", http.StatusUnprocessableEntity, err)
		appErr.Details = map[string]string{"coupon": couponErr.Code}
		return appErr
	case errors.As(err, &skuErr):
		appErr := common.NewAppError("UNKNOWN_SKU", "product not found", http.StatusUnprocessableEntity, err)
		appErr.Details = map[string]string{"sku": skuErr.SKU}
		return appErr
	}
	return err
}
