package checkout

import (
	"errors"
	"net/http"
	"strings"

	"github.com/noah-isme/toko-checkout/internal/cart"
	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/common"
	"github.com/noah-isme/toko-checkout/internal/customer"
)

// Handler exposes the checkout endpoint.
type Handler struct {
	Svc   *Service
	Carts *cart.Store
}

type customerPayload struct {
	ID             string `json:"id" validate:"required"`
	Name           string `json:"name"`
	Classification string `json:"classification" validate:"omitempty,oneof=VIP REGULAR vip regular"`
}

type checkoutRequest struct {
	CartID       string          `json:"cartId" validate:"required"`
	Customer     customerPayload `json:"customer"`
	Coupon       string          `json:"coupon"`
	Installments int             `json:"installments" validate:"omitempty,min=1"`
}

// Checkout handles POST /api/v1/checkout. The cart is discarded once the
// order is placed.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil || h.Carts == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	var req checkoutRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	c, err := h.Carts.Get(strings.TrimSpace(req.CartID))
	if err != nil {
		writeError(w, err)
		return
	}
	o, err := h.Svc.Checkout(r.Context(), Input{
		Customer:     customer.New(req.Customer.ID, req.Customer.Name, req.Customer.Classification),
		Cart:         c,
		CouponCode:   strings.TrimSpace(req.Coupon),
		Installments: req.Installments,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	h.Carts.Delete(c.ID)
	common.JSON(w, http.StatusCreated, map[string]any{"data": o})
}

// AsAppError maps checkout failures onto API error codes.
func AsAppError(err error) error {
	if errors.Is(err, catalog.ErrInvalidInstallments) {
		return catalog.AsAppError(err)
	}
	return cart.AsAppError(err)
}

func writeError(w http.ResponseWriter, err error) {
	common.WriteError(w, AsAppError(err))
}
