package catalog

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/toko-checkout/internal/common"
)

// Handler exposes public catalog endpoints.
type Handler struct {
	Catalog *Catalog
}

// Products handles GET /api/v1/products with an optional category filter.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	if h.Catalog == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog not configured", nil)
		return
	}
	raw := strings.TrimSpace(r.URL.Query().Get("category"))
	if raw == "" {
		common.JSON(w, http.StatusOK, map[string]any{"data": h.Catalog.List()})
		return
	}
	category, err := ParseCategory(raw)
	if err != nil {
		writeError(w, err)
		return
	}
	items, err := h.Catalog.ListByCategory(category)
	if err != nil {
		writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": items})
}

// ProductDetail handles GET /api/v1/products/{sku}.
func (h *Handler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	if h.Catalog == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog not configured", nil)
		return
	}
	product, err := h.Catalog.Product(chi.URLParam(r, "sku"))
	if err != nil {
		writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": product})
}

// Categories handles GET /api/v1/categories.
func (h *Handler) Categories(w http.ResponseWriter, _ *http.Request) {
	rows := make([]map[string]any, 0, len(Categories()))
	for _, c := range Categories() {
		rows = append(rows, map[string]any{"category": c, "taxRate": TaxRate(c)})
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rows})
}

// AsAppError maps catalog errors onto API error codes.
func AsAppError(err error) error {
	switch {
	case errors.Is(err, ErrUnknownSKU):
		return common.NewAppError("UNKNOWN_SKU", err.Error(), http.StatusNotFound, err)
	case errors.Is(err, ErrInvalidCategory):
		return common.NewAppError("INVALID_CATEGORY", err.Error(), http.StatusBadRequest, err)
	case errors.Is(err, ErrInvalidInstallments):
		return common.NewAppError("INVALID_INSTALLMENTS", err.Error(), http.StatusUnprocessableEntity, err)
	case errors.Is(err, ErrInvalidProduct), errors.Is(err, ErrDuplicateSKU):
		return common.NewAppError("INVALID_PRODUCT", err.Error(), http.StatusUnprocessableEntity, err)
	}
	return err
}

func writeError(w http.ResponseWriter, err error) {
	common.WriteError(w, AsAppError(err))
}
