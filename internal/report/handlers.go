package report

import (
	"net/http"

	"github.com/noah-isme/toko-checkout/internal/common"
)

// Handler exposes report read endpoints.
type Handler struct {
	Svc *Service
}

// Summary handles GET /api/v1/reports/summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "REPORT_NOT_CONFIGURED", "report service not configured", nil)
		return
	}
	out, err := h.Svc.Summary(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to build report", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

// TopProducts handles GET /api/v1/reports/top-products?limit=.
func (h *Handler) TopProducts(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "REPORT_NOT_CONFIGURED", "report service not configured", nil)
		return
	}
	limit := common.ClampInt(common.AtoiDefault(r.URL.Query().Get("limit"), DefaultTopN), 1, 100)
	rows, err := h.Svc.TopProducts(r.Context(), limit)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to rank products", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rows})
}
