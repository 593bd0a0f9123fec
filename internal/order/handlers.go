package order

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/toko-checkout/internal/common"
)

// Handler exposes order endpoints.
type Handler struct {
	Svc *Service
}

// List handles GET /api/v1/orders with an optional status filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil || h.Svc.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order service not configured", nil)
		return
	}
	status := Status(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status"))))
	rows := make([]Summary, 0)
	for _, o := range h.Svc.Store.List() {
		if status != "" && o.Status != status {
			continue
		}
		rows = append(rows, o.Summary())
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rows})
}

// Get handles GET /api/v1/orders/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.Svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": o})
}

// Pay handles POST /api/v1/orders/{id}/pay.
func (h *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	o, err := h.Svc.Pay(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": o.Summary()})
}

// Cancel handles POST /api/v1/orders/{id}/cancel.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	o, err := h.Svc.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": o.Summary()})
}

// AsAppError maps order failures onto API error codes.
func AsAppError(err error) error {
	var transErr *TransitionError
	switch {
	case errors.Is(err, ErrNotFound):
		return common.NewAppError("NOT_FOUND", "order not found", http.StatusNotFound, err)
	case errors.As(err, &transErr):
		appErr := common.NewAppError("INVALID_TRANSITION", err.Error(), http.StatusConflict, err)
		appErr.Details = map[string]any{"status": transErr.From, "target": transErr.To}
		return appErr
	}
	return err
}

func writeError(w http.ResponseWriter, err error) {
	common.WriteError(w, AsAppError(err))
}
