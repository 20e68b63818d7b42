package inventory

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/anafloresm/ropita-backend/internal/modules/catalog"
	"github.com/anafloresm/ropita-backend/internal/platform/web"
)

// Handler exposes the ledger HTTP endpoints. Alert views are public;
// stock mutations require authentication.
type Handler struct {
	service     Service
	requireAuth func(http.Handler) http.Handler
}

func NewHandler(service Service, requireAuth func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, requireAuth: requireAuth}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/api/v1/products/alerts/low-stock", h.lowStock)
	r.Get("/api/v1/products/alerts/out-of-stock", h.outOfStock)
	r.Get("/api/v1/inventory/stats", h.stats)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Patch("/api/v1/products/{sku}/stock", h.adjustStock)
		r.Post("/api/v1/products/stock/bulk", h.bulkAdjustStock)
	})
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		web.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidQuantity), errors.Is(err, ErrValidation):
		web.Error(w, http.StatusBadRequest, err.Error())
	default:
		web.Error(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	var item AdjustmentItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sku := chi.URLParam(r, "sku")
	p, err := h.service.AdjustStock(r.Context(), sku, item)
	if err != nil {
		respondError(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "stock updated",
		"product": p,
	})
}

func (h *Handler) bulkAdjustStock(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Items []AdjustmentItem `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(body.Items) == 0 {
		web.Error(w, http.StatusBadRequest, "items list is empty")
		return
	}
	// Partial success by design: a malformed SKU must not block the rest
	// of a restock batch, so the report is returned with 200 regardless
	// of per-item failures.
	report := h.service.BulkAdjustStock(r.Context(), body.Items)
	web.JSON(w, http.StatusOK, report)
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, catalog.StatusLowStock)
}

func (h *Handler) outOfStock(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, catalog.StatusOutOfStock)
}

func (h *Handler) listByStatus(w http.ResponseWriter, r *http.Request, status catalog.StockStatus) {
	products, err := h.service.ListByStatus(r.Context(), status)
	if err != nil {
		respondError(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(products),
		"products": products,
	})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		respondError(w, err)
		return
	}
	web.JSON(w, http.StatusOK, stats)
}
