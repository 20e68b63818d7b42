package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/anafloresm/ropita-backend/internal/platform/validate"
	"github.com/anafloresm/ropita-backend/internal/platform/web"
)

// Handler exposes catalog HTTP endpoints. Reads are public; writes require
// authentication and deletes require the admin role.
type Handler struct {
	service      Service
	requireAuth  func(http.Handler) http.Handler
	requireAdmin func(http.Handler) http.Handler
}

func NewHandler(service Service, requireAuth, requireAdmin func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, requireAuth: requireAuth, requireAdmin: requireAdmin}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	// Public reads
	r.Get("/api/v1/categories", h.listCategories)
	r.Get("/api/v1/categories/{slug}", h.getCategory)
	r.Get("/api/v1/products", h.listProducts)
	r.Get("/api/v1/products/{sku}", h.getProduct)
	r.Get("/api/v1/search/products", h.searchProducts)

	// Authenticated writes
	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Post("/api/v1/categories", h.createCategory)
		r.Put("/api/v1/categories/{slug}", h.updateCategory)
		r.Post("/api/v1/products", h.createProduct)
		r.Put("/api/v1/products/{sku}", h.updateProduct)
		r.Patch("/api/v1/products/bulk-update", h.bulkUpdateProducts)
	})

	// Privileged deletes (soft deactivation)
	r.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Delete("/api/v1/categories/{slug}", h.deleteCategory)
		r.Delete("/api/v1/products/{sku}", h.deleteProduct)
	})
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		web.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrDuplicate):
		web.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrValidation):
		web.Error(w, http.StatusBadRequest, err.Error())
	default:
		web.Error(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); validate.HasErrors(errs) {
		web.ValidationError(w, errs)
		return
	}
	c, err := h.service.CreateCategory(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, c)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetCategory(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, err)
		return
	}
	web.JSON(w, http.StatusOK, c)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	includeInactive := queryBool(r, "show_inactive")
	categories, err := h.service.ListCategories(r.Context(), includeInactive)
	if err != nil {
		respondError(w, err)
		return
	}
	web.JSON(w, http.StatusOK, categories)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); validate.HasErrors(errs) {
		web.ValidationError(w, errs)
		return
	}
	c, err := h.service.UpdateCategory(r.Context(), chi.URLParam(r, "slug"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	web.JSON(w, http.StatusOK, c)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeactivateCategory(r.Context(), chi.URLParam(r, "slug")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); validate.HasErrors(errs) {
		web.ValidationError(w, errs)
		return
	}
	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, p)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "sku"))
	if err != nil {
		respondError(w, err)
		return
	}
	web.JSON(w, http.StatusOK, p)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		web.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	products, err := h.service.ListProducts(r.Context(), q)
	if err != nil {
		respondError(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(products),
		"products": products,
	})
}

func (h *Handler) searchProducts(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		web.Error(w, http.StatusBadRequest, "query parameter \"q\" is required")
		return
	}
	products, err := h.service.ListProducts(r.Context(), ListProductsQuery{
		ProductQuery: ProductQuery{Search: term},
	})
	if err != nil {
		respondError(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]interface{}{
		"query":    term,
		"count":    len(products),
		"products": products,
	})
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); validate.HasErrors(errs) {
		web.ValidationError(w, errs)
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "sku"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	web.JSON(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeactivateProduct(r.Context(), chi.URLParam(r, "sku")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) bulkUpdateProducts(w http.ResponseWriter, r *http.Request) {
	var req BulkUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	updated, err := h.service.BulkUpdateProducts(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "products updated",
		"updated": updated,
	})
}

func parseListQuery(r *http.Request) (ListProductsQuery, error) {
	values := r.URL.Query()
	q := ListProductsQuery{
		ProductQuery: ProductQuery{
			CategorySlug:    values.Get("category"),
			Size:            values.Get("size"),
			Color:           values.Get("color"),
			Search:          values.Get("search"),
			IncludeInactive: queryBool(r, "show_inactive"),
			SortBy:          values.Get("sort"),
			SortDesc:        values.Get("order") == "desc",
		},
	}

	var err error
	if q.MinPrice, err = queryFloat(values.Get("min_price")); err != nil {
		return q, errors.New("min_price must be a number")
	}
	if q.MaxPrice, err = queryFloat(values.Get("max_price")); err != nil {
		return q, errors.New("max_price must be a number")
	}
	if q.MinStock, err = queryInt(values.Get("min_stock")); err != nil {
		return q, errors.New("min_stock must be an integer")
	}
	if q.MaxStock, err = queryInt(values.Get("max_stock")); err != nil {
		return q, errors.New("max_stock must be an integer")
	}
	if status := values.Get("status"); status != "" {
		q.Status = StockStatus(strings.ToUpper(status))
	}
	return q, nil
}

func queryBool(r *http.Request, name string) bool {
	return strings.EqualFold(r.URL.Query().Get(name), "true")
}

func queryFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func queryInt(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
