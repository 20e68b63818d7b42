package inventory

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passthrough(next http.Handler) http.Handler { return next }

func setupRouter(repo *fakeRepository) *chi.Mux {
	router := chi.NewRouter()
	NewHandler(NewService(repo), passthrough).RegisterRoutes(router)
	return router
}

func TestAdjustStockEndpoint(t *testing.T) {
	repo := newFakeRepository(product("CAM-1", 10, 5))
	router := setupRouter(repo)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/products/CAM-1/stock",
		strings.NewReader(`{"delta": 5, "mode": "INCREMENT"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Product struct {
			Stock       int    `json:"stock"`
			StockStatus string `json:"stock_status"`
		} `json:"product"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 15, body.Product.Stock)
	assert.Equal(t, "IN_STOCK", body.Product.StockStatus)
}

func TestAdjustStockEndpointUnknownSKU(t *testing.T) {
	router := setupRouter(newFakeRepository())

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/products/NOPE/stock",
		strings.NewReader(`{"delta": 1, "mode": "INCREMENT"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdjustStockEndpointNegativeResult(t *testing.T) {
	repo := newFakeRepository(product("CAM-1", 2, 5))
	router := setupRouter(repo)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/products/CAM-1/stock",
		strings.NewReader(`{"delta": 3, "mode": "DECREMENT"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 2, repo.stock("CAM-1"))
}

func TestAdjustStockEndpointMissingDelta(t *testing.T) {
	repo := newFakeRepository(product("CAM-1", 2, 5))
	router := setupRouter(repo)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/products/CAM-1/stock",
		strings.NewReader(`{"mode": "SET"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBulkAdjustEndpointPartialSuccess(t *testing.T) {
	repo := newFakeRepository(product("CAM-1", 10, 5), product("CAM-2", 2, 5))
	router := setupRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/stock/bulk",
		strings.NewReader(`{"items": [
			{"sku": "CAM-1", "delta": 5, "mode": "INCREMENT"},
			{"sku": "NOPE",  "delta": 1, "mode": "INCREMENT"},
			{"sku": "CAM-2", "delta": 3, "mode": "DECREMENT"}
		]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// The batch endpoint reports per-item outcomes with 200 even when
	// some items fail.
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report BulkReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 2, report.Failed)
	require.Len(t, report.Results, 3)
	assert.Equal(t, []string{"CAM-1", "NOPE", "CAM-2"},
		[]string{report.Results[0].SKU, report.Results[1].SKU, report.Results[2].SKU})
}

func TestBulkAdjustEndpointDecrementToZero(t *testing.T) {
	repo := newFakeRepository(product("CAM-1", 3, 5))
	router := setupRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/stock/bulk",
		strings.NewReader(`{"items": [{"sku": "CAM-1", "delta": 3, "mode": "DECREMENT"}]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Decode into a raw map: the stock field must be present even when the
	// new quantity is exactly zero.
	var body struct {
		Results []map[string]interface{} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)

	result := body.Results[0]
	assert.Equal(t, true, result["ok"])
	stock, present := result["stock"]
	require.True(t, present, "successful results always report the new stock")
	assert.EqualValues(t, 0, stock)
	assert.Equal(t, "OUT_OF_STOCK", result["stock_status"])
}

func TestBulkAdjustEndpointEmptyItems(t *testing.T) {
	router := setupRouter(newFakeRepository())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/stock/bulk",
		strings.NewReader(`{"items": []}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLowStockAlertEndpoint(t *testing.T) {
	repo := newFakeRepository(
		product("CAM-1", 3, 5),
		product("CAM-2", 20, 5),
		product("CAM-3", 0, 5),
	)
	router := setupRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/alerts/low-stock", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count    int `json:"count"`
		Products []struct {
			SKU string `json:"sku"`
		} `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Products, 1)
	assert.Equal(t, "CAM-1", body.Products[0].SKU)
}

func TestStatsEndpoint(t *testing.T) {
	repo := newFakeRepository(product("CAM-1", 10, 5), product("CAM-2", 0, 5))
	router := setupRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var stats Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 10, stats.TotalStock)
	assert.Equal(t, 1, stats.OutOfStockCount)
}
