// Package inventory is the stock ledger: it owns every mutation of a
// product's stock quantity and the derived stock-status views. Stock is
// never written anywhere else, which is what keeps the non-negativity
// invariant enforceable.
package inventory

import (
	"errors"

	"github.com/anafloresm/ropita-backend/internal/modules/catalog"
)

var (
	// ErrNotFound is returned when the referenced SKU does not exist.
	ErrNotFound = errors.New("product not found")
	// ErrInvalidQuantity is returned when an adjustment would drive stock
	// negative, or a delta is negative where that is not permitted.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrValidation is returned on malformed input (missing delta,
	// unknown mode).
	ErrValidation = errors.New("validation failed")
)

// Mode selects how the delta is applied to the current stock.
type Mode string

const (
	ModeSet       Mode = "SET"       // stock = delta
	ModeIncrement Mode = "INCREMENT" // stock = stock + delta
	ModeDecrement Mode = "DECREMENT" // stock = stock - delta, fails below zero
)

// ValidMode reports whether m is a known adjustment mode.
func ValidMode(m Mode) bool {
	switch m {
	case ModeSet, ModeIncrement, ModeDecrement:
		return true
	}
	return false
}

// AdjustmentItem is one stock change request. Delta is a pointer so a
// missing field is distinguishable from an explicit zero.
type AdjustmentItem struct {
	SKU    string `json:"sku"`
	Delta  *int   `json:"delta"`
	Mode   Mode   `json:"mode"`
	Reason string `json:"reason,omitempty"`
}

// ItemError describes why one adjustment failed.
type ItemError struct {
	Kind    string `json:"kind"` // not_found | invalid_quantity | validation_error | internal_error
	Message string `json:"message"`
}

// AdjustmentResult reports the outcome of one bulk item, in input order.
// Stock is always present on success: an adjustment can legitimately land
// on zero, and the caller must be able to read that from the report.
type AdjustmentResult struct {
	SKU         string              `json:"sku"`
	OK          bool                `json:"ok"`
	Stock       int                 `json:"stock"`
	StockStatus catalog.StockStatus `json:"stock_status,omitempty"`
	Error       *ItemError          `json:"error,omitempty"`
}

// BulkReport summarizes a bulk adjustment. One item's failure never aborts
// the others; the overall call "succeeds" with per-item outcomes.
type BulkReport struct {
	Total     int                `json:"total"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
	Results   []AdjustmentResult `json:"results"`
}

// CategoryStats is the per-category slice of the inventory statistics.
type CategoryStats struct {
	Products   int     `json:"products"`
	TotalStock int     `json:"total_stock"`
	TotalValue float64 `json:"total_value"`
}

// Stats aggregates the active catalog for the reporting endpoint.
type Stats struct {
	TotalProducts   int                      `json:"total_products"`
	TotalStock      int                      `json:"total_stock"`
	LowStockCount   int                      `json:"low_stock_count"`
	OutOfStockCount int                      `json:"out_of_stock_count"`
	TotalValue      float64                  `json:"total_inventory_value"`
	Categories      map[string]CategoryStats `json:"categories"`
	LowStockPct     float64                  `json:"low_stock_percentage"`
	OutOfStockPct   float64                  `json:"out_of_stock_percentage"`
}
