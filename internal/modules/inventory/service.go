package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/anafloresm/ropita-backend/internal/modules/catalog"
)

// Service defines the ledger operations.
type Service interface {
	// AdjustStock applies one stock change and returns the updated
	// product. All-or-nothing for the single product.
	AdjustStock(ctx context.Context, sku string, item AdjustmentItem) (*catalog.Product, error)

	// BulkAdjustStock processes each item independently and reports
	// per-item outcomes in input order. Partial success is expected.
	BulkAdjustStock(ctx context.Context, items []AdjustmentItem) *BulkReport

	// ListByStatus returns the active products in the given tier, in
	// stable SKU order. Classification runs in-process.
	ListByStatus(ctx context.Context, status catalog.StockStatus) ([]*catalog.Product, error)

	// Stats aggregates the active catalog, optionally restricted to one
	// category slug.
	Stats(ctx context.Context, categorySlug string) (*Stats, error)
}

type service struct {
	repo Repository
}

// NewService creates a new ledger service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) AdjustStock(ctx context.Context, sku string, item AdjustmentItem) (*catalog.Product, error) {
	if sku == "" {
		return nil, fmt.Errorf("%w: sku is required", ErrValidation)
	}
	if item.Delta == nil {
		return nil, fmt.Errorf("%w: delta is required", ErrValidation)
	}
	if !ValidMode(item.Mode) {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrValidation, item.Mode)
	}
	delta := *item.Delta

	switch item.Mode {
	case ModeSet:
		if delta < 0 {
			return nil, fmt.Errorf("%w: cannot set stock of %q to %d", ErrInvalidQuantity, sku, delta)
		}
		return s.repo.SetStock(ctx, sku, delta)
	case ModeIncrement:
		if delta < 0 {
			return nil, fmt.Errorf("%w: increment delta %d is negative", ErrInvalidQuantity, delta)
		}
		return s.repo.AdjustBy(ctx, sku, delta)
	default: // ModeDecrement
		if delta < 0 {
			return nil, fmt.Errorf("%w: decrement delta %d is negative", ErrInvalidQuantity, delta)
		}
		return s.repo.AdjustBy(ctx, sku, -delta)
	}
}

func (s *service) BulkAdjustStock(ctx context.Context, items []AdjustmentItem) *BulkReport {
	report := &BulkReport{
		Total:   len(items),
		Results: make([]AdjustmentResult, 0, len(items)),
	}
	for _, item := range items {
		result := AdjustmentResult{SKU: item.SKU}
		p, err := s.AdjustStock(ctx, item.SKU, item)
		if err != nil {
			report.Failed++
			result.Error = &ItemError{Kind: errorKind(err), Message: err.Error()}
		} else {
			report.Succeeded++
			result.OK = true
			result.Stock = p.Stock
			result.StockStatus = p.Status()
		}
		report.Results = append(report.Results, result)
	}
	return report
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, ErrValidation):
		return "validation_error"
	default:
		return "internal_error"
	}
}

func (s *service) ListByStatus(ctx context.Context, status catalog.StockStatus) ([]*catalog.Product, error) {
	if !catalog.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown stock status %q", ErrValidation, status)
	}
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	matched := products[:0]
	for _, p := range products {
		if p.Status() == status {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *service) Stats(ctx context.Context, categorySlug string) (*Stats, error) {
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Categories: make(map[string]CategoryStats)}
	for _, p := range products {
		if categorySlug != "" && p.CategorySlug != categorySlug {
			continue
		}
		stats.TotalProducts++
		stats.TotalStock += p.Stock
		stats.TotalValue += p.Price * float64(p.Stock)
		switch p.Status() {
		case catalog.StatusLowStock:
			stats.LowStockCount++
		case catalog.StatusOutOfStock:
			stats.OutOfStockCount++
		}

		cs := stats.Categories[p.CategoryName]
		cs.Products++
		cs.TotalStock += p.Stock
		cs.TotalValue += p.Price * float64(p.Stock)
		stats.Categories[p.CategoryName] = cs
	}
	if stats.TotalProducts > 0 {
		stats.LowStockPct = float64(stats.LowStockCount) / float64(stats.TotalProducts) * 100
		stats.OutOfStockPct = float64(stats.OutOfStockCount) / float64(stats.TotalProducts) * 100
	}
	return stats, nil
}
