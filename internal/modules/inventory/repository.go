package inventory

import (
	"context"

	"github.com/anafloresm/ropita-backend/internal/modules/catalog"
)

// Repository is the persistence port for the stock ledger. Implementations
// must make AdjustBy and SetStock single atomic conditional updates; the
// ledger never reads stock, computes in memory and writes back, since that
// pattern loses updates under concurrent callers.
type Repository interface {
	// AdjustBy adds delta (possibly negative) to the product's stock in
	// one guarded update and returns the updated product. It returns
	// ErrNotFound for an unknown SKU and ErrInvalidQuantity when the
	// result would be negative; stock is left unchanged in both cases.
	AdjustBy(ctx context.Context, sku string, delta int) (*catalog.Product, error)

	// SetStock replaces the product's stock with quantity (>= 0,
	// validated by the caller) and returns the updated product.
	SetStock(ctx context.Context, sku string, quantity int) (*catalog.Product, error)

	// ListActive returns all active products in stable SKU order.
	ListActive(ctx context.Context) ([]*catalog.Product, error)
}
