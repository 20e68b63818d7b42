package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository defines category data storage.
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	List(ctx context.Context, includeInactive bool) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
	CountActiveProducts(ctx context.Context, categoryID uuid.UUID) (int, error)
}

// ProductQuery is the query specification the repository translates into
// SQL: plain predicates plus a sort key. Stock-tier filtering is NOT part
// of it; classification stays in-process (see the service).
type ProductQuery struct {
	CategorySlug    string
	Size            string
	Color           string
	MinPrice        *float64
	MaxPrice        *float64
	MinStock        *int
	MaxStock        *int
	Search          string // matches name, sku, description, barcode, category name
	IncludeInactive bool
	SortBy          string // name | price | stock | created_at (default)
	SortDesc        bool
}

// ProductRepository defines product data storage. Stock is never written
// through Update; only the inventory ledger mutates it.
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	GetBySKU(ctx context.Context, sku string) (*Product, error)
	List(ctx context.Context, q ProductQuery) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	// BulkUpdate applies the given column values to every listed SKU in
	// one statement and returns the number of rows touched.
	BulkUpdate(ctx context.Context, skus []string, fields map[string]interface{}) (int64, error)
}
