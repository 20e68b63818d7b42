package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/anafloresm/ropita-backend/internal/modules/catalog"
)

type postgresRepository struct{ db *sql.DB }

// NewPostgresRepository creates a PostgreSQL ledger repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const returningColumns = `
	p.id, p.sku, p.name, p.description, p.category_id, c.name, c.slug,
	p.size, p.color, p.price, p.cost, p.stock, p.min_stock, p.is_active,
	p.image_url, p.barcode, p.created_at, p.updated_at`

func scanProduct(row *sql.Row) (*catalog.Product, error) {
	p := &catalog.Product{}
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.CategoryID, &p.CategoryName,
		&p.CategorySlug, &p.Size, &p.Color, &p.Price, &p.Cost, &p.Stock,
		&p.MinStock, &p.IsActive, &p.ImageURL, &p.Barcode, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// AdjustBy applies the delta and the non-negativity guard in a single
// UPDATE, so concurrent adjustments serialize on the row and can never
// produce negative stock or lost updates.
func (r *postgresRepository) AdjustBy(ctx context.Context, sku string, delta int) (*catalog.Product, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE products p
		SET stock = p.stock + $1, updated_at = NOW()
		FROM categories c
		WHERE p.sku = $2 AND c.id = p.category_id AND p.stock + $1 >= 0
		RETURNING`+returningColumns,
		delta, sku)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.adjustFailure(ctx, sku, delta)
	}
	if err != nil {
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	return p, nil
}

// adjustFailure distinguishes "no such product" from "guard rejected the
// delta" after a zero-row update. The stock read here is diagnostic only;
// the guarded update above is what enforces the invariant.
func (r *postgresRepository) adjustFailure(ctx context.Context, sku string, delta int) error {
	var stock int
	err := r.db.QueryRowContext(ctx,
		`SELECT stock FROM products WHERE sku = $1`, sku).Scan(&stock)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: sku %q", ErrNotFound, sku)
	}
	if err != nil {
		return fmt.Errorf("inspect stock: %w", err)
	}
	return fmt.Errorf("%w: sku %q stock %d with delta %d would be negative",
		ErrInvalidQuantity, sku, stock, delta)
}

func (r *postgresRepository) SetStock(ctx context.Context, sku string, quantity int) (*catalog.Product, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE products p
		SET stock = $1, updated_at = NOW()
		FROM categories c
		WHERE p.sku = $2 AND c.id = p.category_id
		RETURNING`+returningColumns,
		quantity, sku)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: sku %q", ErrNotFound, sku)
	}
	if err != nil {
		return nil, fmt.Errorf("set stock: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) ListActive(ctx context.Context) ([]*catalog.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT`+returningColumns+`
		FROM products p JOIN categories c ON c.id = p.category_id
		WHERE p.is_active = TRUE
		ORDER BY p.sku`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*catalog.Product
	for rows.Next() {
		p := &catalog.Product{}
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Name, &p.Description, &p.CategoryID, &p.CategoryName,
			&p.CategorySlug, &p.Size, &p.Color, &p.Price, &p.Cost, &p.Stock,
			&p.MinStock, &p.IsActive, &p.ImageURL, &p.Barcode, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
