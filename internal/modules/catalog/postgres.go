package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaks.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

// ---- Category ----

type categoryPostgres struct{ db *sql.DB }

// NewCategoryPostgresRepository creates a PostgreSQL category repository.
func NewCategoryPostgresRepository(db *sql.DB) CategoryRepository {
	return &categoryPostgres{db: db}
}

const categoryColumns = `id, name, description, slug, is_active, created_at, updated_at`

func scanCategory(row interface{ Scan(...interface{}) error }) (*Category, error) {
	c := &Category{}
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Slug, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *categoryPostgres) Create(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, description, slug, is_active)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Description, c.Slug, c.IsActive)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: category name or slug already exists", ErrDuplicate)
	}
	return err
}

func (r *categoryPostgres) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	return scanCategory(row)
}

func (r *categoryPostgres) List(ctx context.Context, includeInactive bool) ([]*Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoryPostgres) Update(ctx context.Context, c *Category) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories
		SET name = $1, description = $2, is_active = $3, updated_at = NOW()
		WHERE id = $4`,
		c.Name, c.Description, c.IsActive, c.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: category name already exists", ErrDuplicate)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *categoryPostgres) CountActiveProducts(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE category_id = $1 AND is_active = TRUE`,
		categoryID).Scan(&n)
	return n, err
}

// ---- Product ----

type productPostgres struct{ db *sql.DB }

// NewProductPostgresRepository creates a PostgreSQL product repository.
func NewProductPostgresRepository(db *sql.DB) ProductRepository {
	return &productPostgres{db: db}
}

const productColumns = `
	p.id, p.sku, p.name, p.description, p.category_id, c.name, c.slug,
	p.size, p.color, p.price, p.cost, p.stock, p.min_stock, p.is_active,
	p.image_url, p.barcode, p.created_at, p.updated_at`

const productFrom = ` FROM products p JOIN categories c ON c.id = p.category_id`

func scanProduct(row interface{ Scan(...interface{}) error }) (*Product, error) {
	p := &Product{}
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.CategoryID, &p.CategoryName,
		&p.CategorySlug, &p.Size, &p.Color, &p.Price, &p.Cost, &p.Stock,
		&p.MinStock, &p.IsActive, &p.ImageURL, &p.Barcode, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productPostgres) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products
			(id, sku, name, description, category_id, size, color, price, cost,
			 stock, min_stock, is_active, image_url, barcode)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID, p.SKU, p.Name, p.Description, p.CategoryID, p.Size, p.Color,
		p.Price, p.Cost, p.Stock, p.MinStock, p.IsActive, p.ImageURL, p.Barcode)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: sku %q already exists", ErrDuplicate, p.SKU)
	}
	return err
}

func (r *productPostgres) GetBySKU(ctx context.Context, sku string) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT`+productColumns+productFrom+` WHERE p.sku = $1`, sku)
	return scanProduct(row)
}

// sortColumns whitelists the sortable columns; anything else falls back to
// created_at.
var sortColumns = map[string]string{
	"name":       "p.name",
	"price":      "p.price",
	"stock":      "p.stock",
	"created_at": "p.created_at",
}

func (r *productPostgres) List(ctx context.Context, q ProductQuery) ([]*Product, error) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !q.IncludeInactive {
		conds = append(conds, "p.is_active = TRUE")
	}
	if q.CategorySlug != "" {
		conds = append(conds, "c.slug = "+arg(q.CategorySlug))
	}
	if q.Size != "" {
		conds = append(conds, "p.size = "+arg(q.Size))
	}
	if q.Color != "" {
		conds = append(conds, "p.color = "+arg(q.Color))
	}
	if q.MinPrice != nil {
		conds = append(conds, "p.price >= "+arg(*q.MinPrice))
	}
	if q.MaxPrice != nil {
		conds = append(conds, "p.price <= "+arg(*q.MaxPrice))
	}
	if q.MinStock != nil {
		conds = append(conds, "p.stock >= "+arg(*q.MinStock))
	}
	if q.MaxStock != nil {
		conds = append(conds, "p.stock <= "+arg(*q.MaxStock))
	}
	if q.Search != "" {
		pattern := arg("%" + q.Search + "%")
		conds = append(conds, fmt.Sprintf(
			"(p.name ILIKE %[1]s OR p.sku ILIKE %[1]s OR p.description ILIKE %[1]s OR p.barcode ILIKE %[1]s OR c.name ILIKE %[1]s)",
			pattern))
	}

	query := `SELECT` + productColumns + productFrom
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = "p.created_at"
	}
	direction := "ASC"
	if q.SortDesc || !ok {
		direction = "DESC"
	}
	// Secondary sort on sku keeps the order stable across identical keys.
	query += fmt.Sprintf(" ORDER BY %s %s, p.sku", column, direction)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productPostgres) Update(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, category_id = $3, size = $4, color = $5,
		    price = $6, cost = $7, min_stock = $8, is_active = $9,
		    image_url = $10, barcode = $11, updated_at = NOW()
		WHERE sku = $12`,
		p.Name, p.Description, p.CategoryID, p.Size, p.Color, p.Price, p.Cost,
		p.MinStock, p.IsActive, p.ImageURL, p.Barcode, p.SKU)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productPostgres) BulkUpdate(ctx context.Context, skus []string, fields map[string]interface{}) (int64, error) {
	if len(skus) == 0 || len(fields) == 0 {
		return 0, nil
	}

	// Deterministic column order keeps the generated SQL reproducible.
	columns := make([]string, 0, len(fields))
	for column := range fields {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	var (
		sets []string
		args []interface{}
	)
	for _, column := range columns {
		args = append(args, fields[column])
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	args = append(args, pq.Array(skus))

	query := fmt.Sprintf(
		"UPDATE products SET %s, updated_at = NOW() WHERE sku = ANY($%d)",
		strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
