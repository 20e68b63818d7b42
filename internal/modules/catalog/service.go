package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines catalog business logic.
type Service interface {
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	GetCategory(ctx context.Context, slug string) (*Category, error)
	ListCategories(ctx context.Context, includeInactive bool) ([]*Category, error)
	UpdateCategory(ctx context.Context, slug string, req UpdateCategoryRequest) (*Category, error)
	DeactivateCategory(ctx context.Context, slug string) error

	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, sku string) (*Product, error)
	ListProducts(ctx context.Context, q ListProductsQuery) ([]*Product, error)
	UpdateProduct(ctx context.Context, sku string, req UpdateProductRequest) (*Product, error)
	DeactivateProduct(ctx context.Context, sku string) error
	BulkUpdateProducts(ctx context.Context, req BulkUpdateRequest) (int64, error)
}

// CreateCategoryRequest holds the data for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"nullable,max=2000"`
	Slug        string `json:"slug" validate:"nullable,max=120"`
}

// UpdateCategoryRequest holds a partial category update. The slug is
// stable once assigned and cannot be changed here.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"nullable,min=2,max=100"`
	Description *string `json:"description" validate:"nullable,max=2000"`
	IsActive    *bool   `json:"is_active"`
}

// CreateProductRequest holds the data for creating a product.
type CreateProductRequest struct {
	SKU          string  `json:"sku" validate:"nullable,max=50"`
	Name         string  `json:"name" validate:"required,min=2,max=200"`
	Description  string  `json:"description" validate:"nullable,max=5000"`
	CategorySlug string  `json:"category_slug" validate:"required"`
	Size         string  `json:"size" validate:"required"`
	Color        string  `json:"color" validate:"required"`
	Price        float64 `json:"price" validate:"gte=0"`
	Cost         float64 `json:"cost" validate:"gte=0"`
	Stock        *int    `json:"stock" validate:"nullable,gte=0"`
	MinStock     *int    `json:"min_stock" validate:"nullable,gte=0"`
	ImageURL     string  `json:"image_url" validate:"nullable,max=500"`
	Barcode      string  `json:"barcode" validate:"nullable,max=50"`
}

// UpdateProductRequest holds a partial product update. Stock is absent on
// purpose: quantities change only through the inventory ledger.
type UpdateProductRequest struct {
	Name         *string  `json:"name" validate:"nullable,min=2,max=200"`
	Description  *string  `json:"description" validate:"nullable,max=5000"`
	CategorySlug *string  `json:"category_slug"`
	Size         *string  `json:"size"`
	Color        *string  `json:"color"`
	Price        *float64 `json:"price" validate:"nullable,gte=0"`
	Cost         *float64 `json:"cost" validate:"nullable,gte=0"`
	MinStock     *int     `json:"min_stock" validate:"nullable,gte=0"`
	IsActive     *bool    `json:"is_active"`
	ImageURL     *string  `json:"image_url" validate:"nullable,max=500"`
	Barcode      *string  `json:"barcode" validate:"nullable,max=50"`
}

// ListProductsQuery is the service-level listing query: the repository
// predicates plus an optional stock-tier filter applied in-process.
type ListProductsQuery struct {
	ProductQuery
	Status StockStatus
}

// BulkUpdateRequest applies the same field values to a list of SKUs.
type BulkUpdateRequest struct {
	SKUs    []string               `json:"skus" validate:"required"`
	Updates map[string]interface{} `json:"updates" validate:"required"`
}

// bulkUpdatableFields whitelists the columns a bulk update may touch.
// Stock is excluded: it mutates only through the inventory ledger.
var bulkUpdatableFields = map[string]bool{
	"price":     true,
	"min_stock": true,
	"is_active": true,
}

type service struct {
	categories CategoryRepository
	products   ProductRepository
}

// NewService creates a new catalog service.
func NewService(categories CategoryRepository, products ProductRepository) Service {
	return &service{categories: categories, products: products}
}

func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: name produces an empty slug", ErrValidation)
	}
	c := &Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Slug:        slug,
		IsActive:    true,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetCategory(ctx context.Context, slug string) (*Category, error) {
	c, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	n, err := s.categories.CountActiveProducts(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("count active products: %w", err)
	}
	c.ActiveProducts = &n
	return c, nil
}

func (s *service) ListCategories(ctx context.Context, includeInactive bool) ([]*Category, error) {
	return s.categories.List(ctx, includeInactive)
}

func (s *service) UpdateCategory(ctx context.Context, slug string, req UpdateCategoryRequest) (*Category, error) {
	c, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		// Renaming does not regenerate the slug; it must stay stable.
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) DeactivateCategory(ctx context.Context, slug string) error {
	c, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	c.IsActive = false
	return s.categories.Update(ctx, c)
}

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if !ValidSize(req.Size) {
		return nil, fmt.Errorf("%w: unknown size %q", ErrValidation, req.Size)
	}
	if !ValidColor(req.Color) {
		return nil, fmt.Errorf("%w: unknown color %q", ErrValidation, req.Color)
	}
	if req.Cost > 0 && req.Cost > req.Price {
		return nil, fmt.Errorf("%w: cost cannot exceed the sale price", ErrValidation)
	}

	category, err := s.categories.GetBySlug(ctx, req.CategorySlug)
	if err != nil {
		return nil, err
	}

	sku := req.SKU
	if sku == "" {
		sku = GenerateSKU(category.Name, req.Size, req.Color)
	}

	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}
	minStock := 5
	if req.MinStock != nil {
		minStock = *req.MinStock
	}

	p := &Product{
		ID:           uuid.New(),
		SKU:          sku,
		Name:         req.Name,
		Description:  req.Description,
		CategoryID:   category.ID,
		CategoryName: category.Name,
		CategorySlug: category.Slug,
		Size:         req.Size,
		Color:        req.Color,
		Price:        req.Price,
		Cost:         req.Cost,
		Stock:        stock,
		MinStock:     minStock,
		IsActive:     true,
		ImageURL:     req.ImageURL,
		Barcode:      req.Barcode,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, sku string) (*Product, error) {
	return s.products.GetBySKU(ctx, sku)
}

func (s *service) ListProducts(ctx context.Context, q ListProductsQuery) ([]*Product, error) {
	if q.Status != "" && !ValidStatus(q.Status) {
		return nil, fmt.Errorf("%w: unknown stock status %q", ErrValidation, q.Status)
	}
	products, err := s.products.List(ctx, q.ProductQuery)
	if err != nil {
		return nil, err
	}
	if q.Status == "" {
		return products, nil
	}
	filtered := products[:0]
	for _, p := range products {
		if p.Status() == q.Status {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *service) UpdateProduct(ctx context.Context, sku string, req UpdateProductRequest) (*Product, error) {
	p, err := s.products.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if req.Size != nil {
		if !ValidSize(*req.Size) {
			return nil, fmt.Errorf("%w: unknown size %q", ErrValidation, *req.Size)
		}
		p.Size = *req.Size
	}
	if req.Color != nil {
		if !ValidColor(*req.Color) {
			return nil, fmt.Errorf("%w: unknown color %q", ErrValidation, *req.Color)
		}
		p.Color = *req.Color
	}
	if req.CategorySlug != nil {
		category, err := s.categories.GetBySlug(ctx, *req.CategorySlug)
		if err != nil {
			return nil, err
		}
		p.CategoryID = category.ID
		p.CategoryName = category.Name
		p.CategorySlug = category.Slug
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Cost != nil {
		p.Cost = *req.Cost
	}
	if req.MinStock != nil {
		p.MinStock = *req.MinStock
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.Barcode != nil {
		p.Barcode = *req.Barcode
	}
	if p.Cost > 0 && p.Cost > p.Price {
		return nil, fmt.Errorf("%w: cost cannot exceed the sale price", ErrValidation)
	}
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeactivateProduct(ctx context.Context, sku string) error {
	p, err := s.products.GetBySKU(ctx, sku)
	if err != nil {
		return err
	}
	p.IsActive = false
	return s.products.Update(ctx, p)
}

func (s *service) BulkUpdateProducts(ctx context.Context, req BulkUpdateRequest) (int64, error) {
	if len(req.SKUs) == 0 {
		return 0, fmt.Errorf("%w: skus list is empty", ErrValidation)
	}
	if len(req.Updates) == 0 {
		return 0, fmt.Errorf("%w: updates map is empty", ErrValidation)
	}
	for field, value := range req.Updates {
		if !bulkUpdatableFields[field] {
			return 0, fmt.Errorf("%w: field %q is not bulk-updatable", ErrValidation, field)
		}
		if field == "price" || field == "min_stock" {
			n, ok := value.(float64) // JSON numbers decode as float64
			if !ok || n < 0 {
				return 0, fmt.Errorf("%w: field %q must be a non-negative number", ErrValidation, field)
			}
			if field == "min_stock" && n != float64(int(n)) {
				return 0, fmt.Errorf("%w: field %q must be an integer", ErrValidation, field)
			}
		}
		if field == "is_active" {
			if _, ok := value.(bool); !ok {
				return 0, fmt.Errorf("%w: field %q must be a boolean", ErrValidation, field)
			}
		}
	}
	updated, err := s.products.BulkUpdate(ctx, req.SKUs, req.Updates)
	if err != nil {
		return 0, err
	}
	if updated == 0 {
		return 0, fmt.Errorf("%w: no matching products", ErrNotFound)
	}
	return updated, nil
}
