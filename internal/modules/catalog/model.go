package catalog

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a category or product does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned on unique constraint violations (sku, name, slug).
	ErrDuplicate = errors.New("duplicate value")
	// ErrValidation wraps domain validation failures.
	ErrValidation = errors.New("validation failed")
)

// Category groups products. Categories are soft-deactivated, never hard
// deleted, so products keep a valid reference.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Slug        string    `json:"slug"`
	IsActive    bool      `json:"is_active"`
	// ActiveProducts is filled on detail reads only; a pointer so list
	// reads omit it while a genuine zero count still serializes.
	ActiveProducts *int      `json:"active_products_count,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Product is a single clothing variant identified by its SKU.
type Product struct {
	ID           uuid.UUID `json:"id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName string    `json:"category,omitempty"`
	CategorySlug string    `json:"category_slug,omitempty"`
	Size         string    `json:"size"`
	Color        string    `json:"color"`
	Price        float64   `json:"price"`
	Cost         float64   `json:"cost,omitempty"`
	Stock        int       `json:"stock"`
	MinStock     int       `json:"min_stock"`
	IsActive     bool      `json:"is_active"`
	ImageURL     string    `json:"image_url,omitempty"`
	Barcode      string    `json:"barcode,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StockStatus is the derived stock classification. It is computed from
// (stock, min_stock) on every read and never persisted.
type StockStatus string

const (
	StatusInStock    StockStatus = "IN_STOCK"
	StatusLowStock   StockStatus = "LOW_STOCK"
	StatusOutOfStock StockStatus = "OUT_OF_STOCK"
)

// ValidStatus reports whether s is a known stock status.
func ValidStatus(s StockStatus) bool {
	switch s {
	case StatusInStock, StatusLowStock, StatusOutOfStock:
		return true
	}
	return false
}

// Classify derives the stock status tier: OUT_OF_STOCK when stock == 0,
// LOW_STOCK when 0 < stock <= minStock, IN_STOCK otherwise.
func Classify(stock, minStock int) StockStatus {
	switch {
	case stock == 0:
		return StatusOutOfStock
	case stock <= minStock:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// Status returns the product's current stock classification.
func (p *Product) Status() StockStatus {
	return Classify(p.Stock, p.MinStock)
}

// ProfitMargin returns the margin percentage over cost, or nil when the
// cost is unknown.
func (p *Product) ProfitMargin() *float64 {
	if p.Cost <= 0 {
		return nil
	}
	m := (p.Price - p.Cost) / p.Cost * 100
	return &m
}

// MarshalJSON adds the derived fields to every serialized product, so the
// classification is always recomputed and never read from storage.
func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	return json.Marshal(struct {
		alias
		SizeDisplay  string      `json:"size_display,omitempty"`
		ColorDisplay string      `json:"color_display,omitempty"`
		StockStatus  StockStatus `json:"stock_status"`
		IsLowStock   bool        `json:"is_low_stock"`
		IsOutOfStock bool        `json:"is_out_of_stock"`
		ProfitMargin *float64    `json:"profit_margin,omitempty"`
	}{
		alias:        alias(p),
		SizeDisplay:  Sizes[p.Size],
		ColorDisplay: Colors[p.Color],
		StockStatus:  p.Status(),
		IsLowStock:   p.Stock > 0 && p.Stock <= p.MinStock,
		IsOutOfStock: p.Stock == 0,
		ProfitMargin: p.ProfitMargin(),
	})
}

// Sizes maps the accepted size tokens to their display names.
var Sizes = map[string]string{
	"0-3m": "0-3 meses", "3-6m": "3-6 meses", "6-9m": "6-9 meses",
	"9-12m": "9-12 meses", "12-18m": "12-18 meses", "18-24m": "18-24 meses",
	"2T": "2 años", "3T": "3 años", "4T": "4 años", "5T": "5 años",
	"6T": "6 años", "7T": "7 años", "8T": "8 años",
	"XS": "Extra Pequeño", "S": "Pequeño", "M": "Mediano",
	"L": "Grande", "XL": "Extra Grande",
}

// Colors maps the accepted color tokens to their display names.
var Colors = map[string]string{
	"RED": "Rojo", "BLUE": "Azul", "GREEN": "Verde", "YELLOW": "Amarillo",
	"PINK": "Rosa", "PURPLE": "Morado", "ORANGE": "Naranja", "BLACK": "Negro",
	"WHITE": "Blanco", "GRAY": "Gris", "BROWN": "Café", "NAVY": "Azul Marino",
	"BEIGE": "Beige", "TURQUOISE": "Turquesa", "CORAL": "Coral",
	"MINT": "Menta", "MULTICOLOR": "Multicolor",
}

// ValidSize reports whether size is one of the accepted tokens.
func ValidSize(size string) bool {
	_, ok := Sizes[size]
	return ok
}

// ValidColor reports whether color is one of the accepted tokens.
func ValidColor(color string) bool {
	_, ok := Colors[color]
	return ok
}

var accentFold = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u", "Ñ", "n",
)

// Slugify turns a name into a URL-safe slug: lowercase, accents folded,
// non-alphanumeric runs collapsed into single hyphens.
func Slugify(name string) string {
	s := strings.ToLower(accentFold.Replace(strings.TrimSpace(name)))
	var b strings.Builder
	lastHyphen := true // swallow leading separators
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// GenerateSKU builds a SKU from the category, size and color plus a random
// suffix, e.g. "CAM-3-RED-9F2A41BC".
func GenerateSKU(categoryName, size, color string) string {
	categoryCode := "GEN"
	if categoryName != "" {
		categoryCode = strings.ToUpper(prefix(accentFold.Replace(categoryName), 3))
	}
	sizeCode := strings.NewReplacer("-", "", "T", "").Replace(size)
	colorCode := prefix(color, 3)
	suffix := strings.ToUpper(prefix(uuid.NewString(), 8))
	return categoryCode + "-" + sizeCode + "-" + colorCode + "-" + suffix
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) < n {
		return string(r)
	}
	return string(r[:n])
}
