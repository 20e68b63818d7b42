package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Seed loads a minimal demo dataset: one admin user, two categories and a
// handful of products. Existing rows are left alone so it is safe to run
// repeatedly.
func Seed(ctx context.Context, db *sql.DB, adminEmail, adminPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, role)
		VALUES ($1, $2, $3, 'Admin', '', 'admin')
		ON CONFLICT (email) DO NOTHING`,
		uuid.New(), adminEmail, string(hash))
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	categories := []struct {
		name, slug, description string
	}{
		{"Camisetas", "camisetas", "Camisetas para niños y niñas"},
		{"Pantalones", "pantalones", "Pantalones y shorts infantiles"},
		{"Vestidos", "vestidos", "Vestidos para niñas"},
	}
	for _, c := range categories {
		_, err := db.ExecContext(ctx, `
			INSERT INTO categories (id, name, description, slug)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO NOTHING`,
			uuid.New(), c.name, c.description, c.slug)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", c.name, err)
		}
	}

	products := []struct {
		sku, name, categorySlug, size, color string
		price, cost                          float64
		stock, minStock                      int
	}{
		{"CAM-3T-RED-DEMO0001", "Camiseta Roja", "camisetas", "3T", "RED", 150, 90, 20, 5},
		{"CAM-6T-BLU-DEMO0002", "Camiseta Azul", "camisetas", "6T", "BLUE", 150, 90, 3, 5},
		{"PAN-4T-NAV-DEMO0003", "Pantalón Marino", "pantalones", "4T", "NAVY", 280, 170, 0, 4},
		{"VES-2T-PIN-DEMO0004", "Vestido Rosa", "vestidos", "2T", "PINK", 350, 200, 12, 3},
	}
	for _, p := range products {
		// Resolve the category explicitly: an INSERT...SELECT over a missing
		// slug inserts zero rows without erroring, and RowsAffected cannot
		// tell that apart from an idempotent rerun hitting ON CONFLICT.
		var categoryID uuid.UUID
		err := db.QueryRowContext(ctx,
			`SELECT id FROM categories WHERE slug = $1`, p.categorySlug).Scan(&categoryID)
		if err != nil {
			return fmt.Errorf("seed product %q: resolve category %q: %w", p.sku, p.categorySlug, err)
		}
		_, err = db.ExecContext(ctx, `
			INSERT INTO products (id, sku, name, category_id, size, color, price, cost, stock, min_stock)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (sku) DO NOTHING`,
			uuid.New(), p.sku, p.name, categoryID, p.size, p.color, p.price, p.cost, p.stock, p.minStock)
		if err != nil {
			return fmt.Errorf("seed product %q: %w", p.sku, err)
		}
	}
	return nil
}
