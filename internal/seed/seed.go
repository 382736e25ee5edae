package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Name        string
	Description string
	Price       string
	Category    string
}

// Apply inserts demo data for manual testing. Categories, areas and settings
// are idempotent via ON CONFLICT; products are only inserted into an empty
// catalog.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categories := []string{"Dates", "Spices", "Sweets"}
	categoryIDs := make(map[string]int64, len(categories))
	for _, name := range categories {
		var id int64
		if err := pool.QueryRow(ctx, `
INSERT INTO categories (name)
VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id
`, name).Scan(&id); err != nil {
			return fmt.Errorf("ensure category %s: %w", name, err)
		}
		categoryIDs[name] = id
	}

	areas := map[string]string{
		"Manama":   "1.500",
		"Muharraq": "1.500",
		"Riffa":    "2.000",
		"Sitra":    "2.500",
	}
	for name, price := range areas {
		if _, err := pool.Exec(ctx, `
INSERT INTO delivery_areas (name, price)
VALUES ($1, $2::numeric)
ON CONFLICT (name) DO UPDATE SET price = EXCLUDED.price
`, name, price); err != nil {
			return fmt.Errorf("ensure area %s: %w", name, err)
		}
	}

	if _, err := pool.Exec(ctx, `
INSERT INTO system_settings (key, value)
VALUES ('free_delivery_threshold', '20')
ON CONFLICT (key) DO NOTHING
`); err != nil {
		return fmt.Errorf("ensure settings: %w", err)
	}

	var productCount int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&productCount); err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if productCount > 0 {
		return nil
	}

	products := []productSeed{
		{Name: "Khalas dates box", Description: "1kg of premium Khalas dates", Price: "10.500", Category: "Dates"},
		{Name: "Medjool dates box", Description: "500g of Medjool dates", Price: "8.000", Category: "Dates"},
		{Name: "Saffron threads", Description: "2g jar of grade-1 saffron", Price: "25.000", Category: "Spices"},
		{Name: "Halwa Bahraini", Description: "Traditional halwa with nuts", Price: "4.500", Category: "Sweets"},
	}
	for _, p := range products {
		if _, err := pool.Exec(ctx, `
INSERT INTO products (name, description, price, category_id)
VALUES ($1, $2, $3::numeric, $4)
`, p.Name, p.Description, p.Price, categoryIDs[p.Category]); err != nil {
			return fmt.Errorf("insert product %s: %w", p.Name, err)
		}
	}
	return nil
}
