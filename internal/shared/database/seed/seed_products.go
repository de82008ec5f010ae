package seed

import (
	"context"
	"database/sql"
	"log"

	"github.com/shopspring/decimal"
)

// SeedProducts loads a small grocery catalog for local development.
// Re-running is safe: existing titles are skipped.
func SeedProducts(db *sql.DB) error {
	ctx := context.Background()

	products := []struct {
		Title    string
		Price    decimal.Decimal
		Stock    int32
		Weight   string
		AllIndia bool
	}{
		{"Basmati Rice 1kg", decimal.NewFromInt(120), 50, "1kg", true},
		{"Toor Dal 500g", decimal.NewFromInt(85), 40, "500g", true},
		{"Sunflower Oil 1L", decimal.NewFromInt(145), 30, "1L", true},
		{"Fresh Milk 500ml", decimal.NewFromInt(30), 60, "500ml", false},
		{"Curd 400g", decimal.NewFromInt(45), 35, "400g", false},
		{"Banana (Dozen)", decimal.NewFromInt(55), 25, "1.2kg", false},
		{"Whole Wheat Atta 5kg", decimal.NewFromInt(240), 20, "5kg", true},
		{"Tea Powder 250g", decimal.NewFromInt(160), 45, "250g", true},
	}

	for _, p := range products {
		_, err := db.ExecContext(ctx, `
			INSERT INTO products (id, title, price, count_in_stock, weight, all_india)
			VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
			ON CONFLICT (title) DO NOTHING`,
			p.Title, p.Price, p.Stock, p.Weight, p.AllIndia,
		)
		if err != nil {
			log.Println("skip seed product:", p.Title, err)
			continue
		}
	}

	return nil
}
