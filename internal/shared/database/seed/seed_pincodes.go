package seed

import (
	"context"
	"database/sql"
	"log"
)

// SeedPincodes loads a handful of serviceable Kerala pincodes plus one
// deliberately unserviceable code for testing the rejection path.
func SeedPincodes(db *sql.DB) error {
	ctx := context.Background()

	pincodes := []struct {
		Code        string
		District    string
		Serviceable bool
	}{
		{"682001", "Ernakulam", true},
		{"682016", "Ernakulam", true},
		{"695001", "Thiruvananthapuram", true},
		{"673001", "Kozhikode", true},
		{"680001", "Thrissur", true},
		{"670001", "Kannur", false},
	}

	for _, p := range pincodes {
		_, err := db.ExecContext(ctx, `
			INSERT INTO pincodes (pincode, district, serviceable)
			VALUES ($1, $2, $3)
			ON CONFLICT (pincode) DO UPDATE
			SET district = EXCLUDED.district, serviceable = EXCLUDED.serviceable`,
			p.Code, p.District, p.Serviceable,
		)
		if err != nil {
			log.Println("skip seed pincode:", p.Code, err)
			continue
		}
	}

	// Perishables only ship inside Ernakulam.
	perishables := []string{"Fresh Milk 500ml", "Curd 400g", "Banana (Dozen)"}
	for _, title := range perishables {
		_, err := db.ExecContext(ctx, `
			INSERT INTO product_delivery_zones (product_id, district)
			SELECT id, 'Ernakulam' FROM products WHERE title = $1
			ON CONFLICT DO NOTHING`,
			title,
		)
		if err != nil {
			log.Println("skip seed delivery zone:", title, err)
			continue
		}
	}

	return nil
}
