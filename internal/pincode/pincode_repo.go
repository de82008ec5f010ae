package pincode

import (
	"context"

	"go-grocer-api/internal/shared/database"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Pincode struct {
	Pincode     string `json:"pincode"`
	District    string `json:"district"`
	Serviceable bool   `json:"serviceable"`
}

type Repository interface {
	GetPincode(ctx context.Context, code string) (Pincode, error)
	UpsertPincode(ctx context.Context, p Pincode) error

	// DeliverableProducts narrows a set of product ids to those shippable to
	// the district, either flagged all-India or zoned for it.
	DeliverableProducts(ctx context.Context, district string, productIDs []uuid.UUID) (map[uuid.UUID]bool, error)

	AddZone(ctx context.Context, productID uuid.UUID, district string) error
	RemoveZone(ctx context.Context, productID uuid.UUID, district string) error
}

type repository struct {
	db database.DBTX
}

func NewRepository(db database.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) GetPincode(ctx context.Context, code string) (Pincode, error) {
	var p Pincode
	err := r.db.QueryRowContext(ctx,
		`SELECT pincode, district, serviceable FROM pincodes WHERE pincode = $1`,
		code,
	).Scan(&p.Pincode, &p.District, &p.Serviceable)
	return p, err
}

func (r *repository) UpsertPincode(ctx context.Context, p Pincode) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO pincodes (pincode, district, serviceable)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (pincode)
		 DO UPDATE SET district = EXCLUDED.district, serviceable = EXCLUDED.serviceable`,
		p.Pincode, p.District, p.Serviceable,
	)
	return err
}

func (r *repository) DeliverableProducts(ctx context.Context, district string, productIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id
		 FROM products p
		 WHERE p.id = ANY($2)
		   AND (p.all_india OR EXISTS (
			SELECT 1 FROM product_delivery_zones z
			WHERE z.product_id = p.id AND z.district = $1
		 ))`,
		district, pq.Array(productIDs),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliverable := make(map[uuid.UUID]bool, len(productIDs))
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		deliverable[id] = true
	}
	return deliverable, rows.Err()
}

func (r *repository) AddZone(ctx context.Context, productID uuid.UUID, district string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO product_delivery_zones (product_id, district)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		productID, district,
	)
	return err
}

func (r *repository) RemoveZone(ctx context.Context, productID uuid.UUID, district string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM product_delivery_zones WHERE product_id = $1 AND district = $2`,
		productID, district,
	)
	return err
}
