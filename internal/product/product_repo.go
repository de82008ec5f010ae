package product

import (
	"context"
	"database/sql"
	"time"

	"go-grocer-api/internal/shared/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID           uuid.UUID
	Title        string
	Image        sql.NullString
	Price        decimal.Decimal
	CountInStock int32
	Weight       sql.NullString
	AllIndia     bool
	CreatedAt    time.Time
}

//go:generate mockgen -source=product_repo.go -destination=../mock/product/product_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx database.DBTX) Repository

	GetByID(ctx context.Context, id uuid.UUID) (Product, error)
	SearchByTitle(ctx context.Context, term string, limit, offset int32) ([]Product, error)
	CountByTitle(ctx context.Context, term string) (int64, error)
	DecrementStock(ctx context.Context, id uuid.UUID, qty int32) (bool, error)
}

type repository struct {
	db database.DBTX
}

func NewRepository(db database.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx database.DBTX) Repository {
	return &repository{db: tx}
}

const productColumns = `id, title, image, price, count_in_stock, weight, all_india, created_at`

func scanProduct(row *sql.Row) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Image,
		&p.Price,
		&p.CountInStock,
		&p.Weight,
		&p.AllIndia,
		&p.CreatedAt,
	)
	return p, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`,
		id,
	)
	return scanProduct(row)
}

func (r *repository) SearchByTitle(ctx context.Context, term string, limit, offset int32) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+`
		 FROM products
		 WHERE title ILIKE '%' || $1 || '%'
		 ORDER BY title
		 LIMIT $2 OFFSET $3`,
		term, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Image,
			&p.Price,
			&p.CountInStock,
			&p.Weight,
			&p.AllIndia,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *repository) CountByTitle(ctx context.Context, term string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE title ILIKE '%' || $1 || '%'`,
		term,
	).Scan(&count)
	return count, err
}

// DecrementStock only succeeds when enough stock remains; the WHERE clause
// is the stock check, so concurrent checkouts cannot oversell.
func (r *repository) DecrementStock(ctx context.Context, id uuid.UUID, qty int32) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products
		 SET count_in_stock = count_in_stock - $2
		 WHERE id = $1 AND count_in_stock >= $2`,
		id, qty,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
