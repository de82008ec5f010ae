package cart

import (
	"context"
	"database/sql"
	"time"

	"go-grocer-api/internal/shared/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Cart struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
}

type CartItem struct {
	ID         uuid.UUID
	CartID     uuid.UUID
	ProductID  uuid.UUID
	Quantity   int32
	PriceAtAdd decimal.Decimal
	CreatedAt  time.Time
}

// CartLineRow is a cart item joined with its product, everything the cart
// page shows for one line.
type CartLineRow struct {
	ID           uuid.UUID
	CartID       uuid.UUID
	CartUserID   uuid.UUID
	ProductID    uuid.UUID
	ProductTitle string
	Image        sql.NullString
	Price        decimal.Decimal
	Quantity     int32
	CountInStock int32
	Weight       sql.NullString
	CreatedAt    time.Time
}

type AddItemParams struct {
	CartID     uuid.UUID
	ProductID  uuid.UUID
	Quantity   int32
	PriceAtAdd decimal.Decimal
}

//go:generate mockgen -source=cart_repo.go -destination=../mock/cart/cart_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx database.DBTX) Repository

	CreateCart(ctx context.Context, userID uuid.UUID) (Cart, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (Cart, error)

	Count(ctx context.Context, cartID uuid.UUID) (int64, error)
	GetDetail(ctx context.Context, userID uuid.UUID) ([]CartLineRow, error)
	GetLine(ctx context.Context, lineID uuid.UUID) (CartLineRow, error)
	GetItemByCartAndProduct(ctx context.Context, cartID, productID uuid.UUID) (CartItem, error)

	AddItem(ctx context.Context, arg AddItemParams) (CartItem, error)
	UpdateQty(ctx context.Context, lineID uuid.UUID, quantity int32) (CartItem, error)

	DeleteLine(ctx context.Context, lineID uuid.UUID) error
	DeleteAllItems(ctx context.Context, cartID uuid.UUID) error
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

// CreateCart is an upsert on the user's unique cart row, so two racing
// first-adds resolve to the same cart.
func (r *repository) CreateCart(ctx context.Context, userID uuid.UUID) (Cart, error) {
	var c Cart
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO carts (id, user_id) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		 RETURNING id, user_id, created_at`,
		uuid.New(), userID,
	).Scan(&c.ID, &c.UserID, &c.CreatedAt)
	return c, err
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) (Cart, error) {
	var c Cart
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at FROM carts WHERE user_id = $1`,
		userID,
	).Scan(&c.ID, &c.UserID, &c.CreatedAt)
	return c, err
}

func (r *repository) Count(ctx context.Context, cartID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cart_items WHERE cart_id = $1`,
		cartID,
	).Scan(&count)
	return count, err
}

const cartLineColumns = `
	ci.id, ci.cart_id, c.user_id, ci.product_id,
	p.title, p.image, ci.price_at_add, ci.quantity,
	p.count_in_stock, p.weight, ci.created_at`

func scanCartLine(scan func(...interface{}) error) (CartLineRow, error) {
	var row CartLineRow
	err := scan(
		&row.ID,
		&row.CartID,
		&row.CartUserID,
		&row.ProductID,
		&row.ProductTitle,
		&row.Image,
		&row.Price,
		&row.Quantity,
		&row.CountInStock,
		&row.Weight,
		&row.CreatedAt,
	)
	return row, err
}

func (r *repository) GetDetail(ctx context.Context, userID uuid.UUID) ([]CartLineRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+cartLineColumns+`
		 FROM cart_items ci
		 JOIN carts c ON c.id = ci.cart_id
		 JOIN products p ON p.id = ci.product_id
		 WHERE c.user_id = $1
		 ORDER BY ci.created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []CartLineRow
	for rows.Next() {
		line, err := scanCartLine(rows.Scan)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *repository) GetLine(ctx context.Context, lineID uuid.UUID) (CartLineRow, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+cartLineColumns+`
		 FROM cart_items ci
		 JOIN carts c ON c.id = ci.cart_id
		 JOIN products p ON p.id = ci.product_id
		 WHERE ci.id = $1`,
		lineID,
	)
	return scanCartLine(row.Scan)
}

func (r *repository) GetItemByCartAndProduct(ctx context.Context, cartID, productID uuid.UUID) (CartItem, error) {
	var item CartItem
	err := r.db.QueryRowContext(ctx,
		`SELECT id, cart_id, product_id, quantity, price_at_add, created_at
		 FROM cart_items
		 WHERE cart_id = $1 AND product_id = $2`,
		cartID, productID,
	).Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.PriceAtAdd, &item.CreatedAt)
	return item, err
}

func (r *repository) AddItem(ctx context.Context, arg AddItemParams) (CartItem, error) {
	var item CartItem
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO cart_items (id, cart_id, product_id, quantity, price_at_add)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, cart_id, product_id, quantity, price_at_add, created_at`,
		uuid.New(), arg.CartID, arg.ProductID, arg.Quantity, arg.PriceAtAdd,
	).Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.PriceAtAdd, &item.CreatedAt)
	return item, err
}

func (r *repository) UpdateQty(ctx context.Context, lineID uuid.UUID, quantity int32) (CartItem, error) {
	var item CartItem
	err := r.db.QueryRowContext(ctx,
		`UPDATE cart_items SET quantity = $2
		 WHERE id = $1
		 RETURNING id, cart_id, product_id, quantity, price_at_add, created_at`,
		lineID, quantity,
	).Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.PriceAtAdd, &item.CreatedAt)
	return item, err
}

func (r *repository) DeleteLine(ctx context.Context, lineID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE id = $1`,
		lineID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repository) DeleteAllItems(ctx context.Context, cartID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1`,
		cartID,
	)
	return err
}
