package order

import (
	"context"
	"time"

	"go-grocer-api/internal/shared/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID              uuid.UUID
	OrderNumber     string
	UserID          uuid.UUID
	Status          string
	PaymentID       string
	Pincode         string
	AddressSnapshot []byte
	SubtotalPrice   decimal.Decimal
	ShippingPrice   decimal.Decimal
	TotalPrice      decimal.Decimal
	Note            string
	PlacedAt        time.Time
}

type OrderItem struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	ProductID    uuid.UUID
	NameSnapshot string
	UnitPrice    decimal.Decimal
	Quantity     int32
	TotalPrice   decimal.Decimal
}

type CreateOrderParams struct {
	OrderNumber     string
	UserID          uuid.UUID
	Status          string
	PaymentID       string
	Pincode         string
	AddressSnapshot []byte
	SubtotalPrice   decimal.Decimal
	ShippingPrice   decimal.Decimal
	TotalPrice      decimal.Decimal
	Note            string
}

type CreateOrderItemParams struct {
	OrderID      uuid.UUID
	ProductID    uuid.UUID
	NameSnapshot string
	UnitPrice    decimal.Decimal
	Quantity     int32
	TotalPrice   decimal.Decimal
}

type User struct {
	ID    uuid.UUID
	Name  string
	Email string
}

type Repository interface {
	WithTx(tx database.DBTX) Repository

	CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error)
	CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) error

	GetByID(ctx context.Context, id uuid.UUID) (Order, error)
	GetItems(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
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

const orderColumns = `
	id, order_number, user_id, status, payment_id, pincode,
	address_snapshot, subtotal_price, shipping_price, total_price, note, placed_at`

func (r *repository) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO orders (
			id, order_number, user_id, status, payment_id, pincode,
			address_snapshot, subtotal_price, shipping_price, total_price, note
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+orderColumns,
		uuid.New(), arg.OrderNumber, arg.UserID, arg.Status, arg.PaymentID, arg.Pincode,
		string(arg.AddressSnapshot), arg.SubtotalPrice, arg.ShippingPrice, arg.TotalPrice, arg.Note,
	).Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.Status, &o.PaymentID, &o.Pincode,
		&o.AddressSnapshot, &o.SubtotalPrice, &o.ShippingPrice, &o.TotalPrice, &o.Note, &o.PlacedAt,
	)
	return o, err
}

func (r *repository) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO order_items (id, order_id, product_id, name_snapshot, unit_price, quantity, total_price)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.New(), arg.OrderID, arg.ProductID, arg.NameSnapshot, arg.UnitPrice, arg.Quantity, arg.TotalPrice,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`,
		id,
	).Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.Status, &o.PaymentID, &o.Pincode,
		&o.AddressSnapshot, &o.SubtotalPrice, &o.ShippingPrice, &o.TotalPrice, &o.Note, &o.PlacedAt,
	)
	return o, err
}

func (r *repository) GetItems(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, product_id, name_snapshot, unit_price, quantity, total_price
		 FROM order_items WHERE order_id = $1`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.NameSnapshot, &it.UnitPrice, &it.Quantity, &it.TotalPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY placed_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.UserID, &o.Status, &o.PaymentID, &o.Pincode,
			&o.AddressSnapshot, &o.SubtotalPrice, &o.ShippingPrice, &o.TotalPrice, &o.Note, &o.PlacedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *repository) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Name, &u.Email)
	return u, err
}
