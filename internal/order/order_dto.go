package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// ==================== REQUEST STRUCTS ====================

type ShippingAddress struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Line1   string `json:"line1" validate:"required"`
	Line2   string `json:"line2"`
	City    string `json:"city" validate:"required"`
	Pincode string `json:"pincode" validate:"required"`
}

type CreateOrderRequest struct {
	Address   ShippingAddress `json:"address" validate:"required"`
	PaymentID string          `json:"paymentId" validate:"required"`
	Note      string          `json:"note"`
}

// ==================== RESPONSE STRUCTS ====================

type OrderItemResponse struct {
	ProductID  string          `json:"productId"`
	Title      string          `json:"title"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Quantity   int32           `json:"quantity"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	OrderNumber   string              `json:"orderNumber"`
	Status        string              `json:"status"`
	SubtotalPrice decimal.Decimal     `json:"subtotalPrice"`
	ShippingPrice decimal.Decimal     `json:"shippingPrice"`
	TotalPrice    decimal.Decimal     `json:"totalPrice"`
	PlacedAt      time.Time           `json:"placedAt"`
	Items         []OrderItemResponse `json:"items,omitempty"`
}

// ==================== EVENT PAYLOADS ====================

// OrderCreatedPayload rides the outbox into Kafka; the consumer clears the
// user's cart and sends the confirmation email.
type OrderCreatedPayload struct {
	OrderID       string          `json:"orderId"`
	OrderNumber   string          `json:"orderNumber"`
	UserID        string          `json:"userId"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
}
