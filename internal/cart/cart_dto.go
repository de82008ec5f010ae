package cart

import (
	"go-grocer-api/internal/shared/database/helper"

	"github.com/shopspring/decimal"
)

// ==================== REQUEST STRUCTS ====================

type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int32  `json:"quantity"`
}

type UpdateQtyRequest struct {
	Quantity int32 `json:"quantity" validate:"required"`
}

// ==================== RESPONSE STRUCTS ====================

type CartLineResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	ProductTitle string          `json:"productTitle"`
	Image        *string         `json:"image,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int32           `json:"quantity"`
	CountInStock int32           `json:"countInStock"`
	Weight       *string         `json:"weight,omitempty"`
	SubTotal     decimal.Decimal `json:"subTotal"`
}

type CartDetailResponse struct {
	Items      []CartLineResponse `json:"items"`
	GrandTotal decimal.Decimal    `json:"grandTotal"`
}

type UpdateQtyResponse struct {
	Line    CartLineResponse `json:"line"`
	Clamped bool             `json:"clamped"`
	Warning string           `json:"warning,omitempty"`
}

type CartCountResponse struct {
	Count int64 `json:"count"`
}

// toLineResponse coerces the stored quantity and recomputes the subtotal;
// price × quantity on the way out is the source of truth, never a stored
// subtotal column.
func toLineResponse(row CartLineRow) CartLineResponse {
	qty := row.Quantity
	if qty < 1 {
		qty = 1
	}
	return CartLineResponse{
		ID:           row.ID.String(),
		ProductID:    row.ProductID.String(),
		ProductTitle: row.ProductTitle,
		Image:        helper.NullToStringPtr(row.Image),
		Price:        row.Price,
		Quantity:     qty,
		CountInStock: row.CountInStock,
		Weight:       helper.NullToStringPtr(row.Weight),
		SubTotal:     row.Price.Mul(decimal.NewFromInt32(qty)),
	}
}
