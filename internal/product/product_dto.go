package product

import (
	"go-grocer-api/internal/shared/database/helper"

	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Image        *string         `json:"image,omitempty"`
	Price        decimal.Decimal `json:"price"`
	CountInStock int32           `json:"countInStock"`
	Weight       *string         `json:"weight,omitempty"`
}

func ToResponse(p Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID.String(),
		Title:        p.Title,
		Image:        helper.NullToStringPtr(p.Image),
		Price:        p.Price,
		CountInStock: p.CountInStock,
		Weight:       helper.NullToStringPtr(p.Weight),
	}
}
