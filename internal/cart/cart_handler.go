package cart

import (
	"net/http"

	"go-grocer-api/internal/pkg/apperror"
	"go-grocer-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func fail(ctx *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(ctx, httpErr.Status, httpErr.Code, httpErr.Message, nil)
}

// Detail returns the caller's cart lines with recomputed subtotals.
// GET /api/cart
func (c *Handler) Detail(ctx *gin.Context) {
	userID := ctx.GetString("user_id_validated")

	res, err := c.service.Detail(ctx, userID)
	if err != nil {
		fail(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, res)
}

// Count returns the number of lines in the caller's cart.
// GET /api/cart/count
func (c *Handler) Count(ctx *gin.Context) {
	userID := ctx.GetString("user_id_validated")

	count, err := c.service.Count(ctx, userID)
	if err != nil {
		fail(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, CartCountResponse{Count: count})
}

// AddItem adds a product to the caller's cart.
// POST /api/cart
func (c *Handler) AddItem(ctx *gin.Context) {
	userID := ctx.GetString("user_id_validated")

	var req AddItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err.Error())
		return
	}

	line, err := c.service.AddItem(ctx, userID, req)
	if err != nil {
		fail(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, line)
}

// UpdateQty updates one line's quantity, clamped against stock.
// PUT /api/cart/:id
func (c *Handler) UpdateQty(ctx *gin.Context) {
	userID := ctx.GetString("user_id_validated")

	var req UpdateQtyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err.Error())
		return
	}

	res, err := c.service.UpdateQty(ctx, userID, ctx.Param("id"), req)
	if err != nil {
		fail(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, res)
}

// Remove deletes one line from the caller's cart.
// DELETE /api/cart/:id
func (c *Handler) Remove(ctx *gin.Context) {
	userID := ctx.GetString("user_id_validated")

	if err := c.service.RemoveLine(ctx, userID, ctx.Param("id")); err != nil {
		fail(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, nil)
}
