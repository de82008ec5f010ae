package order

import (
	"net/http"

	"go-grocer-api/internal/pkg/apperror"
	"go-grocer-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(s Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: s, logger: logger.Named("order.handler")}
}

func fail(ctx *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(ctx, httpErr.Status, httpErr.Code, httpErr.Message, nil)
}

// Checkout converts the caller's cart into an order. Replay protection
// lives in the idempotency middleware on this route.
// POST /api/orders/create
func (h *Handler) Checkout(ctx *gin.Context) {
	userID := ctx.GetString("user_id_validated")

	var req CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err.Error())
		return
	}

	res, err := h.service.Create(ctx, userID, req)
	if err != nil {
		fail(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, res)
}

// List returns the caller's order history, newest first.
// GET /api/orders
func (h *Handler) List(ctx *gin.Context) {
	userID := ctx.GetString("user_id_validated")

	orders, err := h.service.List(ctx, userID)
	if err != nil {
		fail(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, orders)
}

// Detail returns one order with its line items.
// GET /api/orders/:id
func (h *Handler) Detail(ctx *gin.Context) {
	userID := ctx.GetString("user_id_validated")

	res, err := h.service.Detail(ctx, userID, ctx.Param("id"))
	if err != nil {
		fail(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, res)
}
