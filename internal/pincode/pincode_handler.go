package pincode

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

// Check resolves a pincode to its district and serviceability.
// GET /api/pincodes/check/:pincode
func (h *Handler) Check(ctx *gin.Context) {
	res, err := h.service.Check(ctx, ctx.Param("pincode"))
	if err != nil {
		fail(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, res)
}

// CheckDeliverability partitions the submitted products by deliverability
// to the pincode's district.
// POST /api/pincodes/check-deliverability
func (h *Handler) CheckDeliverability(ctx *gin.Context) {
	var req CheckDeliverabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err.Error())
		return
	}

	res, err := h.service.CheckDeliverability(ctx, req)
	if err != nil {
		fail(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, res)
}

// Upsert creates or updates a pincode row.
// POST /api/admin/pincodes
func (h *Handler) Upsert(ctx *gin.Context) {
	var req UpsertPincodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err.Error())
		return
	}

	if err := h.service.Upsert(ctx, req); err != nil {
		fail(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, nil)
}

type zoneRequest struct {
	District string `json:"district" binding:"required"`
}

// AddZone marks a product deliverable to a district.
// POST /api/admin/products/:productId/zones
func (h *Handler) AddZone(ctx *gin.Context) {
	var req zoneRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err.Error())
		return
	}

	if err := h.service.AddZone(ctx, ctx.Param("productId"), req.District); err != nil {
		fail(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, nil)
}

// RemoveZone removes a product's district zone.
// DELETE /api/admin/products/:productId/zones/:district
func (h *Handler) RemoveZone(ctx *gin.Context) {
	if err := h.service.RemoveZone(ctx, ctx.Param("productId"), ctx.Param("district")); err != nil {
		fail(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, nil)
}
