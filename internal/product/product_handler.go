package product

import (
	"net/http"
	"strconv"

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

func queryInt32(ctx *gin.Context, name string) int32 {
	v, _ := strconv.ParseInt(ctx.Query(name), 10, 32)
	return int32(v)
}

// Search returns a page of products matching a title query.
// GET /api/products?search=rice&page=1&limit=20
func (h *Handler) Search(ctx *gin.Context) {
	term := ctx.Query("search")
	page := queryInt32(ctx, "page")
	if page < 1 {
		page = 1
	}
	limit := queryInt32(ctx, "limit")
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	products, total, err := h.service.List(ctx, term, page, limit)
	if err != nil {
		fail(ctx, err)
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	res := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, ToResponse(p))
	}

	response.SuccessWithPagination(ctx, http.StatusOK, res, response.Pagination{
		Page:            int(page),
		PageSize:        int(limit),
		TotalItems:      total,
		TotalPages:      totalPages,
		HasNextPage:     int(page) < totalPages,
		HasPreviousPage: page > 1,
	})
}

// Detail returns one product.
// GET /api/products/:id
func (h *Handler) Detail(ctx *gin.Context) {
	p, err := h.service.Get(ctx, ctx.Param("id"))
	if err != nil {
		fail(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, ToResponse(p))
}
