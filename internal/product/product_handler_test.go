package product_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-grocer-api/internal/pkg/response"
	"go-grocer-api/internal/product"
	producterrors "go-grocer-api/internal/product/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeProductService struct {
	GetFn    func(ctx context.Context, productID string) (product.Product, error)
	SearchFn func(ctx context.Context, term string, limit int32) ([]product.Product, error)
	ListFn   func(ctx context.Context, term string, page, pageSize int32) ([]product.Product, int64, error)
}

func (f *fakeProductService) Get(ctx context.Context, productID string) (product.Product, error) {
	return f.GetFn(ctx, productID)
}
func (f *fakeProductService) Search(ctx context.Context, term string, limit int32) ([]product.Product, error) {
	return f.SearchFn(ctx, term, limit)
}
func (f *fakeProductService) List(ctx context.Context, term string, page, pageSize int32) ([]product.Product, int64, error) {
	return f.ListFn(ctx, term, page, pageSize)
}

func performRequest(handler gin.HandlerFunc, target string, params ...gin.Param) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Params = params

	handler(c)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.APIResponse {
	var env response.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestProductHandler_Search(t *testing.T) {
	t.Run("returns_page_with_pagination", func(t *testing.T) {
		svc := &fakeProductService{
			ListFn: func(ctx context.Context, term string, page, pageSize int32) ([]product.Product, int64, error) {
				assert.Equal(t, "rice", term)
				assert.Equal(t, int32(2), page)
				assert.Equal(t, int32(10), pageSize)
				return []product.Product{
					{ID: uuid.New(), Title: "Basmati Rice 1kg", Price: decimal.NewFromInt(120)},
				}, 23, nil
			},
		}
		h := product.NewHandler(svc)

		w := performRequest(h.Search, "/api/products?search=rice&page=2&limit=10")

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Success)
		if assert.NotNil(t, env.Pagination) {
			assert.Equal(t, 2, env.Pagination.Page)
			assert.Equal(t, 10, env.Pagination.PageSize)
			assert.Equal(t, int64(23), env.Pagination.TotalItems)
			assert.Equal(t, 3, env.Pagination.TotalPages)
			assert.True(t, env.Pagination.HasNextPage)
			assert.True(t, env.Pagination.HasPreviousPage)
		}
	})

	t.Run("defaults_missing_query_params", func(t *testing.T) {
		svc := &fakeProductService{
			ListFn: func(ctx context.Context, term string, page, pageSize int32) ([]product.Product, int64, error) {
				assert.Equal(t, int32(1), page)
				assert.Equal(t, int32(20), pageSize)
				return nil, 0, nil
			},
		}
		h := product.NewHandler(svc)

		w := performRequest(h.Search, "/api/products")

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		if assert.NotNil(t, env.Pagination) {
			assert.Equal(t, 0, env.Pagination.TotalPages)
			assert.False(t, env.Pagination.HasNextPage)
			assert.False(t, env.Pagination.HasPreviousPage)
		}
	})
}

func TestProductHandler_Detail(t *testing.T) {
	t.Run("returns_404_for_unknown_product", func(t *testing.T) {
		svc := &fakeProductService{
			GetFn: func(ctx context.Context, productID string) (product.Product, error) {
				return product.Product{}, producterrors.ErrProductNotFound
			},
		}
		h := product.NewHandler(svc)

		w := performRequest(h.Detail, "/api/products/"+uuid.New().String(),
			gin.Param{Key: "id", Value: uuid.New().String()})

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w)
		assert.False(t, env.Success)
	})

	t.Run("returns_product", func(t *testing.T) {
		pid := uuid.New()
		svc := &fakeProductService{
			GetFn: func(ctx context.Context, productID string) (product.Product, error) {
				assert.Equal(t, pid.String(), productID)
				return product.Product{ID: pid, Title: "Milk 500ml", Price: decimal.NewFromInt(30)}, nil
			},
		}
		h := product.NewHandler(svc)

		w := performRequest(h.Detail, "/api/products/"+pid.String(),
			gin.Param{Key: "id", Value: pid.String()})

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Success)
	})
}
