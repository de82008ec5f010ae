package product_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	mockproduct "go-grocer-api/internal/mock/product"
	"go-grocer-api/internal/product"
	producterrors "go-grocer-api/internal/product/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (product.Service, *mockproduct.MockRepository, func()) {
	ctrl := gomock.NewController(t)
	repo := mockproduct.NewMockRepository(ctrl)
	return product.NewService(repo), repo, ctrl.Finish
}

func TestProductService_Get(t *testing.T) {
	svc, repo, done := newService(t)
	defer done()
	ctx := context.Background()

	t.Run("rejects_malformed_id", func(t *testing.T) {
		_, err := svc.Get(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, producterrors.ErrInvalidProductID)
	})

	t.Run("maps_missing_row_to_not_found", func(t *testing.T) {
		pid := uuid.New()
		repo.EXPECT().GetByID(ctx, pid).Return(product.Product{}, sql.ErrNoRows)

		_, err := svc.Get(ctx, pid.String())
		assert.ErrorIs(t, err, producterrors.ErrProductNotFound)
	})

	t.Run("returns_product", func(t *testing.T) {
		pid := uuid.New()
		repo.EXPECT().GetByID(ctx, pid).Return(product.Product{
			ID:    pid,
			Title: "Basmati Rice 1kg",
			Price: decimal.NewFromInt(120),
		}, nil)

		p, err := svc.Get(ctx, pid.String())
		assert.NoError(t, err)
		assert.Equal(t, "Basmati Rice 1kg", p.Title)
	})
}

func TestProductService_List(t *testing.T) {
	svc, repo, done := newService(t)
	defer done()
	ctx := context.Background()

	t.Run("offsets_by_page", func(t *testing.T) {
		repo.EXPECT().CountByTitle(ctx, "rice").Return(int64(23), nil)
		repo.EXPECT().
			SearchByTitle(ctx, "rice", int32(10), int32(20)).
			Return([]product.Product{{ID: uuid.New(), Title: "Matta Rice 1kg"}}, nil)

		products, total, err := svc.List(ctx, "rice", 3, 10)
		assert.NoError(t, err)
		assert.Equal(t, int64(23), total)
		assert.Len(t, products, 1)
	})

	t.Run("defaults_page_and_size", func(t *testing.T) {
		repo.EXPECT().CountByTitle(ctx, "").Return(int64(0), nil)
		repo.EXPECT().
			SearchByTitle(ctx, "", int32(20), int32(0)).
			Return(nil, nil)

		_, _, err := svc.List(ctx, "", 0, 0)
		assert.NoError(t, err)
	})

	t.Run("caps_oversized_page_size", func(t *testing.T) {
		repo.EXPECT().CountByTitle(ctx, "").Return(int64(5), nil)
		repo.EXPECT().
			SearchByTitle(ctx, "", int32(20), int32(0)).
			Return(nil, nil)

		_, _, err := svc.List(ctx, "", 1, 500)
		assert.NoError(t, err)
	})

	t.Run("propagates_count_failure", func(t *testing.T) {
		repo.EXPECT().CountByTitle(ctx, "rice").Return(int64(0), errors.New("db down"))

		_, _, err := svc.List(ctx, "rice", 1, 20)
		assert.Error(t, err)
	})
}

func TestProductService_Search(t *testing.T) {
	svc, repo, done := newService(t)
	defer done()
	ctx := context.Background()

	t.Run("clamps_limit", func(t *testing.T) {
		repo.EXPECT().
			SearchByTitle(ctx, "milk", int32(20), int32(0)).
			Return(nil, nil)

		_, err := svc.Search(ctx, "milk", -3)
		assert.NoError(t, err)
	})

	t.Run("passes_limit_through", func(t *testing.T) {
		repo.EXPECT().
			SearchByTitle(ctx, "milk", int32(5), int32(0)).
			Return([]product.Product{{Title: "Milk 500ml"}}, nil)

		products, err := svc.Search(ctx, "milk", 5)
		assert.NoError(t, err)
		assert.Len(t, products, 1)
	})
}
