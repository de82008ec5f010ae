package product

import (
	"context"
	"database/sql"

	producterrors "go-grocer-api/internal/product/errors"

	"github.com/google/uuid"
)

type Service interface {
	Get(ctx context.Context, productID string) (Product, error)
	Search(ctx context.Context, term string, limit int32) ([]Product, error)
	List(ctx context.Context, term string, page, pageSize int32) ([]Product, int64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, productID string) (Product, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return Product{}, producterrors.ErrInvalidProductID
	}

	p, err := s.repo.GetByID(ctx, pid)
	if err == sql.ErrNoRows {
		return Product{}, producterrors.ErrProductNotFound
	}
	return p, err
}

func (s *service) Search(ctx context.Context, term string, limit int32) ([]Product, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.repo.SearchByTitle(ctx, term, limit, 0)
}

// List is the paged catalog read behind GET /products.
func (s *service) List(ctx context.Context, term string, page, pageSize int32) ([]Product, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 50 {
		pageSize = 20
	}

	total, err := s.repo.CountByTitle(ctx, term)
	if err != nil {
		return nil, 0, err
	}

	products, err := s.repo.SearchByTitle(ctx, term, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}
