package cart

import (
	"context"
	"database/sql"

	autherrors "go-grocer-api/internal/auth/errors"
	carterrors "go-grocer-api/internal/cart/errors"
	"go-grocer-api/internal/product"
	producterrors "go-grocer-api/internal/product/errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service interface {
	Detail(ctx context.Context, userID string) (CartDetailResponse, error)
	Count(ctx context.Context, userID string) (int64, error)

	AddItem(ctx context.Context, userID string, req AddItemRequest) (CartLineResponse, error)
	UpdateQty(ctx context.Context, userID, lineID string, req UpdateQtyRequest) (UpdateQtyResponse, error)

	RemoveLine(ctx context.Context, userID, lineID string) error
	ClearCart(ctx context.Context, userID string) error
}

type service struct {
	db          *sql.DB
	repo        Repository
	productRepo product.Repository
	validate    *validator.Validate
}

func NewService(db *sql.DB, r Repository, productRepo product.Repository) Service {
	return &service{
		db:          db,
		repo:        r,
		productRepo: productRepo,
		validate:    validator.New(),
	}
}

// ========================
// helpers
// ========================

func (s *service) parseUserID(userID string) (uuid.UUID, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, autherrors.ErrInvalidUserID
	}
	return id, nil
}

func (s *service) getCartOnly(ctx context.Context, uid uuid.UUID) (uuid.UUID, error) {
	cart, err := s.repo.GetByUserID(ctx, uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, carterrors.ErrCartNotFound
		}
		return uuid.Nil, err
	}
	return cart.ID, nil
}

// getOwnedLine resolves a line id and verifies it belongs to the caller's
// cart. A foreign line reads the same as a missing one.
func (s *service) getOwnedLine(ctx context.Context, uid uuid.UUID, lineID string) (CartLineRow, error) {
	lid, err := uuid.Parse(lineID)
	if err != nil {
		return CartLineRow{}, carterrors.ErrCartLineNotFound
	}

	line, err := s.repo.GetLine(ctx, lid)
	if err == sql.ErrNoRows {
		return CartLineRow{}, carterrors.ErrCartLineNotFound
	}
	if err != nil {
		return CartLineRow{}, err
	}
	if line.CartUserID != uid {
		return CartLineRow{}, carterrors.ErrCartLineNotFound
	}
	return line, nil
}

func (s *service) Detail(ctx context.Context, userID string) (CartDetailResponse, error) {
	uid, err := s.parseUserID(userID)
	if err != nil {
		return CartDetailResponse{}, err
	}

	rows, err := s.repo.GetDetail(ctx, uid)
	if err != nil {
		return CartDetailResponse{}, err
	}

	items := make([]CartLineResponse, 0, len(rows))
	grandTotal := decimal.Zero
	for _, row := range rows {
		line := toLineResponse(row)
		items = append(items, line)
		grandTotal = grandTotal.Add(line.SubTotal)
	}

	return CartDetailResponse{Items: items, GrandTotal: grandTotal}, nil
}

func (s *service) Count(ctx context.Context, userID string) (int64, error) {
	uid, err := s.parseUserID(userID)
	if err != nil {
		return 0, err
	}

	cartID, err := s.getCartOnly(ctx, uid)
	if err != nil {
		return 0, err
	}

	return s.repo.Count(ctx, cartID)
}

func (s *service) AddItem(ctx context.Context, userID string, req AddItemRequest) (CartLineResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return CartLineResponse{}, carterrors.MapValidationError(err)
	}

	uid, err := s.parseUserID(userID)
	if err != nil {
		return CartLineResponse{}, err
	}

	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return CartLineResponse{}, producterrors.ErrInvalidProductID
	}

	prod, err := s.productRepo.GetByID(ctx, pid)
	if err == sql.ErrNoRows {
		return CartLineResponse{}, producterrors.ErrProductNotFound
	}
	if err != nil {
		return CartLineResponse{}, err
	}
	if prod.CountInStock < 1 {
		return CartLineResponse{}, producterrors.ErrOutOfStock
	}

	// absent quantity means one unit; anything else is clamped to stock
	requested := req.Quantity
	if requested == 0 {
		requested = 1
	}
	clamp := ClampQuantity(requested, prod.CountInStock)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CartLineResponse{}, err
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)

	cartID, err := func() (uuid.UUID, error) {
		cart, err := repo.GetByUserID(ctx, uid)
		if err == nil {
			return cart.ID, nil
		}
		if err != sql.ErrNoRows {
			return uuid.Nil, err
		}

		cart, err = repo.CreateCart(ctx, uid)
		if err != nil {
			return uuid.Nil, err
		}
		return cart.ID, nil
	}()
	if err != nil {
		return CartLineResponse{}, err
	}

	// one line per product; a second add is a business rejection, not a merge
	_, err = repo.GetItemByCartAndProduct(ctx, cartID, pid)
	if err == nil {
		return CartLineResponse{}, carterrors.ErrItemAlreadyInCart
	}
	if err != sql.ErrNoRows {
		return CartLineResponse{}, err
	}

	item, err := repo.AddItem(ctx, AddItemParams{
		CartID:     cartID,
		ProductID:  pid,
		Quantity:   clamp.Quantity,
		PriceAtAdd: prod.Price,
	})
	if err != nil {
		return CartLineResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return CartLineResponse{}, err
	}

	return toLineResponse(CartLineRow{
		ID:           item.ID,
		CartID:       cartID,
		CartUserID:   uid,
		ProductID:    pid,
		ProductTitle: prod.Title,
		Image:        prod.Image,
		Price:        item.PriceAtAdd,
		Quantity:     item.Quantity,
		CountInStock: prod.CountInStock,
		Weight:       prod.Weight,
		CreatedAt:    item.CreatedAt,
	}), nil
}

func (s *service) UpdateQty(ctx context.Context, userID, lineID string, req UpdateQtyRequest) (UpdateQtyResponse, error) {
	uid, err := s.parseUserID(userID)
	if err != nil {
		return UpdateQtyResponse{}, err
	}

	line, err := s.getOwnedLine(ctx, uid, lineID)
	if err != nil {
		return UpdateQtyResponse{}, err
	}

	// below-minimum and unchanged requests are no-ops against storage
	if req.Quantity < 1 || req.Quantity == line.Quantity {
		resp := UpdateQtyResponse{Line: toLineResponse(line)}
		if req.Quantity < 1 {
			resp.Clamped = true
			resp.Warning = WarnBelowMinimum
		}
		return resp, nil
	}

	clamp := ClampQuantity(req.Quantity, line.CountInStock)
	if clamp.Quantity == line.Quantity {
		return UpdateQtyResponse{
			Line:    toLineResponse(line),
			Clamped: clamp.Clamped,
			Warning: clamp.Warning,
		}, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UpdateQtyResponse{}, err
	}
	defer tx.Rollback()

	item, err := s.repo.WithTx(tx).UpdateQty(ctx, line.ID, clamp.Quantity)
	if err == sql.ErrNoRows {
		return UpdateQtyResponse{}, carterrors.ErrCartLineNotFound
	}
	if err != nil {
		return UpdateQtyResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return UpdateQtyResponse{}, err
	}

	line.Quantity = item.Quantity
	return UpdateQtyResponse{
		Line:    toLineResponse(line),
		Clamped: clamp.Clamped,
		Warning: clamp.Warning,
	}, nil
}

func (s *service) RemoveLine(ctx context.Context, userID, lineID string) error {
	uid, err := s.parseUserID(userID)
	if err != nil {
		return err
	}

	line, err := s.getOwnedLine(ctx, uid, lineID)
	if err != nil {
		return err
	}

	err = s.repo.DeleteLine(ctx, line.ID)
	if err == sql.ErrNoRows {
		return carterrors.ErrCartLineNotFound
	}
	return err
}

func (s *service) ClearCart(ctx context.Context, userID string) error {
	uid, err := s.parseUserID(userID)
	if err != nil {
		return err
	}

	cartID, err := s.getCartOnly(ctx, uid)
	if err != nil {
		return err
	}

	return s.repo.DeleteAllItems(ctx, cartID)
}
