package order_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-grocer-api/internal/cart"
	carterrors "go-grocer-api/internal/cart/errors"
	mockproduct "go-grocer-api/internal/mock/product"
	"go-grocer-api/internal/order"
	"go-grocer-api/internal/outbox"
	"go-grocer-api/internal/pincode"
	"go-grocer-api/internal/shared/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fakeCartService struct {
	cart.Service
	detail cart.CartDetailResponse
	err    error
}

func (f *fakeCartService) Detail(ctx context.Context, userID string) (cart.CartDetailResponse, error) {
	return f.detail, f.err
}

type fakePincodeService struct {
	pincode.Service
	result   pincode.DeliverabilityResponse
	err      error
	lastReq  pincode.CheckDeliverabilityRequest
	numCalls int
}

func (f *fakePincodeService) CheckDeliverability(ctx context.Context, req pincode.CheckDeliverabilityRequest) (pincode.DeliverabilityResponse, error) {
	f.numCalls++
	f.lastReq = req
	return f.result, f.err
}

type fakeOrderRepo struct {
	created      []order.CreateOrderParams
	createdItems []order.CreateOrderItemParams
	orders       map[uuid.UUID]order.Order
	items        map[uuid.UUID][]order.OrderItem
	user         order.User
	createErr    error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: make(map[uuid.UUID]order.Order),
		items:  make(map[uuid.UUID][]order.OrderItem),
		user:   order.User{ID: uuid.New(), Name: "Anita", Email: "anita@example.com"},
	}
}

func (f *fakeOrderRepo) WithTx(tx database.DBTX) order.Repository { return f }

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, arg order.CreateOrderParams) (order.Order, error) {
	if f.createErr != nil {
		return order.Order{}, f.createErr
	}
	f.created = append(f.created, arg)
	o := order.Order{
		ID:            uuid.New(),
		OrderNumber:   arg.OrderNumber,
		UserID:        arg.UserID,
		Status:        arg.Status,
		SubtotalPrice: arg.SubtotalPrice,
		ShippingPrice: arg.ShippingPrice,
		TotalPrice:    arg.TotalPrice,
		PlacedAt:      time.Now(),
	}
	f.orders[o.ID] = o
	return o, nil
}

func (f *fakeOrderRepo) CreateOrderItem(ctx context.Context, arg order.CreateOrderItemParams) error {
	f.createdItems = append(f.createdItems, arg)
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (order.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return order.Order{}, sql.ErrNoRows
	}
	return o, nil
}

func (f *fakeOrderRepo) GetItems(ctx context.Context, orderID uuid.UUID) ([]order.OrderItem, error) {
	return f.items[orderID], nil
}

func (f *fakeOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]order.Order, error) {
	var out []order.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) GetUserByID(ctx context.Context, id uuid.UUID) (order.User, error) {
	return f.user, nil
}

type fakeOutboxRepo struct {
	events    []outbox.CreateEventParams
	createErr error
}

func (f *fakeOutboxRepo) WithTx(tx database.DBTX) outbox.Repository { return f }

func (f *fakeOutboxRepo) CreateEvent(ctx context.Context, arg outbox.CreateEventParams) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.events = append(f.events, arg)
	return nil
}

func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int32) ([]outbox.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id uuid.UUID) error   { return nil }
func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id uuid.UUID) error { return nil }

type orderFixture struct {
	svc        order.Service
	repo       *fakeOrderRepo
	outboxRepo *fakeOutboxRepo
	product    *mockproduct.MockRepository
	cartSvc    *fakeCartService
	pincodeSvc *fakePincodeService
	db         sqlmock.Sqlmock
	done       func()
}

func newOrderFixture(t *testing.T) *orderFixture {
	ctrl := gomock.NewController(t)

	db, mockDB, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}

	repo := newFakeOrderRepo()
	outboxRepo := &fakeOutboxRepo{}
	productRepo := mockproduct.NewMockRepository(ctrl)
	cartSvc := &fakeCartService{}
	pincodeSvc := &fakePincodeService{}

	svc := order.NewService(order.Deps{
		DB:          db,
		Repo:        repo,
		OutboxRepo:  outboxRepo,
		ProductRepo: productRepo,
		CartSvc:     cartSvc,
		PincodeSvc:  pincodeSvc,
	})

	return &orderFixture{
		svc:        svc,
		repo:       repo,
		outboxRepo: outboxRepo,
		product:    productRepo,
		cartSvc:    cartSvc,
		pincodeSvc: pincodeSvc,
		db:         mockDB,
		done: func() {
			ctrl.Finish()
			db.Close()
		},
	}
}

func cartWith(items ...cart.CartLineResponse) cart.CartDetailResponse {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.SubTotal)
	}
	return cart.CartDetailResponse{Items: items, GrandTotal: total}
}

func line(productID uuid.UUID, title string, price int64, qty int32) cart.CartLineResponse {
	p := decimal.NewFromInt(price)
	return cart.CartLineResponse{
		ID:           uuid.New().String(),
		ProductID:    productID.String(),
		ProductTitle: title,
		Price:        p,
		Quantity:     qty,
		SubTotal:     p.Mul(decimal.NewFromInt32(qty)),
	}
}

func validRequest() order.CreateOrderRequest {
	return order.CreateOrderRequest{
		Address: order.ShippingAddress{
			Name:    "Anita",
			Phone:   "9876543210",
			Line1:   "12 MG Road",
			City:    "Kochi",
			Pincode: "682001",
		},
		PaymentID: "pay_NxQ3jq8",
	}
}

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("places_order_with_stock_decrement_and_outbox_event", func(t *testing.T) {
		f := newOrderFixture(t)
		defer f.done()

		riceID := uuid.New()
		dalID := uuid.New()
		f.cartSvc.detail = cartWith(
			line(riceID, "Basmati Rice 1kg", 120, 3),
			line(dalID, "Toor Dal 500g", 85, 2),
		)
		f.pincodeSvc.result = pincode.DeliverabilityResponse{IsAllDeliverable: true}

		f.db.ExpectBegin()
		f.product.EXPECT().WithTx(gomock.Any()).Return(f.product)
		f.product.EXPECT().DecrementStock(ctx, riceID, int32(3)).Return(true, nil)
		f.product.EXPECT().DecrementStock(ctx, dalID, int32(2)).Return(true, nil)
		f.db.ExpectCommit()

		res, err := f.svc.Create(ctx, f.repo.user.ID.String(), validRequest())

		assert.NoError(t, err)
		// 360 + 170 = 530, over the free-shipping threshold
		assert.Equal(t, "530", res.SubtotalPrice.String())
		assert.True(t, res.ShippingPrice.IsZero())
		assert.Equal(t, "530", res.TotalPrice.String())
		assert.Len(t, res.Items, 2)
		assert.Contains(t, res.OrderNumber, "GRC-")

		assert.Len(t, f.repo.createdItems, 2)
		assert.Len(t, f.outboxRepo.events, 1)
		assert.Equal(t, order.EventOrderCreated, f.outboxRepo.events[0].EventType)
		assert.NoError(t, f.db.ExpectationsWereMet())
	})

	t.Run("charges_flat_shipping_below_threshold", func(t *testing.T) {
		f := newOrderFixture(t)
		defer f.done()

		milkID := uuid.New()
		f.cartSvc.detail = cartWith(line(milkID, "Milk 500ml", 30, 2))
		f.pincodeSvc.result = pincode.DeliverabilityResponse{IsAllDeliverable: true}

		f.db.ExpectBegin()
		f.product.EXPECT().WithTx(gomock.Any()).Return(f.product)
		f.product.EXPECT().DecrementStock(ctx, milkID, int32(2)).Return(true, nil)
		f.db.ExpectCommit()

		res, err := f.svc.Create(ctx, f.repo.user.ID.String(), validRequest())

		assert.NoError(t, err)
		assert.Equal(t, "60", res.SubtotalPrice.String())
		assert.Equal(t, "40", res.ShippingPrice.String())
		assert.Equal(t, "100", res.TotalPrice.String())
	})

	t.Run("rejects_empty_cart", func(t *testing.T) {
		f := newOrderFixture(t)
		defer f.done()

		f.cartSvc.detail = cart.CartDetailResponse{GrandTotal: decimal.Zero}

		_, err := f.svc.Create(ctx, f.repo.user.ID.String(), validRequest())

		assert.ErrorIs(t, err, carterrors.ErrCartEmpty)
		assert.Zero(t, f.pincodeSvc.numCalls)
	})

	t.Run("blocks_checkout_when_any_item_undeliverable", func(t *testing.T) {
		f := newOrderFixture(t)
		defer f.done()

		riceID := uuid.New()
		f.cartSvc.detail = cartWith(line(riceID, "Basmati Rice 1kg", 120, 1))
		f.pincodeSvc.result = pincode.DeliverabilityResponse{
			IsAllDeliverable: false,
			NonDeliverableProducts: []pincode.ProductDeliverability{
				{ID: riceID.String(), Title: "Basmati Rice 1kg"},
			},
		}

		_, err := f.svc.Create(ctx, f.repo.user.ID.String(), validRequest())

		assert.ErrorIs(t, err, order.ErrNotDeliverable)
		assert.Equal(t, "682001", f.pincodeSvc.lastReq.Pincode)
		assert.Empty(t, f.repo.created)
	})

	t.Run("rolls_back_on_insufficient_stock", func(t *testing.T) {
		f := newOrderFixture(t)
		defer f.done()

		riceID := uuid.New()
		f.cartSvc.detail = cartWith(line(riceID, "Basmati Rice 1kg", 120, 5))
		f.pincodeSvc.result = pincode.DeliverabilityResponse{IsAllDeliverable: true}

		f.db.ExpectBegin()
		f.product.EXPECT().WithTx(gomock.Any()).Return(f.product)
		f.product.EXPECT().DecrementStock(ctx, riceID, int32(5)).Return(false, nil)
		f.db.ExpectRollback()

		_, err := f.svc.Create(ctx, f.repo.user.ID.String(), validRequest())

		assert.ErrorIs(t, err, order.ErrInsufficientStock)
		assert.Empty(t, f.repo.created)
		assert.Empty(t, f.outboxRepo.events)
		assert.NoError(t, f.db.ExpectationsWereMet())
	})

	t.Run("rolls_back_when_outbox_write_fails", func(t *testing.T) {
		f := newOrderFixture(t)
		defer f.done()

		riceID := uuid.New()
		f.cartSvc.detail = cartWith(line(riceID, "Basmati Rice 1kg", 120, 1))
		f.pincodeSvc.result = pincode.DeliverabilityResponse{IsAllDeliverable: true}
		f.outboxRepo.createErr = errors.New("outbox insert failed")

		f.db.ExpectBegin()
		f.product.EXPECT().WithTx(gomock.Any()).Return(f.product)
		f.product.EXPECT().DecrementStock(ctx, riceID, int32(1)).Return(true, nil)
		f.db.ExpectRollback()

		_, err := f.svc.Create(ctx, f.repo.user.ID.String(), validRequest())

		assert.Error(t, err)
		assert.NoError(t, f.db.ExpectationsWereMet())
	})

	t.Run("rejects_missing_address_fields", func(t *testing.T) {
		f := newOrderFixture(t)
		defer f.done()

		req := validRequest()
		req.Address.Pincode = ""

		_, err := f.svc.Create(ctx, f.repo.user.ID.String(), req)

		assert.Error(t, err)
		assert.Zero(t, f.pincodeSvc.numCalls)
	})
}

func TestOrderService_Detail(t *testing.T) {
	ctx := context.Background()

	t.Run("returns_order_with_items", func(t *testing.T) {
		f := newOrderFixture(t)
		defer f.done()

		oid := uuid.New()
		f.repo.orders[oid] = order.Order{
			ID:          oid,
			OrderNumber: "GRC-1756710000-A1B2",
			UserID:      f.repo.user.ID,
			Status:      "PLACED",
			TotalPrice:  decimal.NewFromInt(530),
		}
		f.repo.items[oid] = []order.OrderItem{
			{ProductID: uuid.New(), NameSnapshot: "Basmati Rice 1kg", UnitPrice: decimal.NewFromInt(120), Quantity: 3, TotalPrice: decimal.NewFromInt(360)},
		}

		res, err := f.svc.Detail(ctx, f.repo.user.ID.String(), oid.String())

		assert.NoError(t, err)
		assert.Equal(t, "GRC-1756710000-A1B2", res.OrderNumber)
		assert.Len(t, res.Items, 1)
	})

	t.Run("hides_other_users_orders", func(t *testing.T) {
		f := newOrderFixture(t)
		defer f.done()

		oid := uuid.New()
		f.repo.orders[oid] = order.Order{ID: oid, UserID: uuid.New()}

		_, err := f.svc.Detail(ctx, f.repo.user.ID.String(), oid.String())

		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("not_found_for_unknown_id", func(t *testing.T) {
		f := newOrderFixture(t)
		defer f.done()

		_, err := f.svc.Detail(ctx, f.repo.user.ID.String(), uuid.New().String())

		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}
