package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	autherrors "go-grocer-api/internal/auth/errors"
	"go-grocer-api/internal/cart"
	carterrors "go-grocer-api/internal/cart/errors"
	"go-grocer-api/internal/outbox"
	"go-grocer-api/internal/pincode"
	"go-grocer-api/internal/product"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const EventOrderCreated = "ORDER_CREATED"

// Orders at or above the threshold ship free, below it a flat fee applies.
var (
	freeShippingThreshold = decimal.NewFromInt(500)
	flatShippingFee       = decimal.NewFromInt(40)
)

type Service interface {
	Create(ctx context.Context, userID string, req CreateOrderRequest) (OrderResponse, error)
	List(ctx context.Context, userID string) ([]OrderResponse, error)
	Detail(ctx context.Context, userID, orderID string) (OrderResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	outboxRepo  outbox.Repository
	productRepo product.Repository
	cartSvc     cart.Service
	pincodeSvc  pincode.Service
	validate    *validator.Validate
	logger      *zap.Logger
}

type Deps struct {
	DB          *sql.DB
	Repo        Repository
	OutboxRepo  outbox.Repository
	ProductRepo product.Repository
	CartSvc     cart.Service
	PincodeSvc  pincode.Service
	Logger      *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.DB == nil {
		panic("db cannot be nil")
	}
	if deps.Repo == nil {
		panic("order repository cannot be nil")
	}
	if deps.OutboxRepo == nil {
		panic("outbox repository cannot be nil")
	}
	if deps.ProductRepo == nil {
		panic("product repository cannot be nil")
	}
	if deps.CartSvc == nil {
		panic("cart service cannot be nil")
	}
	if deps.PincodeSvc == nil {
		panic("pincode service cannot be nil")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &service{
		db:          deps.DB,
		repo:        deps.Repo,
		outboxRepo:  deps.OutboxRepo,
		productRepo: deps.ProductRepo,
		cartSvc:     deps.CartSvc,
		pincodeSvc:  deps.PincodeSvc,
		validate:    validator.New(),
		logger:      deps.Logger.Named("order.service"),
	}
}

func shippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(freeShippingThreshold) {
		return decimal.Zero
	}
	return flatShippingFee
}

func newOrderNumber() string {
	return fmt.Sprintf("GRC-%d-%s", time.Now().Unix(), strings.ToUpper(uuid.New().String()[:4]))
}

func (s *service) Create(ctx context.Context, userID string, req CreateOrderRequest) (OrderResponse, error) {
	logger := s.logger.With(zap.String("user_id", userID))

	if err := s.validate.Struct(req); err != nil {
		return OrderResponse{}, carterrors.MapValidationError(err)
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		logger.Warn("invalid user id format", zap.Error(err))
		return OrderResponse{}, autherrors.ErrInvalidUserID
	}

	// 1. Reconciled cart is the order's source of truth
	cartData, err := s.cartSvc.Detail(ctx, userID)
	if err != nil {
		logger.Error("failed to fetch cart detail", zap.Error(err))
		return OrderResponse{}, err
	}
	if len(cartData.Items) == 0 {
		return OrderResponse{}, carterrors.ErrCartEmpty
	}

	// 2. Deliverability gate: every line must ship to the destination
	refs := make([]pincode.ProductRef, 0, len(cartData.Items))
	for _, item := range cartData.Items {
		refs = append(refs, pincode.ProductRef{ID: item.ProductID, Title: item.ProductTitle})
	}
	deliverability, err := s.pincodeSvc.CheckDeliverability(ctx, pincode.CheckDeliverabilityRequest{
		Pincode:  req.Address.Pincode,
		Products: refs,
	})
	if err != nil {
		return OrderResponse{}, err
	}
	if !deliverability.IsAllDeliverable {
		logger.Warn("checkout blocked by deliverability",
			zap.String("pincode", req.Address.Pincode),
			zap.Int("non_deliverable", len(deliverability.NonDeliverableProducts)),
		)
		return OrderResponse{}, ErrNotDeliverable
	}

	// 3. Totals from server-side subtotals
	subtotal := cartData.GrandTotal
	shipping := shippingFor(subtotal)
	total := subtotal.Add(shipping)

	addressSnapshot, err := json.Marshal(req.Address)
	if err != nil {
		return OrderResponse{}, ErrOrderFailed
	}

	orderNumber := newOrderNumber()
	logger = logger.With(zap.String("order_number", orderNumber))

	userData, err := s.repo.GetUserByID(ctx, uid)
	if err != nil {
		logger.Error("failed to fetch user info", zap.Error(err))
		return OrderResponse{}, err
	}

	// 4. Transaction: stock decrement, order rows, outbox event
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", zap.Error(err))
		return OrderResponse{}, ErrOrderFailed
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
			logger.Warn("transaction rolled back")
		}
	}()

	qtx := s.repo.WithTx(tx)
	productTx := s.productRepo.WithTx(tx)

	for _, item := range cartData.Items {
		pid := uuid.MustParse(item.ProductID)
		ok, err := productTx.DecrementStock(ctx, pid, item.Quantity)
		if err != nil {
			logger.Error("stock decrement failed", zap.String("product_id", item.ProductID), zap.Error(err))
			return OrderResponse{}, err
		}
		if !ok {
			logger.Warn("insufficient stock", zap.String("product_id", item.ProductID))
			return OrderResponse{}, ErrInsufficientStock
		}
	}

	created, err := qtx.CreateOrder(ctx, CreateOrderParams{
		OrderNumber:     orderNumber,
		UserID:          uid,
		Status:          "PLACED",
		PaymentID:       req.PaymentID,
		Pincode:         req.Address.Pincode,
		AddressSnapshot: addressSnapshot,
		SubtotalPrice:   subtotal,
		ShippingPrice:   shipping,
		TotalPrice:      total,
		Note:            req.Note,
	})
	if err != nil {
		logger.Error("failed to create order record", zap.Error(err))
		return OrderResponse{}, err
	}

	items := make([]OrderItemResponse, 0, len(cartData.Items))
	for _, item := range cartData.Items {
		pid := uuid.MustParse(item.ProductID)
		if err := qtx.CreateOrderItem(ctx, CreateOrderItemParams{
			OrderID:      created.ID,
			ProductID:    pid,
			NameSnapshot: item.ProductTitle,
			UnitPrice:    item.Price,
			Quantity:     item.Quantity,
			TotalPrice:   item.SubTotal,
		}); err != nil {
			logger.Error("failed to create order item", zap.String("product_id", item.ProductID), zap.Error(err))
			return OrderResponse{}, err
		}
		items = append(items, OrderItemResponse{
			ProductID:  item.ProductID,
			Title:      item.ProductTitle,
			UnitPrice:  item.Price,
			Quantity:   item.Quantity,
			TotalPrice: item.SubTotal,
		})
	}

	payload, err := json.Marshal(OrderCreatedPayload{
		OrderID:       created.ID.String(),
		OrderNumber:   orderNumber,
		UserID:        userID,
		CustomerName:  userData.Name,
		CustomerEmail: userData.Email,
		TotalPrice:    total,
	})
	if err != nil {
		return OrderResponse{}, ErrOrderFailed
	}

	if err := s.outboxRepo.WithTx(tx).CreateEvent(ctx, outbox.CreateEventParams{
		AggregateType: "order",
		AggregateID:   created.ID,
		EventType:     EventOrderCreated,
		Payload:       payload,
	}); err != nil {
		logger.Error("failed to write outbox event", zap.Error(err))
		return OrderResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit order", zap.Error(err))
		return OrderResponse{}, ErrOrderFailed
	}
	committed = true

	logger.Info("order placed",
		zap.String("order_id", created.ID.String()),
		zap.String("total", total.String()),
	)

	return toOrderResponse(created, items), nil
}

func (s *service) List(ctx context.Context, userID string) ([]OrderResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	orders, err := s.repo.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	res := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		res = append(res, toOrderResponse(o, nil))
	}
	return res, nil
}

func (s *service) Detail(ctx context.Context, userID, orderID string) (OrderResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return OrderResponse{}, autherrors.ErrInvalidUserID
	}

	oid, err := uuid.Parse(orderID)
	if err != nil {
		return OrderResponse{}, ErrOrderNotFound
	}

	o, err := s.repo.GetByID(ctx, oid)
	if err == sql.ErrNoRows {
		return OrderResponse{}, ErrOrderNotFound
	}
	if err != nil {
		return OrderResponse{}, err
	}
	if o.UserID != uid {
		return OrderResponse{}, ErrOrderNotFound
	}

	rows, err := s.repo.GetItems(ctx, oid)
	if err != nil {
		return OrderResponse{}, err
	}

	items := make([]OrderItemResponse, 0, len(rows))
	for _, it := range rows {
		items = append(items, OrderItemResponse{
			ProductID:  it.ProductID.String(),
			Title:      it.NameSnapshot,
			UnitPrice:  it.UnitPrice,
			Quantity:   it.Quantity,
			TotalPrice: it.TotalPrice,
		})
	}

	return toOrderResponse(o, items), nil
}

func toOrderResponse(o Order, items []OrderItemResponse) OrderResponse {
	return OrderResponse{
		ID:            o.ID.String(),
		OrderNumber:   o.OrderNumber,
		Status:        o.Status,
		SubtotalPrice: o.SubtotalPrice,
		ShippingPrice: o.ShippingPrice,
		TotalPrice:    o.TotalPrice,
		PlacedAt:      o.PlacedAt,
		Items:         items,
	}
}
