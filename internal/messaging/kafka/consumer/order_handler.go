package consumer

import (
	"context"
	"encoding/json"

	"go-grocer-api/internal/cart"
	"go-grocer-api/internal/email"
	"go-grocer-api/internal/order"

	"go.uber.org/zap"
)

// handleOrderCreated reacts to a placed order: the user's cart is cleared
// and a confirmation email goes out. Email failure is logged but does not
// fail the message; the cart clear is what must not be lost.
func handleOrderCreated(ctx context.Context, payload []byte, cartService cart.Service, emailService email.Service, logger *zap.Logger) error {
	var data order.OrderCreatedPayload
	if err := json.Unmarshal(payload, &data); err != nil {
		return err
	}

	logger = logger.With(
		zap.String("order_number", data.OrderNumber),
		zap.String("user_id", data.UserID),
	)

	if err := cartService.ClearCart(ctx, data.UserID); err != nil {
		return err
	}
	logger.Info("cart cleared after order")

	if data.CustomerEmail != "" {
		if err := emailService.SendOrderConfirmation(ctx, data.CustomerEmail, data.CustomerName, data.OrderNumber, data.TotalPrice.StringFixed(2)); err != nil {
			logger.Warn("failed to send order confirmation email", zap.Error(err))
		} else {
			logger.Info("order confirmation email sent")
		}
	}

	return nil
}
