package consumer

import (
	"context"

	"go-grocer-api/internal/cart"
	"go-grocer-api/internal/email"
	"go-grocer-api/internal/order"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumeMessages(ctx context.Context, reader *kafka.Reader, cartService cart.Service, emailService email.Service, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("order.consumer")

	logger.Info("started consuming messages")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("error fetching message", zap.Error(err))
			continue
		}

		eventType := getHeader(msg.Headers, "event_type")

		if eventType == order.EventOrderCreated {
			if err := handleOrderCreated(ctx, msg.Value, cartService, emailService, logger); err != nil {
				logger.Error("error handling order created event", zap.Error(err))
			} else {
				if err := reader.CommitMessages(ctx, msg); err != nil {
					logger.Error("error committing message", zap.Error(err))
				}
			}
		} else {
			// Skip unknown event types
			_ = reader.CommitMessages(ctx, msg)
		}
	}
}
