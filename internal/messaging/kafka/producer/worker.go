package producer

import (
	"context"
	"time"

	"go-grocer-api/internal/outbox"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ProcessOutboxEvents drains PENDING outbox rows into Kafka. Rows are only
// marked SENT after the broker acks, so a crash between publish and mark
// yields at-least-once delivery.
func ProcessOutboxEvents(ctx context.Context, repo outbox.Repository, writer *kafka.Writer, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("outbox.worker")

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	logger.Info("outbox processor started", zap.Duration("interval", 5*time.Second))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := processPendingEvents(ctx, repo, writer, logger); err != nil {
				logger.Error("error processing outbox events", zap.Error(err))
			}
		}
	}
}

func processPendingEvents(ctx context.Context, repo outbox.Repository, writer *kafka.Writer, logger *zap.Logger) error {
	events, err := repo.ListPending(ctx, 10)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	logger.Info("processing pending events", zap.Int("count", len(events)))

	for _, event := range events {
		if err := publishEvent(ctx, writer, event); err != nil {
			logger.Error("failed to publish event",
				zap.String("event_id", event.ID.String()),
				zap.String("event_type", event.EventType),
				zap.Error(err),
			)
			_ = repo.MarkFailed(ctx, event.ID)
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			logger.Error("failed to mark event sent",
				zap.String("event_id", event.ID.String()),
				zap.Error(err),
			)
			continue
		}

		logger.Info("event published",
			zap.String("event_id", event.ID.String()),
			zap.String("event_type", event.EventType),
		)
	}

	return nil
}
