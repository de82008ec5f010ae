package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-grocer-api/internal/messaging/kafka/producer"
	"go-grocer-api/internal/outbox"

	"go.uber.org/zap"
)

// RunWorker starts the outbox processor and blocks until SIGINT/SIGTERM.
func RunWorker(logger *zap.Logger) error {
	logger = logger.Named("worker")
	logger.Info("starting outbox processor")

	db, err := connectDBWithRetry(os.Getenv("DB_URL"), 5)
	if err != nil {
		return err
	}
	defer db.Close()

	kafkaWriter, err := connectKafkaWithRetry(os.Getenv("KAFKA_BROKER"), "order.events", 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := outbox.NewRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cancel()
	time.Sleep(1 * time.Second)
	logger.Info("stopped")

	return nil
}
