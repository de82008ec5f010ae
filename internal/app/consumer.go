package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-grocer-api/internal/cart"
	"go-grocer-api/internal/email"
	"go-grocer-api/internal/messaging/kafka/consumer"
	"go-grocer-api/internal/product"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer starts the order-events consumer and blocks until
// SIGINT/SIGTERM. It clears carts and sends confirmations for placed orders.
func RunConsumer(logger *zap.Logger) error {
	logger = logger.Named("consumer")
	logger.Info("starting order events consumer")

	db, err := connectDBWithRetry(os.Getenv("DB_URL"), 5)
	if err != nil {
		return err
	}
	defer db.Close()

	cartRepo := cart.NewRepository(db)
	productRepo := product.NewRepository(db)
	cartService := cart.NewService(db, cartRepo, productRepo)

	emailService, err := email.NewResendServiceFromEnv()
	if err != nil {
		logger.Warn("email disabled", zap.Error(err))
		emailService = email.NewNoopService()
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{os.Getenv("KAFKA_BROKER")},
		Topic:   "order.events",
		GroupID: "order-consumer-group",
	})
	defer reader.Close()
	logger.Info("kafka reader initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeMessages(ctx, reader, cartService, emailService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cancel()
	logger.Info("stopped")

	return nil
}
