package main

import (
	"log"

	"go-grocer-api/internal/app"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := app.NewLogger()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := app.RunConsumer(logger); err != nil {
		logger.Fatal("consumer exited", zap.Error(err))
	}
}
