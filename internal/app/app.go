package app

import (
	"os"

	"go-grocer-api/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine, logger *zap.Logger) error {
	// 1. Setup Infrastructure
	db, err := connectDBWithRetry(os.Getenv("DB_URL"), 5)
	if err != nil {
		return err
	}

	redisClient, err := connectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	// 2. Register Modules & Routes
	router.Use(middleware.RequestID())
	registerModules(router, db, redisClient, logger)

	return nil
}
