package app

import (
	"database/sql"

	"go-grocer-api/internal/assistant"
	"go-grocer-api/internal/cart"
	"go-grocer-api/internal/order"
	"go-grocer-api/internal/outbox"
	"go-grocer-api/internal/pincode"
	"go-grocer-api/internal/product"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func registerModules(router *gin.Engine, db *sql.DB, rdb *redis.Client, logger *zap.Logger) {
	// --- Repositories ---
	productRepo := product.NewRepository(db)
	cartRepo := cart.NewRepository(db)
	pincodeRepo := pincode.NewRepository(db)
	orderRepo := order.NewRepository(db)
	outboxRepo := outbox.NewRepository(db)

	// --- Services ---
	productService := product.NewService(productRepo)
	cartService := cart.NewService(db, cartRepo, productRepo)
	pincodeService := pincode.NewService(pincodeRepo, pincode.NewRedisCache(rdb), logger)
	assistantService := assistant.NewService(productService, logger)
	orderService := order.NewService(order.Deps{
		DB:          db,
		Repo:        orderRepo,
		OutboxRepo:  outboxRepo,
		ProductRepo: productRepo,
		CartSvc:     cartService,
		PincodeSvc:  pincodeService,
		Logger:      logger,
	})

	// --- Handlers ---
	productHandler := product.NewHandler(productService)
	cartHandler := cart.NewHandler(cartService)
	pincodeHandler := pincode.NewHandler(pincodeService)
	assistantHandler := assistant.NewHandler(assistantService)
	orderHandler := order.NewHandler(orderService, logger)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		product.RegisterRoutes(api, productHandler)
		cart.RegisterRoutes(api, cartHandler)
		pincode.RegisterRoutes(api, pincodeHandler, rdb)
		assistant.RegisterRoutes(api, assistantHandler, rdb)
		order.RegisterRoutes(api, orderHandler, rdb)
	}
}
