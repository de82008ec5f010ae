package order

import (
	"time"

	"go-grocer-api/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	orders := r.Group("/orders")
	orders.Use(middleware.AuthMiddleware())
	{
		// Checkout is the one write that moves stock and money, so it
		// gets the tightest limit plus idempotency protection.
		orders.POST("/create",
			middleware.RateLimitByUser(rdb, 5, time.Minute),
			middleware.Idempotency(rdb),
			handler.Checkout,
		)
		orders.GET("", handler.List)
		orders.GET("/:id", handler.Detail)
	}
}
