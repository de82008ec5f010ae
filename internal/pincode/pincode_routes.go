package pincode

import (
	"time"

	"go-grocer-api/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	// Public checks: the storefront fires these on every pincode keystroke
	// that reaches full length, so they get an IP rate limit.
	pincodes := r.Group("/pincodes")
	pincodes.Use(middleware.RateLimitByIP(rdb, 30, time.Minute))
	{
		pincodes.GET("/check/:pincode", handler.Check)
		pincodes.POST("/check-deliverability", handler.CheckDeliverability)
	}

	// Back-office zone management.
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.RoleMiddleware("ADMIN", "STOCK_MANAGER"))
	{
		admin.POST("/pincodes", handler.Upsert)
		admin.POST("/products/:productId/zones", handler.AddZone)
		admin.DELETE("/products/:productId/zones/:district", handler.RemoveZone)
	}
}
