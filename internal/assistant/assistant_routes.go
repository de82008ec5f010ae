package assistant

import (
	"time"

	"go-grocer-api/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	va := r.Group("/voice-assistant")
	va.Use(middleware.AuthMiddleware())
	va.Use(middleware.RateLimitByUser(rdb, 20, time.Minute))
	{
		va.POST("/process", handler.Process)
	}
}
