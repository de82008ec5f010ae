package cart

import (
	"go-grocer-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	carts := r.Group("/cart")
	carts.Use(middleware.AuthMiddleware())
	{
		carts.GET("", handler.Detail)
		carts.GET("/count", handler.Count)
		carts.POST("", handler.AddItem)
		carts.PUT("/:id", handler.UpdateQty)
		carts.DELETE("/:id", handler.Remove)
	}
}
