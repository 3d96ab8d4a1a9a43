package routes

import (
	"powersite-catalog/internal/handlers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine, h *handlers.CatalogHandler) {
	router.GET("/", h.Root)
	router.GET("/schema", h.Schema)
	router.GET("/test", h.Diagnostics)

	api := router.Group("/api")
	{
		api.GET("/search", h.Search)
		api.GET("/brands", h.ListBrands)
		api.GET("/categories", h.ListCategories)

		api.GET("/products", h.ListProducts)
		api.GET("/products/:sku", h.GetProduct)
		api.GET("/products/:sku/reviews", h.GetReviews)
		api.POST("/products/:sku/reviews", h.PostReview)

		api.POST("/checkout", h.Checkout)
		api.GET("/spares", h.FindSpares)
	}
}
