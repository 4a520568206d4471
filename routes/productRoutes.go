package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tarelfish/tarel-api/controllers"
)

func ProductRoutes(api *gin.RouterGroup, products *controllers.ProductController) {
	api.GET("/categories", products.ListCategories)
	api.GET("/products", products.ListProducts)
	api.GET("/products/:slug", products.GetProduct)
	api.GET("/cut-clean-options", products.ListCutCleanOptions)
	api.GET("/site/next-delivery", products.GetNextDelivery)
}
