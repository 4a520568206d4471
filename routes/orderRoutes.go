package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tarelfish/tarel-api/controllers"
)

func OrderRoutes(api *gin.RouterGroup, orders *controllers.OrderController, requireAuth gin.HandlerFunc) {
	group := api.Group("/orders", requireAuth)
	group.POST("", orders.Create)
	group.GET("", orders.ListMine)
	group.POST("/:id/cancel", orders.Cancel)
}
