package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tarelfish/tarel-api/controllers"
)

func AdminRoutes(
	api *gin.RouterGroup,
	admin *controllers.AdminController,
	catalog *controllers.AdminCatalogController,
	requireAuth, requireAdmin gin.HandlerFunc,
) {
	group := api.Group("/admin", requireAuth, requireAdmin)

	group.GET("/customers", admin.ListCustomers)
	group.GET("/customers/:id", admin.GetCustomer)

	group.GET("/users", admin.ListUsers)
	group.PATCH("/users/:id/role", admin.ChangeUserRole)

	group.GET("/orders", admin.ListOrders)
	group.GET("/orders/:id", admin.GetOrder)
	group.PATCH("/orders/:id/status", admin.UpdateOrderStatus)

	group.GET("/support", admin.ListSupportMessages)
	group.PATCH("/support/:id", admin.RespondSupportMessage)

	group.GET("/site/next-delivery", admin.GetNextDelivery)
	group.PUT("/site/next-delivery", admin.SetNextDelivery)

	group.GET("/reports/vendor", admin.VendorReport)
	group.POST("/reports/sales", admin.SendSalesReport)

	group.GET("/categories", catalog.ListCategories)
	group.POST("/categories", catalog.CreateCategory)
	group.PATCH("/categories/:id", catalog.UpdateCategory)
	group.DELETE("/categories/:id", catalog.DeleteCategory)

	group.GET("/products", catalog.ListProducts)
	group.POST("/products", catalog.CreateProduct)
	group.PATCH("/products/:id", catalog.UpdateProduct)
	group.DELETE("/products/:id", catalog.DeleteProduct)

	group.GET("/cut-clean-options", catalog.ListCutCleanOptions)
	group.POST("/cut-clean-options", catalog.CreateCutCleanOption)
	group.PATCH("/cut-clean-options/:id", catalog.UpdateCutCleanOption)
	group.DELETE("/cut-clean-options/:id", catalog.DeleteCutCleanOption)

	group.POST("/upload-image", catalog.UploadImage)
}
