package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tarelfish/tarel-api/apperrors"
	"github.com/tarelfish/tarel-api/services"
)

// ProductController serves the public storefront catalog.
type ProductController struct {
	catalog  *services.CatalogService
	settings *services.SettingsService
}

func NewProductController(catalog *services.CatalogService, settings *services.SettingsService) *ProductController {
	return &ProductController{catalog: catalog, settings: settings}
}

func (c *ProductController) ListCategories(ctx *gin.Context) {
	categories, err := c.catalog.ActiveCategories(ctx.Request.Context())
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, categories)
}

func (c *ProductController) ListProducts(ctx *gin.Context) {
	products, err := c.catalog.ActiveProducts(ctx.Request.Context())
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, products)
}

func (c *ProductController) GetProduct(ctx *gin.Context) {
	product, err := c.catalog.ActiveProductBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

func (c *ProductController) ListCutCleanOptions(ctx *gin.Context) {
	options, err := c.catalog.ActiveCutCleanOptions(ctx.Request.Context())
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, options)
}

func (c *ProductController) GetNextDelivery(ctx *gin.Context) {
	delivery, err := c.settings.GetNextDelivery(ctx.Request.Context())
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, delivery)
}
