package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tarelfish/tarel-api/apperrors"
	"github.com/tarelfish/tarel-api/services"
)

// AdminCatalogController manages categories, products, cut & clean options
// and product image uploads.
type AdminCatalogController struct {
	catalog  *services.CatalogService
	uploader *services.ImageUploader
}

func NewAdminCatalogController(catalog *services.CatalogService, uploader *services.ImageUploader) *AdminCatalogController {
	return &AdminCatalogController{catalog: catalog, uploader: uploader}
}

type categoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
}

type categoryUpdateRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func (c *AdminCatalogController) ListCategories(ctx *gin.Context) {
	categories, err := c.catalog.AllCategories(ctx.Request.Context())
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, categories)
}

func (c *AdminCatalogController) CreateCategory(ctx *gin.Context) {
	var req categoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(ctx, apperrors.Validation(err.Error()))
		return
	}

	category, err := c.catalog.CreateCategory(ctx.Request.Context(), services.CategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, category)
}

func (c *AdminCatalogController) UpdateCategory(ctx *gin.Context) {
	categoryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		apperrors.Respond(ctx, apperrors.NotFound("Category not found"))
		return
	}

	var req categoryUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(ctx, apperrors.Validation(err.Error()))
		return
	}

	category, err := c.catalog.UpdateCategory(ctx.Request.Context(), categoryID, services.CategoryUpdateInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, category)
}

func (c *AdminCatalogController) DeleteCategory(ctx *gin.Context) {
	categoryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		apperrors.Respond(ctx, apperrors.NotFound("Category not found"))
		return
	}

	if err := c.catalog.DeleteCategory(ctx.Request.Context(), categoryID); err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"detail": "Category deleted"})
}

type productRequest struct {
	Name        string    `json:"name" binding:"required"`
	Slug        string    `json:"slug" binding:"required"`
	Description string    `json:"description"`
	PricePerKg  float64   `json:"price_per_kg" binding:"required"`
	StockKg     float64   `json:"stock_kg"`
	CategoryID  uuid.UUID `json:"category_id" binding:"required"`
	ImageURL    string    `json:"image_url"`
	IsActive    *bool     `json:"is_active"`
	IsDry       bool      `json:"is_dry"`
}

type productUpdateRequest struct {
	Name        *string    `json:"name"`
	Slug        *string    `json:"slug"`
	Description *string    `json:"description"`
	PricePerKg  *float64   `json:"price_per_kg"`
	StockKg     *float64   `json:"stock_kg"`
	CategoryID  *uuid.UUID `json:"category_id"`
	ImageURL    *string    `json:"image_url"`
	IsActive    *bool      `json:"is_active"`
	IsDry       *bool      `json:"is_dry"`
}

func (c *AdminCatalogController) ListProducts(ctx *gin.Context) {
	products, err := c.catalog.AllProducts(ctx.Request.Context())
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, products)
}

func (c *AdminCatalogController) CreateProduct(ctx *gin.Context) {
	var req productRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(ctx, apperrors.Validation(err.Error()))
		return
	}

	product, err := c.catalog.CreateProduct(ctx.Request.Context(), services.ProductInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		PricePerKg:  req.PricePerKg,
		StockKg:     req.StockKg,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
		IsDry:       req.IsDry,
	})
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, product)
}

func (c *AdminCatalogController) UpdateProduct(ctx *gin.Context) {
	productID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		apperrors.Respond(ctx, apperrors.NotFound("Product not found"))
		return
	}

	var req productUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(ctx, apperrors.Validation(err.Error()))
		return
	}

	product, err := c.catalog.UpdateProduct(ctx.Request.Context(), productID, services.ProductUpdateInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		PricePerKg:  req.PricePerKg,
		StockKg:     req.StockKg,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
		IsDry:       req.IsDry,
	})
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

func (c *AdminCatalogController) DeleteProduct(ctx *gin.Context) {
	productID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		apperrors.Respond(ctx, apperrors.NotFound("Product not found"))
		return
	}

	if err := c.catalog.DeleteProduct(ctx.Request.Context(), productID); err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"detail": "Product deleted"})
}

type cutCleanRequest struct {
	Label     string `json:"label" binding:"required"`
	IsActive  *bool  `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}

type cutCleanUpdateRequest struct {
	Label     *string `json:"label"`
	IsActive  *bool   `json:"is_active"`
	SortOrder *int    `json:"sort_order"`
}

func (c *AdminCatalogController) ListCutCleanOptions(ctx *gin.Context) {
	options, err := c.catalog.AllCutCleanOptions(ctx.Request.Context())
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, options)
}

func (c *AdminCatalogController) CreateCutCleanOption(ctx *gin.Context) {
	var req cutCleanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(ctx, apperrors.Validation(err.Error()))
		return
	}

	option, err := c.catalog.CreateCutCleanOption(ctx.Request.Context(), services.CutCleanOptionInput{
		Label:     req.Label,
		IsActive:  req.IsActive,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, option)
}

func (c *AdminCatalogController) UpdateCutCleanOption(ctx *gin.Context) {
	optionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		apperrors.Respond(ctx, apperrors.NotFound("Cut & clean option not found"))
		return
	}

	var req cutCleanUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(ctx, apperrors.Validation(err.Error()))
		return
	}

	option, err := c.catalog.UpdateCutCleanOption(ctx.Request.Context(), optionID, services.CutCleanOptionUpdateInput{
		Label:     req.Label,
		IsActive:  req.IsActive,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, option)
}

func (c *AdminCatalogController) DeleteCutCleanOption(ctx *gin.Context) {
	optionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		apperrors.Respond(ctx, apperrors.NotFound("Cut & clean option not found"))
		return
	}

	if err := c.catalog.DeleteCutCleanOption(ctx.Request.Context(), optionID); err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"detail": "Cut & clean option deleted"})
}

func (c *AdminCatalogController) UploadImage(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		apperrors.Respond(ctx, apperrors.Validation("No file provided"))
		return
	}

	result, err := c.uploader.Upload(ctx.Request.Context(), header)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, result)
}
