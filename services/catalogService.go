package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tarelfish/tarel-api/apperrors"
	"github.com/tarelfish/tarel-api/models"
	"github.com/tarelfish/tarel-api/repositories"
)

type CategoryInput struct {
	Name        string
	Slug        string
	Description string
}

type CategoryUpdateInput struct {
	Name        *string
	Slug        *string
	Description *string
	IsActive    *bool
}

type ProductInput struct {
	Name        string
	Slug        string
	Description string
	PricePerKg  float64
	StockKg     float64
	CategoryID  uuid.UUID
	ImageURL    string
	IsActive    *bool
	IsDry       bool
}

type ProductUpdateInput struct {
	Name        *string
	Slug        *string
	Description *string
	PricePerKg  *float64
	StockKg     *float64
	CategoryID  *uuid.UUID
	ImageURL    *string
	IsActive    *bool
	IsDry       *bool
}

type CutCleanOptionInput struct {
	Label     string
	IsActive  *bool
	SortOrder int
}

type CutCleanOptionUpdateInput struct {
	Label     *string
	IsActive  *bool
	SortOrder *int
}

type CatalogService struct {
	categories *repositories.CategoryRepository
	products   *repositories.ProductRepository
	cutClean   *repositories.CutCleanOptionRepository
}

func NewCatalogService(
	categories *repositories.CategoryRepository,
	products *repositories.ProductRepository,
	cutClean *repositories.CutCleanOptionRepository,
) *CatalogService {
	return &CatalogService{categories: categories, products: products, cutClean: cutClean}
}

// Categories

func (s *CatalogService) ActiveCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.ListActive(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch categories", err)
	}
	return categories, nil
}

func (s *CatalogService) AllCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch categories", err)
	}
	return categories, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	slug := strings.TrimSpace(input.Slug)
	exists, err := s.categories.SlugExists(ctx, slug)
	if err != nil {
		return nil, apperrors.Internal("Failed to check slug", err)
	}
	if exists {
		return nil, apperrors.Conflict("Slug already exists")
	}

	category := &models.Category{
		Name:        strings.TrimSpace(input.Name),
		Slug:        slug,
		Description: input.Description,
		IsActive:    true,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperrors.Internal("Failed to create category", err)
	}
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryUpdateInput) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Category not found")
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to load category", err)
	}

	if input.Slug != nil && *input.Slug != category.Slug {
		exists, err := s.categories.SlugExists(ctx, *input.Slug)
		if err != nil {
			return nil, apperrors.Internal("Failed to check slug", err)
		}
		if exists {
			return nil, apperrors.Conflict("Slug already exists")
		}
		category.Slug = *input.Slug
	}
	if input.Name != nil {
		category.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.categories.Save(ctx, category); err != nil {
		return nil, apperrors.Internal("Failed to update category", err)
	}
	return category, nil
}

// DeleteCategory refuses while the category still owns products.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categories.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("Category not found")
	}
	if err != nil {
		return apperrors.Internal("Failed to load category", err)
	}

	count, err := s.categories.ProductCount(ctx, id)
	if err != nil {
		return apperrors.Internal("Failed to count products", err)
	}
	if count > 0 {
		return apperrors.BusinessRule("Cannot delete category with products")
	}

	if err := s.categories.Delete(ctx, category); err != nil {
		return apperrors.Internal("Failed to delete category", err)
	}
	return nil
}

// Products

func (s *CatalogService) ActiveProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.ListActive(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch products", err)
	}
	return products, nil
}

func (s *CatalogService) ActiveProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.products.FindActiveBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Product not found")
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to load product", err)
	}
	return product, nil
}

func (s *CatalogService) AllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch products", err)
	}
	return products, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	slug := strings.TrimSpace(input.Slug)
	exists, err := s.products.SlugExists(ctx, slug)
	if err != nil {
		return nil, apperrors.Internal("Failed to check slug", err)
	}
	if exists {
		return nil, apperrors.Conflict("Slug already exists")
	}

	if _, err := s.categories.FindByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Validation("Invalid category")
		}
		return nil, apperrors.Internal("Failed to load category", err)
	}

	product := &models.Product{
		Name:        strings.TrimSpace(input.Name),
		Slug:        slug,
		Description: input.Description,
		PricePerKg:  input.PricePerKg,
		StockKg:     input.StockKg,
		CategoryID:  input.CategoryID,
		ImageURL:    input.ImageURL,
		IsActive:    true,
		IsDry:       input.IsDry,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.Internal("Failed to create product", err)
	}
	return s.products.FindByID(ctx, product.ID)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductUpdateInput) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Product not found")
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to load product", err)
	}

	if input.Slug != nil && *input.Slug != product.Slug {
		exists, err := s.products.SlugExists(ctx, *input.Slug)
		if err != nil {
			return nil, apperrors.Internal("Failed to check slug", err)
		}
		if exists {
			return nil, apperrors.Conflict("Slug already exists")
		}
		product.Slug = *input.Slug
	}
	if input.CategoryID != nil && *input.CategoryID != product.CategoryID {
		if _, err := s.categories.FindByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.Validation("Invalid category")
			}
			return nil, apperrors.Internal("Failed to load category", err)
		}
		product.CategoryID = *input.CategoryID
		product.Category = nil
	}
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.PricePerKg != nil {
		product.PricePerKg = *input.PricePerKg
	}
	if input.StockKg != nil {
		product.StockKg = *input.StockKg
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsDry != nil {
		product.IsDry = *input.IsDry
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, apperrors.Internal("Failed to update product", err)
	}
	return s.products.FindByID(ctx, id)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("Product not found")
	}
	if err != nil {
		return apperrors.Internal("Failed to load product", err)
	}
	if err := s.products.Delete(ctx, product); err != nil {
		return apperrors.Internal("Failed to delete product", err)
	}
	return nil
}

// Cut & clean options

func (s *CatalogService) ActiveCutCleanOptions(ctx context.Context) ([]models.CutCleanOption, error) {
	options, err := s.cutClean.ListActive(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch cut & clean options", err)
	}
	return options, nil
}

func (s *CatalogService) AllCutCleanOptions(ctx context.Context) ([]models.CutCleanOption, error) {
	options, err := s.cutClean.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch cut & clean options", err)
	}
	return options, nil
}

func (s *CatalogService) CreateCutCleanOption(ctx context.Context, input CutCleanOptionInput) (*models.CutCleanOption, error) {
	option := &models.CutCleanOption{
		Label:     strings.TrimSpace(input.Label),
		IsActive:  true,
		SortOrder: input.SortOrder,
	}
	if input.IsActive != nil {
		option.IsActive = *input.IsActive
	}
	if err := s.cutClean.Create(ctx, option); err != nil {
		return nil, apperrors.Internal("Failed to create cut & clean option", err)
	}
	return option, nil
}

func (s *CatalogService) UpdateCutCleanOption(ctx context.Context, id uuid.UUID, input CutCleanOptionUpdateInput) (*models.CutCleanOption, error) {
	option, err := s.cutClean.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Cut & clean option not found")
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to load cut & clean option", err)
	}

	if input.Label != nil {
		option.Label = strings.TrimSpace(*input.Label)
	}
	if input.IsActive != nil {
		option.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		option.SortOrder = *input.SortOrder
	}

	if err := s.cutClean.Save(ctx, option); err != nil {
		return nil, apperrors.Internal("Failed to update cut & clean option", err)
	}
	return option, nil
}

func (s *CatalogService) DeleteCutCleanOption(ctx context.Context, id uuid.UUID) error {
	option, err := s.cutClean.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("Cut & clean option not found")
	}
	if err != nil {
		return apperrors.Internal("Failed to load cut & clean option", err)
	}
	if err := s.cutClean.Delete(ctx, option); err != nil {
		return apperrors.Internal("Failed to delete cut & clean option", err)
	}
	return nil
}
