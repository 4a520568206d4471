package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarelfish/tarel-api/apperrors"
	"github.com/tarelfish/tarel-api/repositories"
)

func newCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	db := testDB(t)
	return NewCatalogService(
		repositories.NewCategoryRepository(db),
		repositories.NewProductRepository(db),
		repositories.NewCutCleanOptionRepository(db),
	)
}

func TestCategoryCRUD(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, CategoryInput{Name: "Fresh Fish", Slug: "fresh-fish"})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	_, err = svc.CreateCategory(ctx, CategoryInput{Name: "Other", Slug: "fresh-fish"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	inactive := false
	updated, err := svc.UpdateCategory(ctx, created.ID, CategoryUpdateInput{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	active, err := svc.ActiveCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.AllCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.DeleteCategory(ctx, created.ID))
	err = svc.DeleteCategory(ctx, created.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestDeleteCategoryWithProductsRefused(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CategoryInput{Name: "Fresh Fish", Slug: "fresh-fish"})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, ProductInput{
		Name:       "Scottish Salmon",
		Slug:       "scottish-salmon",
		PricePerKg: 18.5,
		StockKg:    10,
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	err = svc.DeleteCategory(ctx, category.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindBusinessRule))
}

func TestProductLifecycle(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CategoryInput{Name: "Fresh Fish", Slug: "fresh-fish"})
	require.NoError(t, err)

	product, err := svc.CreateProduct(ctx, ProductInput{
		Name:       "Scottish Salmon",
		Slug:       "scottish-salmon",
		PricePerKg: 18.5,
		StockKg:    10,
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.True(t, product.IsActive)

	_, err = svc.CreateProduct(ctx, ProductInput{
		Name:       "Dup",
		Slug:       "scottish-salmon",
		PricePerKg: 1,
		CategoryID: category.ID,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	_, err = svc.CreateProduct(ctx, ProductInput{
		Name:       "Orphan",
		Slug:       "orphan",
		PricePerKg: 1,
		CategoryID: uuid.New(),
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	price := 21.0
	updated, err := svc.UpdateProduct(ctx, product.ID, ProductUpdateInput{PricePerKg: &price})
	require.NoError(t, err)
	assert.InDelta(t, 21.0, updated.PricePerKg, 0.001)
	assert.Equal(t, "Scottish Salmon", updated.Name)

	bySlug, err := svc.ActiveProductBySlug(ctx, "scottish-salmon")
	require.NoError(t, err)
	assert.Equal(t, product.ID, bySlug.ID)

	inactive := false
	_, err = svc.UpdateProduct(ctx, product.ID, ProductUpdateInput{IsActive: &inactive})
	require.NoError(t, err)

	_, err = svc.ActiveProductBySlug(ctx, "scottish-salmon")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))
}

func TestCutCleanOptionsOrdering(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.CreateCutCleanOption(ctx, CutCleanOptionInput{Label: "Filleted", SortOrder: 2})
	require.NoError(t, err)
	_, err = svc.CreateCutCleanOption(ctx, CutCleanOptionInput{Label: "Descaled", SortOrder: 1})
	require.NoError(t, err)
	hidden := false
	gutted, err := svc.CreateCutCleanOption(ctx, CutCleanOptionInput{Label: "Gutted", SortOrder: 3, IsActive: &hidden})
	require.NoError(t, err)

	active, err := svc.ActiveCutCleanOptions(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Descaled", active[0].Label)
	assert.Equal(t, "Filleted", active[1].Label)

	all, err := svc.AllCutCleanOptions(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	label := "Gutted and cleaned"
	updated, err := svc.UpdateCutCleanOption(ctx, gutted.ID, CutCleanOptionUpdateInput{Label: &label})
	require.NoError(t, err)
	assert.Equal(t, "Gutted and cleaned", updated.Label)

	require.NoError(t, svc.DeleteCutCleanOption(ctx, gutted.ID))
}
