package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tarelfish/tarel-api/apperrors"
	"github.com/tarelfish/tarel-api/models"
	"github.com/tarelfish/tarel-api/repositories"
)

type orderFixture struct {
	db       *gorm.DB
	service  *OrderService
	user     models.User
	salmon   models.Product
	haddock  models.Product
	category models.Category
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	db := testDB(t)

	f := &orderFixture{
		db:      db,
		service: NewOrderService(db, repositories.NewOrderRepository(db)),
	}

	f.user = models.User{
		Name:         "Nina Robertson",
		Email:        "nina@example.com",
		PasswordHash: "x",
		Role:         models.RoleUser,
		Postcode:     "EH6 6QU",
		UserCode:     "ED250001",
	}
	require.NoError(t, db.Create(&f.user).Error)

	f.category = models.Category{Name: "Fresh Fish", Slug: "fresh-fish", IsActive: true}
	require.NoError(t, db.Create(&f.category).Error)

	f.salmon = models.Product{
		Name:       "Scottish Salmon",
		Slug:       "scottish-salmon",
		PricePerKg: 18.50,
		StockKg:    10,
		IsActive:   true,
		CategoryID: f.category.ID,
	}
	require.NoError(t, db.Create(&f.salmon).Error)

	f.haddock = models.Product{
		Name:       "Smoked Haddock",
		Slug:       "smoked-haddock",
		PricePerKg: 12.00,
		StockKg:    4,
		IsActive:   true,
		CategoryID: f.category.ID,
	}
	require.NoError(t, db.Create(&f.haddock).Error)

	return f
}

func (f *orderFixture) stockOf(t *testing.T, id uuid.UUID) float64 {
	t.Helper()
	var product models.Product
	require.NoError(t, f.db.First(&product, "id = ?", id).Error)
	return product.StockKg
}

func TestCreateOrderDecrementsStockAndSnapshotsPrice(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.service.Create(ctx, f.user.ID, CreateOrderInput{
		Items: []OrderLineInput{
			{ProductID: f.salmon.ID, QtyKg: 1.5, CutClean: []string{"Filleted", "Descaled"}},
			{ProductID: f.haddock.ID, QtyKg: 2},
		},
		AddressLine:  "14 Shore Road",
		Postcode:     "eh6 6qu",
		DeliverySlot: "Saturday 2025-06-07 morning",
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.InDelta(t, 1.5*18.50+2*12.00, order.TotalAmount, 0.001)
	assert.Equal(t, "EH6 6QU", order.Postcode)
	assert.Equal(t, "Edinburgh", order.City)
	require.Len(t, order.Items, 2)

	assert.InDelta(t, 8.5, f.stockOf(t, f.salmon.ID), 0.001)
	assert.InDelta(t, 2, f.stockOf(t, f.haddock.ID), 0.001)

	var cutClean []string
	for _, item := range order.Items {
		if item.ProductID == f.salmon.ID {
			assert.InDelta(t, 18.50, item.PricePerKg, 0.001)
			require.NoError(t, json.Unmarshal(item.CutClean, &cutClean))
		}
	}
	assert.Equal(t, []string{"Filleted", "Descaled"}, cutClean)
}

func TestCreateOrderRejectsEmptyAndNonPositive(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, f.user.ID, CreateOrderInput{AddressLine: "x", Postcode: "EH1 1AA"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = f.service.Create(ctx, f.user.ID, CreateOrderInput{
		Items:       []OrderLineInput{{ProductID: f.salmon.ID, QtyKg: 0}},
		AddressLine: "x",
		Postcode:    "EH1 1AA",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestCreateOrderInsufficientStockLeavesNoTrace(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, f.user.ID, CreateOrderInput{
		Items: []OrderLineInput{
			{ProductID: f.salmon.ID, QtyKg: 1},
			{ProductID: f.haddock.ID, QtyKg: 5},
		},
		AddressLine: "14 Shore Road",
		Postcode:    "EH6 6QU",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindBusinessRule))
	assert.Contains(t, err.Error(), "Smoked Haddock")

	// Nothing was written and no stock moved.
	assert.InDelta(t, 10, f.stockOf(t, f.salmon.ID), 0.001)
	assert.InDelta(t, 4, f.stockOf(t, f.haddock.ID), 0.001)

	var count int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateOrderRejectsInactiveProduct(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	require.NoError(t, f.db.Model(&models.Product{}).
		Where("id = ?", f.salmon.ID).
		Update("is_active", false).Error)

	_, err := f.service.Create(ctx, f.user.ID, CreateOrderInput{
		Items:       []OrderLineInput{{ProductID: f.salmon.ID, QtyKg: 1}},
		AddressLine: "14 Shore Road",
		Postcode:    "EH6 6QU",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestCancelRestocksAndIsIdempotent(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.service.Create(ctx, f.user.ID, CreateOrderInput{
		Items:       []OrderLineInput{{ProductID: f.salmon.ID, QtyKg: 3}},
		AddressLine: "14 Shore Road",
		Postcode:    "EH6 6QU",
	})
	require.NoError(t, err)
	require.InDelta(t, 7, f.stockOf(t, f.salmon.ID), 0.001)

	cancelled, err := f.service.Cancel(ctx, f.user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	assert.InDelta(t, 10, f.stockOf(t, f.salmon.ID), 0.001)

	// Second cancel changes nothing.
	again, err := f.service.Cancel(ctx, f.user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, again.Status)
	assert.InDelta(t, 10, f.stockOf(t, f.salmon.ID), 0.001)
}

func TestCancelDispatchedOrderRejected(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.service.Create(ctx, f.user.ID, CreateOrderInput{
		Items:       []OrderLineInput{{ProductID: f.salmon.ID, QtyKg: 1}},
		AddressLine: "14 Shore Road",
		Postcode:    "EH6 6QU",
	})
	require.NoError(t, err)

	require.NoError(t, f.service.UpdateStatus(ctx, order.ID, models.OrderStatusOutForDelivery))

	_, err = f.service.Cancel(ctx, f.user.ID, order.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindBusinessRule))
	assert.InDelta(t, 9, f.stockOf(t, f.salmon.ID), 0.001)
}

func TestCancelSomeoneElsesOrderNotFound(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.service.Create(ctx, f.user.ID, CreateOrderInput{
		Items:       []OrderLineInput{{ProductID: f.salmon.ID, QtyKg: 1}},
		AddressLine: "14 Shore Road",
		Postcode:    "EH6 6QU",
	})
	require.NoError(t, err)

	_, err = f.service.Cancel(ctx, uuid.New(), order.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestUpdateStatusValidation(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	err := f.service.UpdateStatus(ctx, uuid.New(), "teleported")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	err = f.service.UpdateStatus(ctx, uuid.New(), models.OrderStatusPaid)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
