package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tarelfish/tarel-api/apperrors"
	"github.com/tarelfish/tarel-api/models"
	"github.com/tarelfish/tarel-api/repositories"
)

type analyticsFixture struct {
	db      *gorm.DB
	service *AnalyticsService
	orders  *OrderService
	admin   models.User
	alice   models.User
	bob     models.User
	product models.Product
}

func newAnalyticsFixture(t *testing.T) *analyticsFixture {
	t.Helper()
	db := testDB(t)

	f := &analyticsFixture{
		db: db,
		service: NewAnalyticsService(
			repositories.NewAnalyticsRepository(db),
			repositories.NewOrderRepository(db),
			repositories.NewUserRepository(db),
		),
		orders: NewOrderService(db, repositories.NewOrderRepository(db)),
	}

	f.admin = models.User{Name: "Admin", Email: "admin@tarel.local", PasswordHash: "x", Role: models.RoleAdmin, UserCode: "ED250001"}
	f.alice = models.User{Name: "Alice Munro", Email: "alice@example.com", PasswordHash: "x", Role: models.RoleUser, UserCode: "ED250002"}
	f.bob = models.User{Name: "Bob Tait", Email: "bob@example.com", PasswordHash: "x", Role: models.RoleUser, UserCode: "GL250003"}
	for _, u := range []*models.User{&f.admin, &f.alice, &f.bob} {
		require.NoError(t, db.Create(u).Error)
	}

	category := models.Category{Name: "Fresh Fish", Slug: "fresh-fish", IsActive: true}
	require.NoError(t, db.Create(&category).Error)
	f.product = models.Product{
		Name:       "Scottish Salmon",
		Slug:       "scottish-salmon",
		PricePerKg: 20,
		StockKg:    100,
		IsActive:   true,
		CategoryID: category.ID,
	}
	require.NoError(t, db.Create(&f.product).Error)

	return f
}

func (f *analyticsFixture) placeOrder(t *testing.T, userID uuid.UUID, qty float64, slot string) *models.Order {
	t.Helper()
	order, err := f.orders.Create(context.Background(), userID, CreateOrderInput{
		Items:        []OrderLineInput{{ProductID: f.product.ID, QtyKg: qty}},
		AddressLine:  "14 Shore Road",
		Postcode:     "EH6 6QU",
		DeliverySlot: slot,
	})
	require.NoError(t, err)
	return order
}

func TestListCustomersMetricsAndSearch(t *testing.T) {
	f := newAnalyticsFixture(t)
	ctx := context.Background()

	f.placeOrder(t, f.alice.ID, 2, "")
	f.placeOrder(t, f.alice.ID, 1, "")
	f.placeOrder(t, f.bob.ID, 3, "")

	page, err := f.service.ListCustomers(ctx, CustomerListParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Metrics.TotalCustomers)
	assert.EqualValues(t, 3, page.Metrics.TotalOrders)
	assert.InDelta(t, 120, page.Metrics.TotalRevenue, 0.001)
	assert.Len(t, page.Items, 2)

	// Admins never show up as customers.
	for _, row := range page.Items {
		assert.NotEqual(t, f.admin.ID, row.ID)
	}

	filtered, err := f.service.ListCustomers(ctx, CustomerListParams{Search: "ALICE"})
	require.NoError(t, err)
	require.Len(t, filtered.Items, 1)
	assert.Equal(t, f.alice.ID, filtered.Items[0].ID)
	assert.EqualValues(t, 2, filtered.Items[0].OrderCount)
	assert.InDelta(t, 60, filtered.Items[0].TotalSpend, 0.001)
}

func TestListCustomersClampsPage(t *testing.T) {
	f := newAnalyticsFixture(t)
	ctx := context.Background()

	page, err := f.service.ListCustomers(ctx, CustomerListParams{Page: 99, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 1)

	// No customers at all: the requested page is passed through unclamped
	// because there is no last page to land on.
	require.NoError(t, f.db.Where("role = ?", models.RoleUser).Delete(&models.User{}).Error)
	empty, err := f.service.ListCustomers(ctx, CustomerListParams{Page: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, empty.Page)
	assert.Equal(t, 0, empty.TotalPages)
	assert.Empty(t, empty.Items)
}

func TestListCustomersSortByName(t *testing.T) {
	f := newAnalyticsFixture(t)

	page, err := f.service.ListCustomers(context.Background(), CustomerListParams{Sort: repositories.CustomerSortNameAsc})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Alice Munro", page.Items[0].Name)
	assert.Equal(t, "Bob Tait", page.Items[1].Name)
}

func TestCustomerDetail(t *testing.T) {
	f := newAnalyticsFixture(t)
	ctx := context.Background()

	f.placeOrder(t, f.alice.ID, 2, "")
	f.placeOrder(t, f.alice.ID, 1, "")

	detail, err := f.service.CustomerDetail(ctx, f.alice.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, detail.Customer.ID)
	assert.EqualValues(t, 2, detail.Customer.OrderCount)
	assert.InDelta(t, 60, detail.Customer.TotalSpend, 0.001)
	assert.Len(t, detail.Orders.Items, 2)
	assert.Equal(t, 1, detail.Orders.TotalPages)
}

func TestCustomerDetailHidesNonCustomers(t *testing.T) {
	f := newAnalyticsFixture(t)
	ctx := context.Background()

	_, err := f.service.CustomerDetail(ctx, f.admin.ID, 1, 10)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	_, err = f.service.CustomerDetail(ctx, uuid.New(), 1, 10)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestVendorReport(t *testing.T) {
	f := newAnalyticsFixture(t)
	ctx := context.Background()

	f.placeOrder(t, f.alice.ID, 2.5, "2025-06-14 morning")
	f.placeOrder(t, f.bob.ID, 1, "Saturday 2025-06-14 afternoon")
	f.placeOrder(t, f.bob.ID, 4, "2025-06-21 morning")

	report, err := f.service.VendorReport(ctx, "2025-06-14")
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalOrders)
	assert.Equal(t, 2, report.TotalItems)
	assert.InDelta(t, 3.5, report.TotalKg, 0.001)
	require.Len(t, report.Products, 1)
	assert.Equal(t, "Scottish Salmon", report.Products[0].ProductName)
	assert.InDelta(t, 3.5, report.Products[0].TotalQtyKg, 0.001)
	assert.Len(t, report.Instructions, 2)
}

func TestVendorReportRejectsBadDate(t *testing.T) {
	f := newAnalyticsFixture(t)

	_, err := f.service.VendorReport(context.Background(), "14/06/2025")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestChangeUserRole(t *testing.T) {
	f := newAnalyticsFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.ChangeUserRole(ctx, f.alice.ID, models.RoleAdmin))

	var reloaded models.User
	require.NoError(t, f.db.First(&reloaded, "id = ?", f.alice.ID).Error)
	assert.Equal(t, models.RoleAdmin, reloaded.Role)

	err := f.service.ChangeUserRole(ctx, f.bob.ID, "superuser")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	err = f.service.ChangeUserRole(ctx, uuid.New(), models.RoleUser)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestSendSalesReport(t *testing.T) {
	f := newAnalyticsFixture(t)
	ctx := context.Background()

	err := f.service.SendSalesReport(ctx, "vendor@example.com", "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotImplemented))

	err = f.service.SendSalesReport(ctx, "", "fallback@example.com")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotImplemented))

	err = f.service.SendSalesReport(ctx, "", "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}
