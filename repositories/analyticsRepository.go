package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tarelfish/tarel-api/models"
)

// Customer sort modes accepted by the admin customer listing.
const (
	CustomerSortRecentOrder = "recent_order"
	CustomerSortNameAsc     = "name_asc"
	CustomerSortNameDesc    = "name_desc"
	CustomerSortOrderCount  = "order_count"
	CustomerSortTotalSpend  = "total_spend"
)

// CustomerRow is one row of the admin customer listing: the user joined to
// their order aggregates.
type CustomerRow struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"created_at"`
	OrderCount  int64      `json:"order_count"`
	TotalSpend  float64    `json:"total_spend"`
	LastOrderAt *time.Time `json:"last_order_at"`
}

// CustomerMetrics is the aggregate header of the listing.
type CustomerMetrics struct {
	TotalCustomers int64   `json:"total_customers"`
	TotalOrders    int64   `json:"total_orders"`
	TotalRevenue   float64 `json:"total_revenue"`
}

type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) customerFilter(ctx context.Context, search string) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.User{}).
		Where("users.role = ?", models.RoleUser)
	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(users.name) LIKE ? OR LOWER(users.email) LIKE ?", pattern, pattern)
	}
	return query
}

func (r *AnalyticsRepository) CustomerMetrics(ctx context.Context, search string) (CustomerMetrics, error) {
	var metrics CustomerMetrics

	if err := r.customerFilter(ctx, search).Count(&metrics.TotalCustomers).Error; err != nil {
		return metrics, err
	}

	if err := r.customerFilter(ctx, search).
		Joins("JOIN orders ON orders.user_id = users.id").
		Count(&metrics.TotalOrders).Error; err != nil {
		return metrics, err
	}

	err := r.customerFilter(ctx, search).
		Joins("JOIN orders ON orders.user_id = users.id").
		Select("COALESCE(SUM(orders.total_amount), 0)").
		Scan(&metrics.TotalRevenue).Error
	return metrics, err
}

// CustomerPage returns one page of customers with their order aggregates,
// in the requested sort order. Offset/limit clamping is the caller's job.
func (r *AnalyticsRepository) CustomerPage(ctx context.Context, search, sort string, offset, limit int) ([]CustomerRow, error) {
	stats := r.db.Model(&models.Order{}).
		Select("user_id, COUNT(id) AS order_count, COALESCE(SUM(total_amount), 0) AS total_spend, MAX(created_at) AS last_order_at").
		Group("user_id")

	query := r.customerFilter(ctx, search).
		Select("users.id, users.name, users.email, users.created_at, "+
			"COALESCE(stats.order_count, 0) AS order_count, "+
			"COALESCE(stats.total_spend, 0) AS total_spend, "+
			"stats.last_order_at").
		Joins("LEFT JOIN (?) AS stats ON stats.user_id = users.id", stats)

	switch sort {
	case CustomerSortNameAsc:
		query = query.Order("LOWER(users.name) ASC")
	case CustomerSortNameDesc:
		query = query.Order("LOWER(users.name) DESC")
	case CustomerSortOrderCount:
		query = query.Order("order_count DESC, users.created_at DESC")
	case CustomerSortTotalSpend:
		query = query.Order("total_spend DESC, users.created_at DESC")
	default:
		query = query.Order("COALESCE(stats.last_order_at, users.created_at) DESC, users.created_at DESC")
	}

	var rows []CustomerRow
	err := query.Offset(offset).Limit(limit).Scan(&rows).Error
	return rows, err
}

// CustomerStats aggregates one customer's orders.
func (r *AnalyticsRepository) CustomerStats(ctx context.Context, userID uuid.UUID) (orderCount int64, totalSpend float64, lastOrderAt *time.Time, err error) {
	var row struct {
		OrderCount  int64
		TotalSpend  float64
		LastOrderAt *time.Time
	}
	err = r.db.WithContext(ctx).Model(&models.Order{}).
		Select("COUNT(id) AS order_count, COALESCE(SUM(total_amount), 0) AS total_spend, MAX(created_at) AS last_order_at").
		Where("user_id = ?", userID).
		Scan(&row).Error
	return row.OrderCount, row.TotalSpend, row.LastOrderAt, err
}

func (r *AnalyticsRepository) CountOrdersByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *AnalyticsRepository) OrdersByUserPage(ctx context.Context, userID uuid.UUID, offset, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	return orders, err
}
