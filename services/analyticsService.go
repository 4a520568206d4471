package services

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tarelfish/tarel-api/apperrors"
	"github.com/tarelfish/tarel-api/models"
	"github.com/tarelfish/tarel-api/repositories"
)

type CustomerListParams struct {
	Page     int
	PageSize int
	Sort     string
	Search   string
}

type CustomerPage struct {
	Items      []repositories.CustomerRow   `json:"items"`
	Total      int64                        `json:"total"`
	Page       int                          `json:"page"`
	PageSize   int                          `json:"page_size"`
	TotalPages int                          `json:"total_pages"`
	Metrics    repositories.CustomerMetrics `json:"metrics"`
}

type CustomerDetail struct {
	Customer repositories.CustomerRow `json:"customer"`
	Orders   OrderPage                `json:"orders"`
}

type OrderPage struct {
	Items      []models.Order `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

type VendorReportProduct struct {
	ProductName string  `json:"product_name"`
	TotalQtyKg  float64 `json:"total_qty_kg"`
}

type VendorReportInstruction struct {
	OrderID      uuid.UUID `json:"order_id"`
	CustomerName string    `json:"customer_name"`
	Notes        string    `json:"notes"`
}

type VendorReport struct {
	DeliveryDate string                    `json:"delivery_date"`
	TotalOrders  int                       `json:"total_orders"`
	TotalKg      float64                   `json:"total_kg"`
	TotalItems   int                       `json:"total_items"`
	Products     []VendorReportProduct     `json:"products"`
	Instructions []VendorReportInstruction `json:"instructions"`
}

type AnalyticsService struct {
	analytics *repositories.AnalyticsRepository
	orders    *repositories.OrderRepository
	users     *repositories.UserRepository
}

func NewAnalyticsService(
	analytics *repositories.AnalyticsRepository,
	orders *repositories.OrderRepository,
	users *repositories.UserRepository,
) *AnalyticsService {
	return &AnalyticsService{analytics: analytics, orders: orders, users: users}
}

// clampPage keeps page within [1, totalPages]; a request past the end lands
// on the last page instead of an empty one.
func clampPage(page, pageSize int, total int64) (int, int) {
	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(pageSize)))
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page, totalPages
}

func (s *AnalyticsService) ListCustomers(ctx context.Context, params CustomerListParams) (CustomerPage, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 25
	}
	if params.PageSize > 100 {
		params.PageSize = 100
	}

	metrics, err := s.analytics.CustomerMetrics(ctx, params.Search)
	if err != nil {
		return CustomerPage{}, apperrors.Internal("Failed to aggregate customers", err)
	}

	page, totalPages := clampPage(params.Page, params.PageSize, metrics.TotalCustomers)
	offset := (page - 1) * params.PageSize

	rows, err := s.analytics.CustomerPage(ctx, params.Search, params.Sort, offset, params.PageSize)
	if err != nil {
		return CustomerPage{}, apperrors.Internal("Failed to fetch customers", err)
	}
	if rows == nil {
		rows = []repositories.CustomerRow{}
	}

	return CustomerPage{
		Items:      rows,
		Total:      metrics.TotalCustomers,
		Page:       page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
		Metrics:    metrics,
	}, nil
}

func (s *AnalyticsService) CustomerDetail(ctx context.Context, customerID uuid.UUID, page, pageSize int) (CustomerDetail, error) {
	user, err := s.users.FindByID(ctx, customerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return CustomerDetail{}, apperrors.NotFound("Customer not found")
	}
	if err != nil {
		return CustomerDetail{}, apperrors.Internal("Failed to load customer", err)
	}
	if user.Role != models.RoleUser {
		return CustomerDetail{}, apperrors.NotFound("Customer not found")
	}

	orderCount, totalSpend, lastOrderAt, err := s.analytics.CustomerStats(ctx, customerID)
	if err != nil {
		return CustomerDetail{}, apperrors.Internal("Failed to aggregate customer orders", err)
	}

	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	page, totalPages := clampPage(page, pageSize, orderCount)

	orders, err := s.analytics.OrdersByUserPage(ctx, customerID, (page-1)*pageSize, pageSize)
	if err != nil {
		return CustomerDetail{}, apperrors.Internal("Failed to fetch customer orders", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}

	return CustomerDetail{
		Customer: repositories.CustomerRow{
			ID:          user.ID,
			Name:        user.Name,
			Email:       user.Email,
			CreatedAt:   user.CreatedAt,
			OrderCount:  orderCount,
			TotalSpend:  totalSpend,
			LastOrderAt: lastOrderAt,
		},
		Orders: OrderPage{
			Items:      orders,
			Total:      orderCount,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		},
	}, nil
}

// VendorReport aggregates ordered quantities per product for a delivery
// date. The slot field is free text, so the filter is a substring match on
// the date string, exactly as the admin dashboard expects.
func (s *AnalyticsService) VendorReport(ctx context.Context, deliveryDate string) (VendorReport, error) {
	if _, err := time.Parse("2006-01-02", deliveryDate); err != nil {
		return VendorReport{}, apperrors.Validation("Invalid date format. Use YYYY-MM-DD")
	}

	orders, err := s.orders.ListByDeliverySlotContains(ctx, deliveryDate)
	if err != nil {
		return VendorReport{}, apperrors.Internal("Failed to fetch orders", err)
	}

	report := VendorReport{
		DeliveryDate: deliveryDate,
		TotalOrders:  len(orders),
		Products:     []VendorReportProduct{},
		Instructions: []VendorReportInstruction{},
	}

	productTotals := map[string]float64{}
	for _, order := range orders {
		for _, item := range order.Items {
			report.TotalKg += item.QtyKg
			report.TotalItems++

			name := "Unknown Product"
			if item.Product != nil {
				name = item.Product.Name
			}
			productTotals[name] += item.QtyKg
		}

		if order.DeliverySlot != "" {
			customer := "Unknown"
			if order.User != nil {
				customer = order.User.Name
			}
			report.Instructions = append(report.Instructions, VendorReportInstruction{
				OrderID:      order.ID,
				CustomerName: customer,
				Notes:        order.DeliverySlot,
			})
		}
	}

	for name, qty := range productTotals {
		report.Products = append(report.Products, VendorReportProduct{
			ProductName: name,
			TotalQtyKg:  math.Round(qty*1000) / 1000,
		})
	}
	sort.Slice(report.Products, func(i, j int) bool {
		if report.Products[i].TotalQtyKg != report.Products[j].TotalQtyKg {
			return report.Products[i].TotalQtyKg > report.Products[j].TotalQtyKg
		}
		return report.Products[i].ProductName < report.Products[j].ProductName
	})
	report.TotalKg = math.Round(report.TotalKg*1000) / 1000

	return report, nil
}

func (s *AnalyticsService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch users", err)
	}
	return users, nil
}

func (s *AnalyticsService) ChangeUserRole(ctx context.Context, userID uuid.UUID, role string) error {
	if role != models.RoleUser && role != models.RoleAdmin {
		return apperrors.Validation("Unknown role")
	}
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("User not found")
	}
	if err != nil {
		return apperrors.Internal("Failed to load user", err)
	}
	user.Role = role
	if err := s.users.Save(ctx, user); err != nil {
		return apperrors.Internal("Failed to update user role", err)
	}
	return nil
}

// SendSalesReport validates the request, then reports the feature as not
// implemented: report mailing is not configured for this deployment. The
// typed NotImplemented error lets callers tell this apart from a failure.
func (s *AnalyticsService) SendSalesReport(ctx context.Context, email, fallbackEmail string) error {
	if strings.TrimSpace(email) == "" {
		email = fallbackEmail
	}
	if strings.TrimSpace(email) == "" {
		return apperrors.Validation("Email is required")
	}
	return apperrors.NotImplemented("Sales report email automation is not configured for this deployment")
}
