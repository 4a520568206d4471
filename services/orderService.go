package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tarelfish/tarel-api/apperrors"
	"github.com/tarelfish/tarel-api/models"
	"github.com/tarelfish/tarel-api/repositories"
)

type OrderLineInput struct {
	ProductID uuid.UUID
	QtyKg     float64
	CutClean  []string
}

type CreateOrderInput struct {
	Items        []OrderLineInput
	AddressLine  string
	City         string
	Postcode     string
	DeliverySlot string
}

type OrderService struct {
	db     *gorm.DB
	orders *repositories.OrderRepository
}

func NewOrderService(db *gorm.DB, orders *repositories.OrderRepository) *OrderService {
	return &OrderService{db: db, orders: orders}
}

// Create validates every line, snapshots prices, persists the order and
// decrements stock — all inside one transaction. Any failing line rejects
// the whole order with no state change.
func (s *OrderService) Create(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperrors.Validation("Order must contain at least one item")
	}
	for _, line := range input.Items {
		if line.QtyKg <= 0 {
			return nil, apperrors.Validation("Quantity must be greater than zero")
		}
	}

	var orderID uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		type pickedLine struct {
			product  models.Product
			qtyKg    float64
			cutClean []string
		}

		var picked []pickedLine
		total := 0.0
		for _, line := range input.Items {
			var product models.Product
			err := tx.Where("id = ? AND is_active = ?", line.ProductID, true).First(&product).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Validation(fmt.Sprintf("Invalid product %s", line.ProductID))
			}
			if err != nil {
				return apperrors.Internal("Failed to load product", err)
			}
			if product.StockKg < line.QtyKg {
				return apperrors.BusinessRule(fmt.Sprintf("Insufficient stock for %s", product.Name))
			}
			total += line.QtyKg * product.PricePerKg
			picked = append(picked, pickedLine{product: product, qtyKg: line.QtyKg, cutClean: line.CutClean})
		}

		order := models.Order{
			UserID:       userID,
			TotalAmount:  total,
			Status:       models.OrderStatusPending,
			DeliverySlot: strings.TrimSpace(input.DeliverySlot),
			AddressLine:  strings.TrimSpace(input.AddressLine),
			Postcode:     strings.ToUpper(strings.TrimSpace(input.Postcode)),
		}
		if city := strings.TrimSpace(input.City); city != "" {
			order.City = city
		}
		if err := tx.Create(&order).Error; err != nil {
			return apperrors.Internal("Failed to create order", err)
		}

		for _, line := range picked {
			item := models.OrderItem{
				OrderID:    order.ID,
				ProductID:  line.product.ID,
				QtyKg:      line.qtyKg,
				PricePerKg: line.product.PricePerKg,
			}
			if len(line.cutClean) > 0 {
				encoded, err := json.Marshal(line.cutClean)
				if err != nil {
					return apperrors.Internal("Failed to encode cut & clean choices", err)
				}
				item.CutClean = datatypes.JSON(encoded)
			}
			if err := tx.Create(&item).Error; err != nil {
				return apperrors.Internal("Failed to create order items", err)
			}

			result := tx.Model(&models.Product{}).
				Where("id = ?", line.product.ID).
				Update("stock_kg", gorm.Expr("stock_kg - ?", line.qtyKg))
			if result.Error != nil {
				return apperrors.Internal("Failed to adjust stock", result.Error)
			}
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.orders.FindByIDForUser(ctx, orderID, userID)
}

// Cancel restocks every line and marks the order cancelled. Cancelling an
// already-cancelled order is a no-op; dispatched orders cannot be cancelled.
func (s *OrderService) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orders.FindByIDForUser(ctx, orderID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Order not found")
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to load order", err)
	}

	switch order.Status {
	case models.OrderStatusDelivered, models.OrderStatusOutForDelivery:
		return nil, apperrors.BusinessRule("Orders already dispatched cannot be cancelled")
	case models.OrderStatusCancelled:
		return order, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			result := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock_kg", gorm.Expr("stock_kg + ?", item.QtyKg))
			if result.Error != nil {
				return apperrors.Internal("Failed to restore stock", result.Error)
			}
		}
		if err := tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("status", models.OrderStatusCancelled).Error; err != nil {
			return apperrors.Internal("Failed to cancel order", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.orders.FindByIDForUser(ctx, orderID, userID)
}

func (s *OrderService) ListMine(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch orders", err)
	}
	return orders, nil
}

func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch orders", err)
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Order not found")
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to load order", err)
	}
	return order, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	if !models.ValidOrderStatus(status) {
		return apperrors.Validation("Unknown order status")
	}
	if _, err := s.Get(ctx, orderID); err != nil {
		return err
	}
	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return apperrors.Internal("Failed to update order status", err)
	}
	return nil
}
