package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tarelfish/tarel-api/apperrors"
	"github.com/tarelfish/tarel-api/middlewares"
	"github.com/tarelfish/tarel-api/services"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

type orderLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	QtyKg     float64   `json:"qty_kg" binding:"required"`
	CutClean  []string  `json:"cut_clean"`
}

type createOrderRequest struct {
	Items        []orderLineRequest `json:"items" binding:"required"`
	AddressLine  string             `json:"address_line" binding:"required"`
	City         string             `json:"city"`
	Postcode     string             `json:"postcode" binding:"required"`
	DeliverySlot string             `json:"delivery_slot"`
}

func (c *OrderController) Create(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		apperrors.Respond(ctx, apperrors.Unauthenticated("Could not validate credentials"))
		return
	}

	var req createOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(ctx, apperrors.Validation(err.Error()))
		return
	}

	input := services.CreateOrderInput{
		AddressLine:  req.AddressLine,
		City:         req.City,
		Postcode:     req.Postcode,
		DeliverySlot: req.DeliverySlot,
	}
	for _, line := range req.Items {
		input.Items = append(input.Items, services.OrderLineInput{
			ProductID: line.ProductID,
			QtyKg:     line.QtyKg,
			CutClean:  line.CutClean,
		})
	}

	order, err := c.orders.Create(ctx.Request.Context(), user.ID, input)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, order)
}

func (c *OrderController) ListMine(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		apperrors.Respond(ctx, apperrors.Unauthenticated("Could not validate credentials"))
		return
	}

	orders, err := c.orders.ListMine(ctx.Request.Context(), user.ID)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

func (c *OrderController) Cancel(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		apperrors.Respond(ctx, apperrors.Unauthenticated("Could not validate credentials"))
		return
	}

	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		apperrors.Respond(ctx, apperrors.NotFound("Order not found"))
		return
	}

	order, err := c.orders.Cancel(ctx.Request.Context(), user.ID, orderID)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, order)
}
