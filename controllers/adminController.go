package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tarelfish/tarel-api/apperrors"
	"github.com/tarelfish/tarel-api/config"
	"github.com/tarelfish/tarel-api/services"
)

// AdminController groups the console endpoints: customer analytics, order
// management, support triage, site settings and reporting.
type AdminController struct {
	analytics *services.AnalyticsService
	orders    *services.OrderService
	support   *services.SupportService
	settings  *services.SettingsService
	cfg       *config.Config
}

func NewAdminController(
	analytics *services.AnalyticsService,
	orders *services.OrderService,
	support *services.SupportService,
	settings *services.SettingsService,
	cfg *config.Config,
) *AdminController {
	return &AdminController{
		analytics: analytics,
		orders:    orders,
		support:   support,
		settings:  settings,
		cfg:       cfg,
	}
}

func intQuery(ctx *gin.Context, name string, fallback int) int {
	raw := ctx.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func (c *AdminController) ListCustomers(ctx *gin.Context) {
	page, err := c.analytics.ListCustomers(ctx.Request.Context(), services.CustomerListParams{
		Page:     intQuery(ctx, "page", 1),
		PageSize: intQuery(ctx, "page_size", 25),
		Sort:     ctx.Query("sort"),
		Search:   ctx.Query("search"),
	})
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

func (c *AdminController) GetCustomer(ctx *gin.Context) {
	customerID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		apperrors.Respond(ctx, apperrors.NotFound("Customer not found"))
		return
	}

	detail, err := c.analytics.CustomerDetail(
		ctx.Request.Context(),
		customerID,
		intQuery(ctx, "page", 1),
		intQuery(ctx, "page_size", 10),
	)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.analytics.ListUsers(ctx.Request.Context())
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (c *AdminController) ChangeUserRole(ctx *gin.Context) {
	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		apperrors.Respond(ctx, apperrors.NotFound("User not found"))
		return
	}

	var req changeRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(ctx, apperrors.Validation(err.Error()))
		return
	}

	if err := c.analytics.ChangeUserRole(ctx.Request.Context(), userID, req.Role); err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"detail": "Role updated"})
}

func (c *AdminController) ListOrders(ctx *gin.Context) {
	orders, err := c.orders.ListAll(ctx.Request.Context())
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

func (c *AdminController) GetOrder(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		apperrors.Respond(ctx, apperrors.NotFound("Order not found"))
		return
	}

	order, err := c.orders.Get(ctx.Request.Context(), orderID)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, order)
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (c *AdminController) UpdateOrderStatus(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		apperrors.Respond(ctx, apperrors.NotFound("Order not found"))
		return
	}

	var req updateOrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(ctx, apperrors.Validation(err.Error()))
		return
	}

	if err := c.orders.UpdateStatus(ctx.Request.Context(), orderID, req.Status); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	order, err := c.orders.Get(ctx.Request.Context(), orderID)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, order)
}

func (c *AdminController) ListSupportMessages(ctx *gin.Context) {
	messages, err := c.support.ListAll(ctx.Request.Context())
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, messages)
}

type respondSupportRequest struct {
	Status   string  `json:"status" binding:"required"`
	Response *string `json:"response"`
}

func (c *AdminController) RespondSupportMessage(ctx *gin.Context) {
	messageID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		apperrors.Respond(ctx, apperrors.NotFound("Support message not found"))
		return
	}

	var req respondSupportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(ctx, apperrors.Validation(err.Error()))
		return
	}

	message, err := c.support.Respond(ctx.Request.Context(), messageID, req.Status, req.Response)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, message)
}

func (c *AdminController) GetNextDelivery(ctx *gin.Context) {
	delivery, err := c.settings.GetNextDelivery(ctx.Request.Context())
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, delivery)
}

type nextDeliveryRequest struct {
	ScheduledFor *string `json:"scheduled_for"`
	CutoffAt     *string `json:"cutoff_at"`
	WindowLabel  *string `json:"window_label"`
}

func (c *AdminController) SetNextDelivery(ctx *gin.Context) {
	var req nextDeliveryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(ctx, apperrors.Validation(err.Error()))
		return
	}

	delivery, err := c.settings.SetNextDelivery(ctx.Request.Context(), req.ScheduledFor, req.CutoffAt, req.WindowLabel)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, delivery)
}

func (c *AdminController) VendorReport(ctx *gin.Context) {
	report, err := c.analytics.VendorReport(ctx.Request.Context(), ctx.Query("delivery_date"))
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, report)
}

type salesReportRequest struct {
	Email string `json:"email"`
}

func (c *AdminController) SendSalesReport(ctx *gin.Context) {
	var req salesReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		apperrors.Respond(ctx, apperrors.Validation(err.Error()))
		return
	}

	if err := c.analytics.SendSalesReport(ctx.Request.Context(), req.Email, c.cfg.ReportEmail); err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"detail": "Sales report sent"})
}
