package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tarelfish/tarel-api/apperrors"
	"github.com/tarelfish/tarel-api/middlewares"
	"github.com/tarelfish/tarel-api/services"
)

type SupportController struct {
	support *services.SupportService
}

func NewSupportController(support *services.SupportService) *SupportController {
	return &SupportController{support: support}
}

type createSupportRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (c *SupportController) Create(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		apperrors.Respond(ctx, apperrors.Unauthenticated("Could not validate credentials"))
		return
	}

	var req createSupportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(ctx, apperrors.Validation(err.Error()))
		return
	}

	message, err := c.support.Create(ctx.Request.Context(), user.ID, req.Subject, req.Message)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, message)
}

func (c *SupportController) ListMine(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		apperrors.Respond(ctx, apperrors.Unauthenticated("Could not validate credentials"))
		return
	}

	messages, err := c.support.ListMine(ctx.Request.Context(), user.ID)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, messages)
}

func (c *SupportController) GetMine(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		apperrors.Respond(ctx, apperrors.Unauthenticated("Could not validate credentials"))
		return
	}

	messageID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		apperrors.Respond(ctx, apperrors.NotFound("Support message not found"))
		return
	}

	message, err := c.support.GetMine(ctx.Request.Context(), user.ID, messageID)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, message)
}
