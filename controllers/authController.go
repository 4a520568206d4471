package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tarelfish/tarel-api/apperrors"
	"github.com/tarelfish/tarel-api/middlewares"
	"github.com/tarelfish/tarel-api/models"
	"github.com/tarelfish/tarel-api/services"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type registerRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Phone        string `json:"phone" binding:"required"`
	AddressLine1 string `json:"address_line1" binding:"required"`
	Locality     string `json:"locality"`
	City         string `json:"city" binding:"required"`
	Postcode     string `json:"postcode" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// userResponse is the public shape of a user record.
func userResponse(user *models.User) gin.H {
	return gin.H{
		"id":            user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"role":          user.Role,
		"phone":         user.Phone,
		"address_line1": user.AddressLine1,
		"locality":      user.Locality,
		"city":          user.City,
		"postcode":      user.Postcode,
		"user_code":     user.UserCode,
		"created_at":    user.CreatedAt,
	}
}

func (c *AuthController) Register(ctx *gin.Context) {
	var req registerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(ctx, apperrors.Validation(err.Error()))
		return
	}

	user, err := c.auth.Register(ctx.Request.Context(), services.RegisterInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		Locality:     req.Locality,
		City:         req.City,
		Postcode:     req.Postcode,
	})
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, userResponse(user))
}

func (c *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(ctx, apperrors.Validation(err.Error()))
		return
	}

	token, user, err := c.auth.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user":         userResponse(user),
	})
}

func (c *AuthController) Me(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		apperrors.Respond(ctx, apperrors.Unauthenticated("Could not validate credentials"))
		return
	}
	ctx.JSON(http.StatusOK, userResponse(user))
}

func (c *AuthController) UpdateMe(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		apperrors.Respond(ctx, apperrors.Unauthenticated("Could not validate credentials"))
		return
	}

	var req updateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(ctx, apperrors.Validation(err.Error()))
		return
	}

	updated, err := c.auth.UpdateProfile(ctx.Request.Context(), user, services.UpdateProfileInput{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, userResponse(updated))
}
