package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/tarelfish/tarel-api/apperrors"
)

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := CurrentUser(ctx)
		if !ok {
			apperrors.Respond(ctx, apperrors.Unauthenticated("Could not validate credentials"))
			return
		}
		if !user.IsAdmin() {
			apperrors.Respond(ctx, apperrors.Forbidden("Admin privileges required"))
			return
		}
		ctx.Next()
	}
}
