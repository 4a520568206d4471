package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tarelfish/tarel-api/apperrors"
	"github.com/tarelfish/tarel-api/models"
	"github.com/tarelfish/tarel-api/services"
)

const userContextKey = "user"

// RequireAuth resolves the bearer token to a stored user and stashes it in
// the request context. Every failure mode gets the same 401.
func RequireAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			apperrors.Respond(ctx, apperrors.Unauthenticated("Could not validate credentials"))
			return
		}

		user, err := auth.CurrentUser(ctx.Request.Context(), token)
		if err != nil {
			apperrors.Respond(ctx, err)
			return
		}

		ctx.Set(userContextKey, user)
		ctx.Next()
	}
}

// CurrentUser pulls the authenticated user placed by RequireAuth.
func CurrentUser(ctx *gin.Context) (*models.User, bool) {
	value, exists := ctx.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
