package middleware

import (
	"net/http"
	"strings"

	"github.com/Trend4Media/AffenMitWaffen/internal/auth"
	"github.com/Trend4Media/AffenMitWaffen/internal/store"
	"github.com/Trend4Media/AffenMitWaffen/internal/types"
	"github.com/Trend4Media/AffenMitWaffen/internal/utils"
	"github.com/gin-gonic/gin"
)

// RequireAuth validates the bearer token and attaches the resolved user
// id to the request context. A missing token is 401, a token that fails
// verification is 403.
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		userID, err := tokens.Verify(parts[1])

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
			return
		}

		ctx.Set(types.ContextUserKey, userID)
		ctx.Next()
	}
}

// RequireAdmin loads the authenticated user's record and rejects
// non-administrators. Must be stacked after RequireAuth.
func RequireAdmin(users *store.UserStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, err := utils.GetCurrentUserID(ctx)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		user, err := users.FindByID(userID)

		if err != nil || !user.IsAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Administrator access required"})
			return
		}

		ctx.Next()
	}
}
