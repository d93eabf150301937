package utils

import (
	"fmt"

	"github.com/Trend4Media/AffenMitWaffen/internal/types"
	"github.com/gin-gonic/gin"
)

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	value, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return 0, fmt.Errorf("user not authenticated")
	}

	userID, ok := value.(uint)

	if !ok {
		return 0, fmt.Errorf("invalid user type in context")
	}

	return userID, nil
}
