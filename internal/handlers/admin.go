package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Trend4Media/AffenMitWaffen/internal/store"
	"github.com/Trend4Media/AffenMitWaffen/internal/types"
	"github.com/Trend4Media/AffenMitWaffen/internal/utils"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	Users *store.UserStore
}

type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type SetAdminRequest struct {
	IsAdmin *bool `json:"isAdmin" binding:"required"`
}

func (h *AdminHandler) ListUsers(ctx *gin.Context) {
	users, err := h.Users.ListWithSystemCounts()

	if err != nil {
		log.Printf("Failed to list users: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]types.AdminUserResponse, 0, len(users))

	for _, user := range users {
		response = append(response, types.AdminUserResponse{
			UserResponse: userResponse(&user.User),
			CreatedAt:    user.CreatedAt,
			SystemCount:  user.SystemCount,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// SetActive approves or deactivates an account. Deactivating yourself
// is allowed; only self-deletion is blocked.
func (h *AdminHandler) SetActive(ctx *gin.Context) {
	targetID, ok := h.targetUserID(ctx)

	if !ok {
		return
	}

	var body SetActiveRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.Users.SetActive(targetID, *body.IsActive)

	if err != nil {
		h.respondUserError(ctx, targetID, err)
		return
	}

	ctx.JSON(http.StatusOK, userResponse(user))
}

func (h *AdminHandler) SetAdmin(ctx *gin.Context) {
	targetID, ok := h.targetUserID(ctx)

	if !ok {
		return
	}

	var body SetAdminRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.Users.SetAdmin(targetID, *body.IsAdmin)

	if err != nil {
		h.respondUserError(ctx, targetID, err)
		return
	}

	ctx.JSON(http.StatusOK, userResponse(user))
}

// DeleteUser removes an account and all of its systems and planets.
// Admins cannot delete themselves.
func (h *AdminHandler) DeleteUser(ctx *gin.Context) {
	targetID, ok := h.targetUserID(ctx)

	if !ok {
		return
	}

	callerID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if targetID == callerID {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "You cannot delete your own account"})
		return
	}

	if err := h.Users.Delete(targetID); err != nil {
		h.respondUserError(ctx, targetID, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (h *AdminHandler) targetUserID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return 0, false
	}

	return uint(id), true
}

func (h *AdminHandler) respondUserError(ctx *gin.Context, targetID uint, err error) {
	if errors.Is(err, store.ErrUserNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	log.Printf("Admin operation on user %d failed: %v", targetID, err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
