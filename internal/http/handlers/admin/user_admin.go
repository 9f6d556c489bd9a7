package admin

import (
	"strconv"
	"strings"

	"github.com/fixmart-next/internal/constants"
	"github.com/fixmart-next/internal/http/response"
	"github.com/fixmart-next/internal/models"
	"github.com/fixmart-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListAdminUsers 顾客列表
func (h *Handler) ListAdminUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	users, total, err := h.UserRepo.List(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "user list failed", err)
		return
	}
	views := make([]gin.H, 0, len(users))
	for i := range users {
		views = append(views, adminUserView(&users[i]))
	}
	response.SuccessWithPage(c, views, response.NewPagination(page, pageSize, total))
}

// GetAdminUser 顾客详情
func (h *Handler) GetAdminUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	user, err := h.UserRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "user fetch failed", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "user not found", nil)
		return
	}
	response.Success(c, adminUserView(user))
}

// UpdateUserStatusRequest 顾客状态调整请求
type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateAdminUserStatus 启用/停用顾客账号
func (h *Handler) UpdateAdminUserStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status != constants.UserStatusActive && status != constants.UserStatusDisabled {
		respondError(c, response.CodeBadRequest, "unknown status", nil)
		return
	}

	user, err := h.UserRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "user fetch failed", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "user not found", nil)
		return
	}
	user.Status = status
	if err := h.UserRepo.Update(user); err != nil {
		respondError(c, response.CodeInternal, "user update failed", err)
		return
	}
	response.Success(c, adminUserView(user))
}

func adminUserView(user *models.User) gin.H {
	return gin.H{
		"id":              user.ID,
		"email":           user.Email,
		"display_name":    user.DisplayName,
		"phone_number":    user.PhoneNumber,
		"carrier":         user.Carrier,
		"monthly_payment": user.MonthlyPayment,
		"status":          user.Status,
		"created_at":      user.CreatedAt,
	}
}
