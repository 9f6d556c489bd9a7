package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/fixmart-next/internal/constants"
	"github.com/fixmart-next/internal/http/response"
	"github.com/fixmart-next/internal/models"
	"github.com/fixmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 员工登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StaffLogin 员工登录
func (h *Handler) StaffLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeUnauthorized, "invalid username or password", nil)
			return
		}
		respondError(c, response.CodeInternal, "login failed", err)
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
		"user":       staffView(admin),
	})
}

// GetStaffProfile 当前员工信息
func (h *Handler) GetStaffProfile(c *gin.Context) {
	staffID, ok := getStaffID(c)
	if !ok {
		return
	}
	admin, err := h.AdminRepo.GetByID(staffID)
	if err != nil {
		respondError(c, response.CodeInternal, "profile fetch failed", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "staff not found", nil)
		return
	}
	roles, err := h.AuthzService.GetStaffRoles(admin.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "roles fetch failed", err)
		return
	}
	view := staffView(admin)
	view["roles"] = roles
	response.Success(c, view)
}

// ChangeStaffPasswordRequest 员工改密请求
type ChangeStaffPasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangeStaffPassword 员工修改密码
func (h *Handler) ChangeStaffPassword(c *gin.Context) {
	staffID, ok := getStaffID(c)
	if !ok {
		return
	}
	var req ChangeStaffPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if err := h.AuthService.ChangePassword(staffID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeBadRequest, "old password incorrect", nil)
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeBadRequest, "new password too short", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "staff not found", nil)
		default:
			respondError(c, response.CodeInternal, "password change failed", err)
		}
		return
	}
	response.Success(c, gin.H{"changed": true})
}

// ListStaff 员工账号列表
func (h *Handler) ListStaff(c *gin.Context) {
	admins, err := h.AdminRepo.List()
	if err != nil {
		respondError(c, response.CodeInternal, "staff list failed", err)
		return
	}
	views := make([]gin.H, 0, len(admins))
	for i := range admins {
		views = append(views, staffView(&admins[i]))
	}
	response.Success(c, gin.H{"items": views})
}

// CreateStaffRequest 新建员工账号请求
type CreateStaffRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// CreateStaff 新建员工账号并分配角色
func (h *Handler) CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || len(req.Password) < 8 {
		respondError(c, response.CodeBadRequest, "username and an 8+ character password are required", nil)
		return
	}

	exist, err := h.AdminRepo.GetByUsername(username)
	if err != nil {
		respondError(c, response.CodeInternal, "staff create failed", err)
		return
	}
	if exist != nil {
		respondError(c, response.CodeBadRequest, "username already taken", nil)
		return
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = constants.StaffRoleClerk
	}
	if role != constants.StaffRoleClerk && role != constants.StaffRoleManager {
		respondError(c, response.CodeBadRequest, "unknown role", nil)
		return
	}

	hashed, err := h.AuthService.HashPassword(req.Password)
	if err != nil {
		respondError(c, response.CodeInternal, "staff create failed", err)
		return
	}
	admin := &models.Admin{
		Username:     username,
		PasswordHash: hashed,
		Role:         role,
	}
	if err := h.AdminRepo.Create(admin); err != nil {
		respondError(c, response.CodeInternal, "staff create failed", err)
		return
	}
	if err := h.AuthzService.SetStaffRoles(admin.ID, []string{role}); err != nil {
		respondError(c, response.CodeInternal, "staff role assign failed", err)
		return
	}
	response.Success(c, staffView(admin))
}

// SetStaffRoleRequest 调整员工角色请求
type SetStaffRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// SetStaffRole 调整员工角色
func (h *Handler) SetStaffRole(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid staff id", nil)
		return
	}
	var req SetStaffRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	role := strings.TrimSpace(req.Role)
	if role != constants.StaffRoleClerk && role != constants.StaffRoleManager {
		respondError(c, response.CodeBadRequest, "unknown role", nil)
		return
	}

	admin, err := h.AdminRepo.GetByID(uint(id))
	if err != nil {
		respondError(c, response.CodeInternal, "staff fetch failed", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "staff not found", nil)
		return
	}

	admin.Role = role
	if err := h.AdminRepo.Update(admin); err != nil {
		respondError(c, response.CodeInternal, "staff update failed", err)
		return
	}
	if err := h.AuthzService.SetStaffRoles(admin.ID, []string{role}); err != nil {
		respondError(c, response.CodeInternal, "staff role assign failed", err)
		return
	}
	response.Success(c, staffView(admin))
}

func staffView(admin *models.Admin) gin.H {
	return gin.H{
		"id":            admin.ID,
		"username":      admin.Username,
		"role":          admin.Role,
		"is_super":      admin.IsSuper,
		"last_login_at": admin.LastLoginAt,
		"created_at":    admin.CreatedAt,
	}
}
