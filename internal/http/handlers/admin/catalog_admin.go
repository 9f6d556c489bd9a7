package admin

import (
	"errors"
	"strconv"

	"github.com/fixmart-next/internal/http/response"
	"github.com/fixmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// LocationRequest 库位请求
type LocationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// DepartmentRequest 部门请求
type DepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsTaxable   bool   `json:"is_taxable"`
}

func respondCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "name is required", nil)
	case errors.Is(err, service.ErrNameTaken):
		respondError(c, response.CodeBadRequest, "name already in use", nil)
	case errors.Is(err, service.ErrLocationInUse):
		respondError(c, response.CodeBadRequest, "location still referenced by products", nil)
	case errors.Is(err, service.ErrDepartmentInUse):
		respondError(c, response.CodeBadRequest, "department still referenced by products", nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "not found", nil)
	default:
		respondError(c, response.CodeInternal, "catalog operation failed", err)
	}
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}

// ListLocations 库位列表
func (h *Handler) ListLocations(c *gin.Context) {
	locations, err := h.LocationService.List()
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, gin.H{"items": locations})
}

// CreateLocation 创建库位
func (h *Handler) CreateLocation(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	location, err := h.LocationService.Create(req.Name, req.Description)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, location)
}

// UpdateLocation 更新库位
func (h *Handler) UpdateLocation(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	location, err := h.LocationService.Update(id, req.Name, req.Description)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, location)
}

// DeleteLocation 删除库位
func (h *Handler) DeleteLocation(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.LocationService.Delete(id); err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ListAdminDepartments 部门列表
func (h *Handler) ListAdminDepartments(c *gin.Context) {
	departments, err := h.DepartmentService.List()
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, gin.H{"items": departments})
}

// CreateDepartment 创建部门
func (h *Handler) CreateDepartment(c *gin.Context) {
	var req DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	department, err := h.DepartmentService.Create(service.DepartmentInput{
		Name:        req.Name,
		Description: req.Description,
		IsTaxable:   req.IsTaxable,
	})
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, department)
}

// UpdateDepartment 更新部门（含计税开关）
func (h *Handler) UpdateDepartment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	department, err := h.DepartmentService.Update(id, service.DepartmentInput{
		Name:        req.Name,
		Description: req.Description,
		IsTaxable:   req.IsTaxable,
	})
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, department)
}

// DeleteDepartment 删除部门
func (h *Handler) DeleteDepartment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.DepartmentService.Delete(id); err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
