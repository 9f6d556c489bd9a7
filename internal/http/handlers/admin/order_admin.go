package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/fixmart-next/internal/http/response"
	"github.com/fixmart-next/internal/models"
	"github.com/fixmart-next/internal/repository"
	"github.com/fixmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderStatusInvalid):
		respondError(c, response.CodeBadRequest, "invalid status transition", nil)
	case errors.Is(err, service.ErrInvalidLineTarget):
		respondError(c, response.CodeBadRequest, "invalid line target", nil)
	case errors.Is(err, service.ErrInvalidQuantity):
		respondError(c, response.CodeBadRequest, "invalid quantity", nil)
	case errors.Is(err, service.ErrPriceIndeterminate):
		respondError(c, response.CodeBadRequest, "price cannot be determined", nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "not found", nil)
	default:
		respondError(c, response.CodeInternal, "order operation failed", err)
	}
}

// ListAdminOrders 订单列表
func (h *Handler) ListAdminOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)

	orders, total, err := h.OrderService.ListOrdersForAdmin(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uint(userID),
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
	})
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetAdminOrder 订单详情
func (h *Handler) GetAdminOrder(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrderForAdmin(id)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatusRequest 订单状态更新请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateAdminOrderStatus 员工推进订单状态
func (h *Handler) UpdateAdminOrderStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	order, err := h.OrderService.UpdateOrderStatus(id, req.Status)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, order)
}

// AddOrderItemRequest 订单补录行项请求
type AddOrderItemRequest struct {
	TargetType    string        `json:"target_type" binding:"required"`
	TargetID      uint          `json:"target_id" binding:"required"`
	Quantity      int           `json:"quantity" binding:"required"`
	OverridePrice *models.Money `json:"override_price"`
}

// AddAdminOrderItem 员工向订单补录行项
func (h *Handler) AddAdminOrderItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req AddOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	order, err := h.OrderService.AddOrderItem(service.AddOrderItemInput{
		OrderID:       id,
		Target:        models.LineTarget{Type: req.TargetType, ID: req.TargetID},
		Quantity:      req.Quantity,
		OverridePrice: req.OverridePrice,
	})
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, order)
}

// UpdateOrderItemRequest 订单行项数量调整请求
type UpdateOrderItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// UpdateAdminOrderItem 员工调整订单行项数量
func (h *Handler) UpdateAdminOrderItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "invalid item id", nil)
		return
	}
	var req UpdateOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	order, err := h.OrderService.UpdateOrderItemQuantity(id, uint(itemID), req.Quantity)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, order)
}

// RemoveAdminOrderItem 员工删除订单行项
func (h *Handler) RemoveAdminOrderItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "invalid item id", nil)
		return
	}
	order, err := h.OrderService.RemoveOrderItem(id, uint(itemID))
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, order)
}
