package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/fixmart-next/internal/http/response"
	"github.com/fixmart-next/internal/repository"
	"github.com/fixmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// Checkout 结算购物车为订单
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.PlaceOrder(uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			respondError(c, response.CodeBadRequest, "cart is empty", nil)
		case errors.Is(err, service.ErrInvalidQuantity):
			respondError(c, response.CodeBadRequest, "invalid quantity", nil)
		case errors.Is(err, service.ErrPriceIndeterminate):
			respondError(c, response.CodeBadRequest, "price cannot be determined", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeBadRequest, "cart contains unavailable target", nil)
		default:
			respondError(c, response.CodeInternal, "checkout failed", err)
		}
		return
	}
	response.Success(c, order)
}

// ListOrders 我的订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListOrdersByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "order list failed", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrder 我的订单详情；支持按 ID 或订单号查询
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	key := strings.TrimSpace(c.Param("id"))

	var err error
	var order interface{}
	if id, parseErr := strconv.ParseUint(key, 10, 64); parseErr == nil && id > 0 {
		order, err = h.OrderService.GetOrderByUser(uint(id), uid)
	} else {
		order, err = h.OrderService.GetOrderByUserOrderNo(key, uid)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOwnershipViolation):
			respondError(c, response.CodeForbidden, "order belongs to another customer", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		default:
			respondError(c, response.CodeInternal, "order fetch failed", err)
		}
		return
	}
	response.Success(c, order)
}

// CancelOrder 取消我的订单
func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	order, err := h.OrderService.CancelOrder(uint(id), uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOwnershipViolation):
			respondError(c, response.CodeForbidden, "order belongs to another customer", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "order can no longer be cancelled", nil)
		default:
			respondError(c, response.CodeInternal, "order cancel failed", err)
		}
		return
	}
	response.Success(c, order)
}
