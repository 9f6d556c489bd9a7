package public

import (
	"errors"
	"strconv"

	"github.com/fixmart-next/internal/http/response"
	"github.com/fixmart-next/internal/models"
	"github.com/fixmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加车请求
type AddCartItemRequest struct {
	TargetType    string        `json:"target_type" binding:"required"`
	TargetID      uint          `json:"target_id" binding:"required"`
	Quantity      int           `json:"quantity" binding:"required"`
	OverridePrice *models.Money `json:"override_price"`
}

// UpdateCartItemRequest 购物车行项更新请求
type UpdateCartItemRequest struct {
	Quantity      int           `json:"quantity" binding:"required"`
	OverridePrice *models.Money `json:"override_price"`
	ClearOverride bool          `json:"clear_override"`
}

// cartErrorRules 购物车业务错误映射
var cartErrorRules = []struct {
	target error
	code   int
	msg    string
}{
	{service.ErrInvalidLineTarget, response.CodeBadRequest, "invalid line target"},
	{service.ErrInvalidQuantity, response.CodeBadRequest, "invalid quantity"},
	{service.ErrInvalidPrice, response.CodeBadRequest, "invalid override price"},
	{service.ErrTargetNotAvailable, response.CodeBadRequest, "target not available"},
	{service.ErrOwnershipViolation, response.CodeForbidden, "device belongs to another customer"},
	{service.ErrPriceIndeterminate, response.CodeBadRequest, "price cannot be determined"},
	{service.ErrNotFound, response.CodeNotFound, "not found"},
}

func respondCartError(c *gin.Context, err error) {
	for _, rule := range cartErrorRules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, response.CodeInternal, "cart operation failed", err)
}

// GetCart 获取购物车（实时计价）
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	view, err := h.CartService.GetCart(uid)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	view, err := h.CartService.AddItem(service.AddCartItemInput{
		UserID:        uid,
		Target:        models.LineTarget{Type: req.TargetType, ID: req.TargetID},
		Quantity:      req.Quantity,
		OverridePrice: req.OverridePrice,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateCartItem 更新购物车行项
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "invalid item id", nil)
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	view, err := h.CartService.UpdateItem(service.UpdateCartItemInput{
		UserID:        uid,
		ItemID:        uint(itemID),
		Quantity:      req.Quantity,
		OverridePrice: req.OverridePrice,
		ClearOverride: req.ClearOverride,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// RemoveCartItem 删除购物车行项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "invalid item id", nil)
		return
	}
	view, err := h.CartService.RemoveItem(uid, uint(itemID))
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}
