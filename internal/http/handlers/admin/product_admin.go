package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/fixmart-next/internal/http/response"
	"github.com/fixmart-next/internal/models"
	"github.com/fixmart-next/internal/repository"
	"github.com/fixmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	Name               string        `json:"name" binding:"required"`
	Description        string        `json:"description"`
	Barcode            *string       `json:"barcode"`
	Price              models.Money  `json:"price"`
	Cost               *models.Money `json:"cost"`
	DiscountAmount     *models.Money `json:"discount_amount"`
	DiscountPercentage *float64      `json:"discount_percentage"`
	SaleStartAt        *time.Time    `json:"sale_start_at"`
	SaleEndAt          *time.Time    `json:"sale_end_at"`
	LocationID         uint          `json:"location_id" binding:"required"`
	DepartmentID       uint          `json:"department_id" binding:"required"`
	IsAvailable        *bool         `json:"is_available"`
	OnHand             *int          `json:"on_hand"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:               r.Name,
		Description:        r.Description,
		Barcode:            r.Barcode,
		Price:              r.Price,
		Cost:               r.Cost,
		DiscountAmount:     r.DiscountAmount,
		DiscountPercentage: r.DiscountPercentage,
		SaleStartAt:        r.SaleStartAt,
		SaleEndAt:          r.SaleEndAt,
		LocationID:         r.LocationID,
		DepartmentID:       r.DepartmentID,
		IsAvailable:        r.IsAvailable,
		OnHand:             r.OnHand,
	}
}

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "invalid product input", nil)
	case errors.Is(err, service.ErrInvalidPrice):
		respondError(c, response.CodeBadRequest, "invalid price", nil)
	case errors.Is(err, service.ErrInvalidDiscountConfig):
		respondError(c, response.CodeBadRequest, "discount amount and percentage are mutually exclusive", nil)
	case errors.Is(err, service.ErrBarcodeTaken):
		respondError(c, response.CodeBadRequest, "barcode already in use", nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "not found", nil)
	default:
		respondError(c, response.CodeInternal, "product operation failed", err)
	}
}

// ListAdminProducts 商品列表（含下架商品）
func (h *Handler) ListAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	locationID, _ := strconv.ParseUint(c.Query("location_id"), 10, 64)
	departmentID, _ := strconv.ParseUint(c.Query("department_id"), 10, 64)

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:          page,
		PageSize:      pageSize,
		Search:        c.Query("search"),
		Barcode:       c.Query("barcode"),
		LocationID:    uint(locationID),
		DepartmentID:  uint(departmentID),
		WithRelations: true,
	})
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetAdminProduct 商品详情
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	product, err := h.ProductService.Get(id)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	product, err := h.ProductService.Update(id, req.toInput())
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
