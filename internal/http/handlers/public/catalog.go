package public

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

// PublicProductView 公共商品响应结构（附带折后价）
type PublicProductView struct {
	models.Product
	CurrentPrice models.Money `json:"current_price"`
}

// ListProducts 商品目录浏览（仅可售商品）
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	departmentID, _ := strconv.ParseUint(c.Query("department_id"), 10, 64)

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:          page,
		PageSize:      pageSize,
		Search:        c.Query("search"),
		DepartmentID:  uint(departmentID),
		OnlyAvailable: true,
		WithRelations: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "product list failed", err)
		return
	}

	now := time.Now()
	views := make([]PublicProductView, 0, len(products))
	for _, product := range products {
		views = append(views, PublicProductView{
			Product:      product,
			CurrentPrice: currentProductPrice(product, now),
		})
	}
	response.SuccessWithPage(c, views, response.NewPagination(page, pageSize, total))
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	product, err := h.ProductService.Get(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}
	if !product.IsAvailable {
		respondError(c, response.CodeNotFound, "product not found", nil)
		return
	}
	response.Success(c, PublicProductView{
		Product:      *product,
		CurrentPrice: currentProductPrice(*product, time.Now()),
	})
}

// ListDepartments 部门列表（前台用于目录筛选）
func (h *Handler) ListDepartments(c *gin.Context) {
	departments, err := h.DepartmentService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "department list failed", err)
		return
	}
	response.Success(c, gin.H{"items": departments})
}

func currentProductPrice(product models.Product, now time.Time) models.Money {
	price, err := service.DiscountedPrice(service.SellableView{
		BasePrice:          product.Price,
		DiscountAmount:     product.DiscountAmount,
		DiscountPercentage: product.DiscountPercentage,
		SaleStartAt:        product.SaleStartAt,
		SaleEndAt:          product.SaleEndAt,
	}, now)
	if err != nil {
		return product.Price
	}
	return price
}
