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

// AdminDeviceRequest 员工侧设备登记/更新请求（含估值、库位等内部字段）
type AdminDeviceRequest struct {
	OwnerID            uint          `json:"owner_id" binding:"required"`
	Name               string        `json:"name" binding:"required"`
	DeviceModel        string        `json:"device_model"`
	RepairPrice        *models.Money `json:"repair_price"`
	DiscountAmount     *models.Money `json:"discount_amount"`
	DiscountPercentage *float64      `json:"discount_percentage"`
	SaleStartAt        *time.Time    `json:"sale_start_at"`
	SaleEndAt          *time.Time    `json:"sale_end_at"`
	Barcode            *string       `json:"barcode"`
	IMEI               *string       `json:"imei"`
	SerialNumber       *string       `json:"serial_number"`
	Defect             string        `json:"defect"`
	Notes              string        `json:"notes"`
	Carrier            string        `json:"carrier"`
	EstimatedValue     *models.Money `json:"estimated_value"`
	Passcode           string        `json:"passcode"`
	LocationID         *uint         `json:"location_id"`
	DepartmentID       *uint         `json:"department_id"`
}

func (r AdminDeviceRequest) toInput() service.DeviceInput {
	return service.DeviceInput{
		OwnerID:            r.OwnerID,
		Name:               r.Name,
		DeviceModel:        r.DeviceModel,
		RepairPrice:        r.RepairPrice,
		DiscountAmount:     r.DiscountAmount,
		DiscountPercentage: r.DiscountPercentage,
		SaleStartAt:        r.SaleStartAt,
		SaleEndAt:          r.SaleEndAt,
		Barcode:            r.Barcode,
		IMEI:               r.IMEI,
		SerialNumber:       r.SerialNumber,
		Defect:             r.Defect,
		Notes:              r.Notes,
		Carrier:            r.Carrier,
		EstimatedValue:     r.EstimatedValue,
		Passcode:           r.Passcode,
		LocationID:         r.LocationID,
		DepartmentID:       r.DepartmentID,
	}
}

func respondAdminDeviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "invalid device input", nil)
	case errors.Is(err, service.ErrInvalidPrice):
		respondError(c, response.CodeBadRequest, "invalid price", nil)
	case errors.Is(err, service.ErrInvalidDiscountConfig):
		respondError(c, response.CodeBadRequest, "discount amount and percentage are mutually exclusive", nil)
	case errors.Is(err, service.ErrIMEITaken):
		respondError(c, response.CodeBadRequest, "imei already in use", nil)
	case errors.Is(err, service.ErrSerialNumberTaken):
		respondError(c, response.CodeBadRequest, "serial number already in use", nil)
	case errors.Is(err, service.ErrBarcodeTaken):
		respondError(c, response.CodeBadRequest, "barcode already in use", nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "not found", nil)
	default:
		respondError(c, response.CodeInternal, "device operation failed", err)
	}
}

// ListAdminDevices 设备列表（全量，可按归属用户过滤）
func (h *Handler) ListAdminDevices(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	ownerID, _ := strconv.ParseUint(c.Query("owner_id"), 10, 64)

	devices, total, err := h.DeviceService.List(repository.DeviceListFilter{
		Page:          page,
		PageSize:      pageSize,
		OwnerID:       uint(ownerID),
		Search:        c.Query("search"),
		WithRelations: true,
	})
	if err != nil {
		respondAdminDeviceError(c, err)
		return
	}
	response.SuccessWithPage(c, devices, response.NewPagination(page, pageSize, total))
}

// GetAdminDevice 设备详情
func (h *Handler) GetAdminDevice(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	device, err := h.DeviceService.Get(id)
	if err != nil {
		respondAdminDeviceError(c, err)
		return
	}
	response.Success(c, device)
}

// CreateAdminDevice 员工代客登记设备
func (h *Handler) CreateAdminDevice(c *gin.Context) {
	var req AdminDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	device, err := h.DeviceService.Create(req.toInput())
	if err != nil {
		respondAdminDeviceError(c, err)
		return
	}
	response.Success(c, device)
}

// UpdateAdminDevice 员工更新设备（含报价与折扣）
func (h *Handler) UpdateAdminDevice(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req AdminDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	device, err := h.DeviceService.Update(id, req.toInput())
	if err != nil {
		respondAdminDeviceError(c, err)
		return
	}
	response.Success(c, device)
}

// DeleteAdminDevice 员工删除设备
func (h *Handler) DeleteAdminDevice(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.DeviceService.Delete(id); err != nil {
		respondAdminDeviceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
