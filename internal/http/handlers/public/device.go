package public

import (
	"errors"
	"strconv"
	"time"

	"github.com/fixmart-next/internal/http/response"
	"github.com/fixmart-next/internal/models"
	"github.com/fixmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// DeviceRequest 顾客设备登记/更新请求
type DeviceRequest struct {
	Name         string        `json:"name" binding:"required"`
	DeviceModel  string        `json:"device_model"`
	Barcode      *string       `json:"barcode"`
	IMEI         *string       `json:"imei"`
	SerialNumber *string       `json:"serial_number"`
	Defect       string        `json:"defect"`
	Notes        string        `json:"notes"`
	Carrier      string        `json:"carrier"`
	Passcode     string        `json:"passcode"`
	RepairPrice  *models.Money `json:"repair_price"`
}

func respondDeviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "invalid device input", nil)
	case errors.Is(err, service.ErrInvalidPrice):
		respondError(c, response.CodeBadRequest, "invalid price", nil)
	case errors.Is(err, service.ErrInvalidDiscountConfig):
		respondError(c, response.CodeBadRequest, "invalid discount config", nil)
	case errors.Is(err, service.ErrIMEITaken):
		respondError(c, response.CodeBadRequest, "imei already registered", nil)
	case errors.Is(err, service.ErrSerialNumberTaken):
		respondError(c, response.CodeBadRequest, "serial number already registered", nil)
	case errors.Is(err, service.ErrBarcodeTaken):
		respondError(c, response.CodeBadRequest, "barcode already registered", nil)
	case errors.Is(err, service.ErrOwnershipViolation):
		respondError(c, response.CodeForbidden, "device belongs to another customer", nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "device not found", nil)
	default:
		respondError(c, response.CodeInternal, "device operation failed", err)
	}
}

// ListMyDevices 我的设备列表
func (h *Handler) ListMyDevices(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	devices, total, err := h.DeviceService.ListByOwner(uid, page, pageSize)
	if err != nil {
		respondDeviceError(c, err)
		return
	}
	response.SuccessWithPage(c, deviceViews(devices), response.NewPagination(page, pageSize, total))
}

// GetMyDevice 我的设备详情
func (h *Handler) GetMyDevice(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid device id", nil)
		return
	}
	device, err := h.DeviceService.GetOwned(uint(id), uid)
	if err != nil {
		respondDeviceError(c, err)
		return
	}
	response.Success(c, deviceView(device))
}

// CreateMyDevice 登记我的维修设备
func (h *Handler) CreateMyDevice(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req DeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	device, err := h.DeviceService.Create(service.DeviceInput{
		OwnerID:      uid,
		Name:         req.Name,
		DeviceModel:  req.DeviceModel,
		Barcode:      req.Barcode,
		IMEI:         req.IMEI,
		SerialNumber: req.SerialNumber,
		Defect:       req.Defect,
		Notes:        req.Notes,
		Carrier:      req.Carrier,
		Passcode:     req.Passcode,
		RepairPrice:  req.RepairPrice,
	})
	if err != nil {
		respondDeviceError(c, err)
		return
	}
	response.Success(c, deviceView(device))
}

// UpdateMyDevice 更新我的设备信息
func (h *Handler) UpdateMyDevice(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid device id", nil)
		return
	}
	var req DeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	device, err := h.DeviceService.UpdateOwned(uint(id), uid, service.DeviceInput{
		Name:         req.Name,
		DeviceModel:  req.DeviceModel,
		Barcode:      req.Barcode,
		IMEI:         req.IMEI,
		SerialNumber: req.SerialNumber,
		Defect:       req.Defect,
		Notes:        req.Notes,
		Carrier:      req.Carrier,
		Passcode:     req.Passcode,
		RepairPrice:  req.RepairPrice,
	})
	if err != nil {
		respondDeviceError(c, err)
		return
	}
	response.Success(c, deviceView(device))
}

// DeleteMyDevice 删除我的设备
func (h *Handler) DeleteMyDevice(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid device id", nil)
		return
	}
	if err := h.DeviceService.DeleteOwned(uint(id), uid); err != nil {
		respondDeviceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// deviceView 顾客侧设备视图；估值、成本等员工字段不外露
func deviceView(device *models.Device) gin.H {
	view := gin.H{
		"id":            device.ID,
		"name":          device.Name,
		"device_model":  device.DeviceModel,
		"repair_price":  device.RepairPrice,
		"current_price": currentDevicePrice(device, time.Now()),
		"barcode":       device.Barcode,
		"imei":          device.IMEI,
		"serial_number": device.SerialNumber,
		"defect":        device.Defect,
		"notes":         device.Notes,
		"carrier":       device.Carrier,
		"created_at":    device.CreatedAt,
	}
	return view
}

func deviceViews(devices []models.Device) []gin.H {
	views := make([]gin.H, 0, len(devices))
	for i := range devices {
		views = append(views, deviceView(&devices[i]))
	}
	return views
}

func currentDevicePrice(device *models.Device, now time.Time) *models.Money {
	if device.RepairPrice == nil {
		return nil
	}
	price, err := service.DiscountedPrice(service.SellableView{
		BasePrice:          *device.RepairPrice,
		DiscountAmount:     device.DiscountAmount,
		DiscountPercentage: device.DiscountPercentage,
		SaleStartAt:        device.SaleStartAt,
		SaleEndAt:          device.SaleEndAt,
	}, now)
	if err != nil {
		return device.RepairPrice
	}
	return &price
}
