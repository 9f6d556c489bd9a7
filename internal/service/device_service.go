package service

import (
	"strings"
	"time"

	"github.com/fixmart-next/internal/models"
	"github.com/fixmart-next/internal/repository"
)

const maxIMEILength = 15

// DeviceService 设备服务
type DeviceService struct {
	deviceRepo     repository.DeviceRepository
	locationRepo   repository.LocationRepository
	departmentRepo repository.DepartmentRepository
}

// NewDeviceService 创建设备服务
func NewDeviceService(deviceRepo repository.DeviceRepository, locationRepo repository.LocationRepository, departmentRepo repository.DepartmentRepository) *DeviceService {
	return &DeviceService{
		deviceRepo:     deviceRepo,
		locationRepo:   locationRepo,
		departmentRepo: departmentRepo,
	}
}

// DeviceInput 设备创建/更新输入
type DeviceInput struct {
	OwnerID            uint
	Name               string
	DeviceModel        string
	RepairPrice        *models.Money
	DiscountAmount     *models.Money
	DiscountPercentage *float64
	SaleStartAt        *time.Time
	SaleEndAt          *time.Time
	Barcode            *string
	IMEI               *string
	SerialNumber       *string
	Defect             string
	Notes              string
	Carrier            string
	EstimatedValue     *models.Money
	Passcode           string
	LocationID         *uint
	DepartmentID       *uint
}

// ListByOwner 用户自己的设备列表
func (s *DeviceService) ListByOwner(ownerID uint, page, pageSize int) ([]models.Device, int64, error) {
	if ownerID == 0 {
		return nil, 0, ErrNotFound
	}
	return s.deviceRepo.List(repository.DeviceListFilter{
		Page:          page,
		PageSize:      pageSize,
		OwnerID:       ownerID,
		WithRelations: true,
	})
}

// List 员工端设备列表
func (s *DeviceService) List(filter repository.DeviceListFilter) ([]models.Device, int64, error) {
	return s.deviceRepo.List(filter)
}

// GetOwned 获取归属指定用户的设备；他人设备返回 ErrOwnershipViolation
func (s *DeviceService) GetOwned(id, ownerID uint) (*models.Device, error) {
	if id == 0 || ownerID == 0 {
		return nil, ErrNotFound
	}
	device, err := s.deviceRepo.GetByIDAndOwner(id, ownerID)
	if err != nil {
		return nil, err
	}
	if device != nil {
		return device, nil
	}
	other, err := s.deviceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if other != nil {
		return nil, ErrOwnershipViolation
	}
	return nil, ErrNotFound
}

// Get 员工端设备详情
func (s *DeviceService) Get(id uint) (*models.Device, error) {
	device, err := s.deviceRepo.GetByIDWithRelations(id)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, ErrNotFound
	}
	return device, nil
}

// Create 登记设备
func (s *DeviceService) Create(input DeviceInput) (*models.Device, error) {
	if err := s.validateInput(input, 0); err != nil {
		return nil, err
	}

	device := &models.Device{
		OwnerID:            input.OwnerID,
		Name:               strings.TrimSpace(input.Name),
		DeviceModel:        strings.TrimSpace(input.DeviceModel),
		RepairPrice:        input.RepairPrice,
		DiscountAmount:     input.DiscountAmount,
		DiscountPercentage: input.DiscountPercentage,
		SaleStartAt:        input.SaleStartAt,
		SaleEndAt:          input.SaleEndAt,
		Barcode:            normalizeBarcode(input.Barcode),
		IMEI:               normalizeBarcode(input.IMEI),
		SerialNumber:       normalizeBarcode(input.SerialNumber),
		Defect:             input.Defect,
		Notes:              input.Notes,
		Carrier:            strings.TrimSpace(input.Carrier),
		EstimatedValue:     input.EstimatedValue,
		Passcode:           input.Passcode,
		LocationID:         input.LocationID,
		DepartmentID:       input.DepartmentID,
	}
	if err := s.deviceRepo.Create(device); err != nil {
		return nil, err
	}
	return s.deviceRepo.GetByIDWithRelations(device.ID)
}

// UpdateOwned 用户更新自己的设备
func (s *DeviceService) UpdateOwned(id, ownerID uint, input DeviceInput) (*models.Device, error) {
	device, err := s.GetOwned(id, ownerID)
	if err != nil {
		return nil, err
	}
	input.OwnerID = device.OwnerID
	return s.update(device, input)
}

// Update 员工更新设备
func (s *DeviceService) Update(id uint, input DeviceInput) (*models.Device, error) {
	device, err := s.deviceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, ErrNotFound
	}
	if input.OwnerID == 0 {
		input.OwnerID = device.OwnerID
	}
	return s.update(device, input)
}

func (s *DeviceService) update(device *models.Device, input DeviceInput) (*models.Device, error) {
	if err := s.validateInput(input, device.ID); err != nil {
		return nil, err
	}

	device.OwnerID = input.OwnerID
	device.Name = strings.TrimSpace(input.Name)
	device.DeviceModel = strings.TrimSpace(input.DeviceModel)
	device.RepairPrice = input.RepairPrice
	device.DiscountAmount = input.DiscountAmount
	device.DiscountPercentage = input.DiscountPercentage
	device.SaleStartAt = input.SaleStartAt
	device.SaleEndAt = input.SaleEndAt
	device.Barcode = normalizeBarcode(input.Barcode)
	device.IMEI = normalizeBarcode(input.IMEI)
	device.SerialNumber = normalizeBarcode(input.SerialNumber)
	device.Defect = input.Defect
	device.Notes = input.Notes
	device.Carrier = strings.TrimSpace(input.Carrier)
	device.EstimatedValue = input.EstimatedValue
	device.Passcode = input.Passcode
	device.LocationID = input.LocationID
	device.DepartmentID = input.DepartmentID

	if err := s.deviceRepo.Update(device); err != nil {
		return nil, err
	}
	return s.deviceRepo.GetByIDWithRelations(device.ID)
}

// DeleteOwned 用户删除自己的设备
func (s *DeviceService) DeleteOwned(id, ownerID uint) error {
	device, err := s.GetOwned(id, ownerID)
	if err != nil {
		return err
	}
	return s.deviceRepo.Delete(device.ID)
}

// Delete 员工删除设备
func (s *DeviceService) Delete(id uint) error {
	device, err := s.deviceRepo.GetByID(id)
	if err != nil {
		return err
	}
	if device == nil {
		return ErrNotFound
	}
	return s.deviceRepo.Delete(id)
}

func (s *DeviceService) validateInput(input DeviceInput, selfID uint) error {
	if input.OwnerID == 0 || strings.TrimSpace(input.Name) == "" {
		return ErrInvalidInput
	}
	if input.RepairPrice != nil && input.RepairPrice.Decimal.IsNegative() {
		return ErrInvalidPrice
	}
	if input.EstimatedValue != nil && input.EstimatedValue.Decimal.IsNegative() {
		return ErrInvalidPrice
	}
	if err := ValidateDiscountFields(input.DiscountAmount, input.DiscountPercentage); err != nil {
		return err
	}

	if imei := normalizeBarcode(input.IMEI); imei != nil {
		if len(*imei) > maxIMEILength {
			return ErrInvalidInput
		}
		exist, err := s.deviceRepo.GetByIMEI(*imei)
		if err != nil {
			return err
		}
		if exist != nil && exist.ID != selfID {
			return ErrIMEITaken
		}
	}
	if serial := normalizeBarcode(input.SerialNumber); serial != nil {
		exist, err := s.deviceRepo.GetBySerialNumber(*serial)
		if err != nil {
			return err
		}
		if exist != nil && exist.ID != selfID {
			return ErrSerialNumberTaken
		}
	}
	if barcode := normalizeBarcode(input.Barcode); barcode != nil {
		exist, err := s.deviceRepo.GetByBarcode(*barcode)
		if err != nil {
			return err
		}
		if exist != nil && exist.ID != selfID {
			return ErrBarcodeTaken
		}
	}

	if input.LocationID != nil && *input.LocationID != 0 {
		location, err := s.locationRepo.GetByID(*input.LocationID)
		if err != nil {
			return err
		}
		if location == nil {
			return ErrNotFound
		}
	}
	if input.DepartmentID != nil && *input.DepartmentID != 0 {
		department, err := s.departmentRepo.GetByID(*input.DepartmentID)
		if err != nil {
			return err
		}
		if department == nil {
			return ErrNotFound
		}
	}
	return nil
}
