package repository

import (
	"errors"

	"github.com/fixmart-next/internal/models"

	"gorm.io/gorm"
)

// DeviceRepository 设备数据访问接口
type DeviceRepository interface {
	GetByID(id uint) (*models.Device, error)
	GetByIDWithRelations(id uint) (*models.Device, error)
	GetByIDAndOwner(id, ownerID uint) (*models.Device, error)
	GetByIMEI(imei string) (*models.Device, error)
	GetBySerialNumber(serialNumber string) (*models.Device, error)
	GetByBarcode(barcode string) (*models.Device, error)
	List(filter DeviceListFilter) ([]models.Device, int64, error)
	Create(device *models.Device) error
	Update(device *models.Device) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormDeviceRepository
}

// GormDeviceRepository GORM 实现
type GormDeviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository 创建设备仓库
func NewDeviceRepository(db *gorm.DB) *GormDeviceRepository {
	return &GormDeviceRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDeviceRepository) WithTx(tx *gorm.DB) *GormDeviceRepository {
	if tx == nil {
		return r
	}
	return &GormDeviceRepository{db: tx}
}

// GetByID 根据 ID 获取设备
func (r *GormDeviceRepository) GetByID(id uint) (*models.Device, error) {
	var device models.Device
	if err := r.db.First(&device, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &device, nil
}

// GetByIDWithRelations 根据 ID 获取设备（带库位与部门）
func (r *GormDeviceRepository) GetByIDWithRelations(id uint) (*models.Device, error) {
	var device models.Device
	if err := r.db.Preload("Location").Preload("Department").First(&device, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &device, nil
}

// GetByIDAndOwner 获取归属指定用户的设备
func (r *GormDeviceRepository) GetByIDAndOwner(id, ownerID uint) (*models.Device, error) {
	var device models.Device
	if err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &device, nil
}

// GetByIMEI 根据 IMEI 获取设备
func (r *GormDeviceRepository) GetByIMEI(imei string) (*models.Device, error) {
	if imei == "" {
		return nil, nil
	}
	var device models.Device
	if err := r.db.Where("imei = ?", imei).First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &device, nil
}

// GetBySerialNumber 根据序列号获取设备
func (r *GormDeviceRepository) GetBySerialNumber(serialNumber string) (*models.Device, error) {
	if serialNumber == "" {
		return nil, nil
	}
	var device models.Device
	if err := r.db.Where("serial_number = ?", serialNumber).First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &device, nil
}

// GetByBarcode 根据条码获取设备
func (r *GormDeviceRepository) GetByBarcode(barcode string) (*models.Device, error) {
	if barcode == "" {
		return nil, nil
	}
	var device models.Device
	if err := r.db.Where("barcode = ?", barcode).First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &device, nil
}

// List 设备列表
func (r *GormDeviceRepository) List(filter DeviceListFilter) ([]models.Device, int64, error) {
	query := r.db.Model(&models.Device{})

	if filter.OwnerID != 0 {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.LocationID != 0 {
		query = query.Where("location_id = ?", filter.LocationID)
	}
	if filter.DepartmentID != 0 {
		query = query.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR device_model LIKE ? OR serial_number LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if filter.WithRelations {
		query = query.Preload("Location").Preload("Department")
	}

	var devices []models.Device
	if err := query.Order("id DESC").Find(&devices).Error; err != nil {
		return nil, 0, err
	}
	return devices, total, nil
}

// Create 创建设备
func (r *GormDeviceRepository) Create(device *models.Device) error {
	return r.db.Create(device).Error
}

// Update 更新设备
func (r *GormDeviceRepository) Update(device *models.Device) error {
	return r.db.Save(device).Error
}

// Delete 删除设备（软删除）
func (r *GormDeviceRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Device{}, id).Error
}
