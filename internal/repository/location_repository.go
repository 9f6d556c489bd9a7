package repository

import (
	"errors"

	"github.com/fixmart-next/internal/models"

	"gorm.io/gorm"
)

// LocationRepository 库位数据访问接口
type LocationRepository interface {
	GetByID(id uint) (*models.Location, error)
	GetByName(name string) (*models.Location, error)
	List() ([]models.Location, error)
	Create(location *models.Location) error
	Update(location *models.Location) error
	Delete(id uint) error
}

// GormLocationRepository GORM 实现
type GormLocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository 创建库位仓库
func NewLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// GetByID 根据 ID 获取库位
func (r *GormLocationRepository) GetByID(id uint) (*models.Location, error) {
	var location models.Location
	if err := r.db.First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

// GetByName 根据名称获取库位
func (r *GormLocationRepository) GetByName(name string) (*models.Location, error) {
	var location models.Location
	if err := r.db.Where("name = ?", name).First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

// List 获取库位列表
func (r *GormLocationRepository) List() ([]models.Location, error) {
	locations := make([]models.Location, 0)
	if err := r.db.Order("id ASC").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// Create 创建库位
func (r *GormLocationRepository) Create(location *models.Location) error {
	return r.db.Create(location).Error
}

// Update 更新库位
func (r *GormLocationRepository) Update(location *models.Location) error {
	return r.db.Save(location).Error
}

// Delete 删除库位（软删除）
func (r *GormLocationRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Location{}, id).Error
}
