package repository

import (
	"errors"

	"github.com/fixmart-next/internal/models"

	"gorm.io/gorm"
)

// DepartmentRepository 部门数据访问接口
type DepartmentRepository interface {
	GetByID(id uint) (*models.Department, error)
	GetByName(name string) (*models.Department, error)
	List() ([]models.Department, error)
	Create(department *models.Department) error
	Update(department *models.Department) error
	Delete(id uint) error
}

// GormDepartmentRepository GORM 实现
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository 创建部门仓库
func NewDepartmentRepository(db *gorm.DB) *GormDepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

// GetByID 根据 ID 获取部门
func (r *GormDepartmentRepository) GetByID(id uint) (*models.Department, error) {
	var department models.Department
	if err := r.db.First(&department, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &department, nil
}

// GetByName 根据名称获取部门
func (r *GormDepartmentRepository) GetByName(name string) (*models.Department, error) {
	var department models.Department
	if err := r.db.Where("name = ?", name).First(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &department, nil
}

// List 获取部门列表
func (r *GormDepartmentRepository) List() ([]models.Department, error) {
	departments := make([]models.Department, 0)
	if err := r.db.Order("id ASC").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

// Create 创建部门
func (r *GormDepartmentRepository) Create(department *models.Department) error {
	return r.db.Create(department).Error
}

// Update 更新部门
func (r *GormDepartmentRepository) Update(department *models.Department) error {
	return r.db.Save(department).Error
}

// Delete 删除部门（软删除）
func (r *GormDepartmentRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Department{}, id).Error
}
