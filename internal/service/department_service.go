package service

import (
	"strings"

	"github.com/fixmart-next/internal/models"
	"github.com/fixmart-next/internal/repository"
)

// DepartmentService 部门服务
type DepartmentService struct {
	departmentRepo repository.DepartmentRepository
	productRepo    repository.ProductRepository
}

// NewDepartmentService 创建部门服务
func NewDepartmentService(departmentRepo repository.DepartmentRepository, productRepo repository.ProductRepository) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		productRepo:    productRepo,
	}
}

// DepartmentInput 部门创建/更新输入
type DepartmentInput struct {
	Name        string
	Description string
	IsTaxable   bool
}

// List 部门列表
func (s *DepartmentService) List() ([]models.Department, error) {
	return s.departmentRepo.List()
}

// Get 部门详情
func (s *DepartmentService) Get(id uint) (*models.Department, error) {
	department, err := s.departmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, ErrNotFound
	}
	return department, nil
}

// Create 创建部门
func (s *DepartmentService) Create(input DepartmentInput) (*models.Department, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	exist, err := s.departmentRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrNameTaken
	}
	department := &models.Department{
		Name:        name,
		Description: input.Description,
		IsTaxable:   input.IsTaxable,
	}
	if err := s.departmentRepo.Create(department); err != nil {
		return nil, err
	}
	return department, nil
}

// Update 更新部门
func (s *DepartmentService) Update(id uint, input DepartmentInput) (*models.Department, error) {
	department, err := s.departmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, ErrNotFound
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	exist, err := s.departmentRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if exist != nil && exist.ID != id {
		return nil, ErrNameTaken
	}
	department.Name = name
	department.Description = input.Description
	department.IsTaxable = input.IsTaxable
	if err := s.departmentRepo.Update(department); err != nil {
		return nil, err
	}
	return department, nil
}

// Delete 删除部门；仍有商品引用时拒绝
func (s *DepartmentService) Delete(id uint) error {
	department, err := s.departmentRepo.GetByID(id)
	if err != nil {
		return err
	}
	if department == nil {
		return ErrNotFound
	}
	_, total, err := s.productRepo.List(repository.ProductListFilter{DepartmentID: id, PageSize: 1, Page: 1})
	if err != nil {
		return err
	}
	if total > 0 {
		return ErrDepartmentInUse
	}
	return s.departmentRepo.Delete(id)
}
