package service

import (
	"strings"

	"github.com/fixmart-next/internal/models"
	"github.com/fixmart-next/internal/repository"
)

// LocationService 库位服务
type LocationService struct {
	locationRepo repository.LocationRepository
	productRepo  repository.ProductRepository
}

// NewLocationService 创建库位服务
func NewLocationService(locationRepo repository.LocationRepository, productRepo repository.ProductRepository) *LocationService {
	return &LocationService{
		locationRepo: locationRepo,
		productRepo:  productRepo,
	}
}

// List 库位列表
func (s *LocationService) List() ([]models.Location, error) {
	return s.locationRepo.List()
}

// Get 库位详情
func (s *LocationService) Get(id uint) (*models.Location, error) {
	location, err := s.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, ErrNotFound
	}
	return location, nil
}

// Create 创建库位
func (s *LocationService) Create(name, description string) (*models.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	exist, err := s.locationRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrNameTaken
	}
	location := &models.Location{Name: name, Description: description}
	if err := s.locationRepo.Create(location); err != nil {
		return nil, err
	}
	return location, nil
}

// Update 更新库位
func (s *LocationService) Update(id uint, name, description string) (*models.Location, error) {
	location, err := s.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, ErrNotFound
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	exist, err := s.locationRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if exist != nil && exist.ID != id {
		return nil, ErrNameTaken
	}
	location.Name = name
	location.Description = description
	if err := s.locationRepo.Update(location); err != nil {
		return nil, err
	}
	return location, nil
}

// Delete 删除库位；仍有商品引用时拒绝
func (s *LocationService) Delete(id uint) error {
	location, err := s.locationRepo.GetByID(id)
	if err != nil {
		return err
	}
	if location == nil {
		return ErrNotFound
	}
	_, total, err := s.productRepo.List(repository.ProductListFilter{LocationID: id, PageSize: 1, Page: 1})
	if err != nil {
		return err
	}
	if total > 0 {
		return ErrLocationInUse
	}
	return s.locationRepo.Delete(id)
}
