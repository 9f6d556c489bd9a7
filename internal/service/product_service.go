package service

import (
	"strings"
	"time"

	"github.com/fixmart-next/internal/models"
	"github.com/fixmart-next/internal/repository"
)

// ProductService 商品服务
type ProductService struct {
	productRepo    repository.ProductRepository
	locationRepo   repository.LocationRepository
	departmentRepo repository.DepartmentRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, locationRepo repository.LocationRepository, departmentRepo repository.DepartmentRepository) *ProductService {
	return &ProductService{
		productRepo:    productRepo,
		locationRepo:   locationRepo,
		departmentRepo: departmentRepo,
	}
}

// ProductInput 商品创建/更新输入
type ProductInput struct {
	Name               string
	Description        string
	Barcode            *string
	Price              models.Money
	Cost               *models.Money
	DiscountAmount     *models.Money
	DiscountPercentage *float64
	SaleStartAt        *time.Time
	SaleEndAt          *time.Time
	LocationID         uint
	DepartmentID       uint
	IsAvailable        *bool
	OnHand             *int
}

// List 商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// Get 商品详情
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByIDWithRelations(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	if err := s.validateInput(input, 0); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:               strings.TrimSpace(input.Name),
		Description:        input.Description,
		Barcode:            normalizeBarcode(input.Barcode),
		Price:              input.Price,
		Cost:               input.Cost,
		DiscountAmount:     input.DiscountAmount,
		DiscountPercentage: input.DiscountPercentage,
		SaleStartAt:        input.SaleStartAt,
		SaleEndAt:          input.SaleEndAt,
		LocationID:         input.LocationID,
		DepartmentID:       input.DepartmentID,
		IsAvailable:        true,
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}
	if input.OnHand != nil {
		product.OnHand = *input.OnHand
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return s.productRepo.GetByIDWithRelations(product.ID)
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if err := s.validateInput(input, id); err != nil {
		return nil, err
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.Barcode = normalizeBarcode(input.Barcode)
	product.Price = input.Price
	product.Cost = input.Cost
	product.DiscountAmount = input.DiscountAmount
	product.DiscountPercentage = input.DiscountPercentage
	product.SaleStartAt = input.SaleStartAt
	product.SaleEndAt = input.SaleEndAt
	product.LocationID = input.LocationID
	product.DepartmentID = input.DepartmentID
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}
	if input.OnHand != nil {
		product.OnHand = *input.OnHand
	}
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return s.productRepo.GetByIDWithRelations(product.ID)
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	return s.productRepo.Delete(id)
}

func (s *ProductService) validateInput(input ProductInput, selfID uint) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrInvalidInput
	}
	if input.Price.Decimal.IsNegative() {
		return ErrInvalidPrice
	}
	if input.Cost != nil && input.Cost.Decimal.IsNegative() {
		return ErrInvalidPrice
	}
	if err := ValidateDiscountFields(input.DiscountAmount, input.DiscountPercentage); err != nil {
		return err
	}

	if barcode := normalizeBarcode(input.Barcode); barcode != nil {
		exist, err := s.productRepo.GetByBarcode(*barcode)
		if err != nil {
			return err
		}
		if exist != nil && exist.ID != selfID {
			return ErrBarcodeTaken
		}
	}

	location, err := s.locationRepo.GetByID(input.LocationID)
	if err != nil {
		return err
	}
	if location == nil {
		return ErrNotFound
	}
	department, err := s.departmentRepo.GetByID(input.DepartmentID)
	if err != nil {
		return err
	}
	if department == nil {
		return ErrNotFound
	}
	return nil
}

// normalizeBarcode 空白条码归一化为 nil（唯一索引只约束非空值）
func normalizeBarcode(barcode *string) *string {
	if barcode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*barcode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
