package service

import (
	"github.com/fixmart-next/internal/constants"
	"github.com/fixmart-next/internal/models"
	"github.com/fixmart-next/internal/repository"
)

// CatalogResolver 将行项目标解析为统一的定价视图
type CatalogResolver struct {
	productRepo    repository.ProductRepository
	deviceRepo     repository.DeviceRepository
	departmentRepo repository.DepartmentRepository
}

// NewCatalogResolver 创建目录解析器
func NewCatalogResolver(productRepo repository.ProductRepository, deviceRepo repository.DeviceRepository, departmentRepo repository.DepartmentRepository) *CatalogResolver {
	return &CatalogResolver{
		productRepo:    productRepo,
		deviceRepo:     deviceRepo,
		departmentRepo: departmentRepo,
	}
}

// resolvedSellable 解析结果；Available 标记目标当前是否可加入购物车
type resolvedSellable struct {
	View      SellableView
	Available bool
	OwnerID   uint
}

// Resolve 解析售卖目标
func (r *CatalogResolver) Resolve(target models.LineTarget) (*resolvedSellable, error) {
	if !target.Valid() {
		return nil, ErrInvalidLineTarget
	}
	switch target.Type {
	case constants.LineTargetProduct:
		return r.resolveProduct(target)
	case constants.LineTargetDevice:
		return r.resolveDevice(target)
	}
	return nil, ErrInvalidLineTarget
}

func (r *CatalogResolver) resolveProduct(target models.LineTarget) (*resolvedSellable, error) {
	product, err := r.productRepo.GetByID(target.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	taxable, err := r.departmentTaxable(&product.DepartmentID)
	if err != nil {
		return nil, err
	}
	return &resolvedSellable{
		View: SellableView{
			Target:             target,
			Name:               product.Name,
			BasePrice:          product.Price,
			DiscountAmount:     product.DiscountAmount,
			DiscountPercentage: product.DiscountPercentage,
			SaleStartAt:        product.SaleStartAt,
			SaleEndAt:          product.SaleEndAt,
			Taxable:            taxable,
		},
		Available: product.IsAvailable,
	}, nil
}

func (r *CatalogResolver) resolveDevice(target models.LineTarget) (*resolvedSellable, error) {
	device, err := r.deviceRepo.GetByID(target.ID)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, ErrNotFound
	}
	// 未定价的维修单按零价处理
	basePrice := models.NewMoneyFromFloat(0)
	if device.RepairPrice != nil {
		basePrice = *device.RepairPrice
	}
	taxable, err := r.departmentTaxable(device.DepartmentID)
	if err != nil {
		return nil, err
	}
	return &resolvedSellable{
		View: SellableView{
			Target:             target,
			Name:               device.Name,
			BasePrice:          basePrice,
			DiscountAmount:     device.DiscountAmount,
			DiscountPercentage: device.DiscountPercentage,
			SaleStartAt:        device.SaleStartAt,
			SaleEndAt:          device.SaleEndAt,
			Taxable:            taxable,
		},
		Available: true,
		OwnerID:   device.OwnerID,
	}, nil
}

// departmentTaxable 查询部门计税标记；无部门归属的目标不计税
func (r *CatalogResolver) departmentTaxable(departmentID *uint) (bool, error) {
	if departmentID == nil || *departmentID == 0 {
		return false, nil
	}
	department, err := r.departmentRepo.GetByID(*departmentID)
	if err != nil {
		return false, err
	}
	if department == nil {
		return false, nil
	}
	return department.IsTaxable, nil
}
