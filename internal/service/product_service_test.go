package service

import (
	"errors"
	"testing"

	"github.com/fixmart-next/internal/repository"
)

func (f *catalogFixture) newProductService() *ProductService {
	return NewProductService(
		repository.NewProductRepository(f.db),
		repository.NewLocationRepository(f.db),
		repository.NewDepartmentRepository(f.db),
	)
}

func TestProductCreateValidation(t *testing.T) {
	f := setupCatalogFixture(t, "product_create")
	svc := f.newProductService()

	base := ProductInput{
		Name:         "数据线",
		Price:        moneyFromFloat(19.99),
		LocationID:   f.location.ID,
		DepartmentID: f.taxableDept.ID,
	}

	input := base
	input.Name = "  "
	if _, err := svc.Create(input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty name, got %v", err)
	}

	input = base
	input.Price = moneyFromFloat(-1)
	if _, err := svc.Create(input); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}

	// 两种折扣同时配置在保存时即被拒绝
	input = base
	input.DiscountAmount = moneyPtr(5)
	input.DiscountPercentage = floatPtr(10)
	if _, err := svc.Create(input); !errors.Is(err, ErrInvalidDiscountConfig) {
		t.Fatalf("expected ErrInvalidDiscountConfig, got %v", err)
	}

	input = base
	input.LocationID = 99999
	if _, err := svc.Create(input); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing location, got %v", err)
	}

	input = base
	input.DepartmentID = 99999
	if _, err := svc.Create(input); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing department, got %v", err)
	}

	product, err := svc.Create(base)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if product.ID == 0 || !product.IsAvailable {
		t.Fatalf("unexpected product: %+v", product)
	}
	if product.Location.ID != f.location.ID || product.Department.ID != f.taxableDept.ID {
		t.Fatalf("expected relations preloaded, got %+v", product)
	}
}

func TestProductBarcodeUniqueness(t *testing.T) {
	f := setupCatalogFixture(t, "product_barcode")
	svc := f.newProductService()

	barcode := "6901234567890"
	base := ProductInput{
		Name:         "充电器",
		Price:        moneyFromFloat(29.99),
		Barcode:      &barcode,
		LocationID:   f.location.ID,
		DepartmentID: f.taxableDept.ID,
	}
	first, err := svc.Create(base)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	dup := base
	dup.Name = "另一个充电器"
	if _, err := svc.Create(dup); !errors.Is(err, ErrBarcodeTaken) {
		t.Fatalf("expected ErrBarcodeTaken, got %v", err)
	}

	// 更新自身保留相同条码不算冲突
	if _, err := svc.Update(first.ID, base); err != nil {
		t.Fatalf("Update self with same barcode error: %v", err)
	}

	// 空白条码归一化为 nil，多个无码商品不冲突
	blank := "  "
	noCode := base
	noCode.Name = "无码商品"
	noCode.Barcode = &blank
	created, err := svc.Create(noCode)
	if err != nil {
		t.Fatalf("Create blank barcode error: %v", err)
	}
	if created.Barcode != nil {
		t.Fatalf("expected nil barcode, got %q", *created.Barcode)
	}
	noCode.Name = "无码商品2"
	if _, err := svc.Create(noCode); err != nil {
		t.Fatalf("Create second blank barcode error: %v", err)
	}
}

func TestProductUpdateAndDelete(t *testing.T) {
	f := setupCatalogFixture(t, "product_update")
	svc := f.newProductService()

	onHand := 5
	available := false
	input := ProductInput{
		Name:         f.product.Name,
		Price:        moneyFromFloat(120),
		LocationID:   f.location.ID,
		DepartmentID: f.nonTaxableDept.ID,
		OnHand:       &onHand,
		IsAvailable:  &available,
	}
	updated, err := svc.Update(f.product.ID, input)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Price.String() != "120.00" || updated.OnHand != 5 || updated.IsAvailable {
		t.Fatalf("unexpected product after update: %+v", updated)
	}
	if updated.DiscountPercentage != nil {
		t.Fatalf("expected discount cleared, got %v", *updated.DiscountPercentage)
	}

	if _, err := svc.Update(99999, input); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := svc.Delete(f.product.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := svc.Get(f.product.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
