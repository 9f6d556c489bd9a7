package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/fixmart-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Location{}, &models.Department{}, &models.Product{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewProductRepository(db), db
}

func seedCatalog(t *testing.T, db *gorm.DB) (models.Location, models.Department) {
	t.Helper()
	location := models.Location{Name: "Front Counter"}
	if err := db.Create(&location).Error; err != nil {
		t.Fatalf("create location failed: %v", err)
	}
	department := models.Department{Name: "Accessories", IsTaxable: true}
	if err := db.Create(&department).Error; err != nil {
		t.Fatalf("create department failed: %v", err)
	}
	return location, department
}

func createTestProduct(t *testing.T, repo *GormProductRepository, name string, price float64, locationID, departmentID uint, available bool, barcode string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:         name,
		Price:        models.NewMoneyFromFloat(price),
		LocationID:   locationID,
		DepartmentID: departmentID,
		IsAvailable:  available,
	}
	if barcode != "" {
		product.Barcode = &barcode
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product %s failed: %v", name, err)
	}
	return product
}

func TestProductListOnlyAvailable(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	location, department := seedCatalog(t, db)

	createTestProduct(t, repo, "Clear Case", 19.99, location.ID, department.ID, true, "")
	createTestProduct(t, repo, "Discontinued Case", 9.99, location.ID, department.ID, false, "")

	all, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Fatalf("list all want 2 got total=%d len=%d", total, len(all))
	}

	available, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 20, OnlyAvailable: true})
	if err != nil {
		t.Fatalf("list available failed: %v", err)
	}
	if total != 1 || len(available) != 1 {
		t.Fatalf("list available want 1 got total=%d len=%d", total, len(available))
	}
	if available[0].Name != "Clear Case" {
		t.Fatalf("available product want Clear Case got %s", available[0].Name)
	}
}

func TestProductListSearchAndBarcode(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	location, department := seedCatalog(t, db)

	createTestProduct(t, repo, "USB-C Charging Cable", 12.99, location.ID, department.ID, true, "194252099889")
	createTestProduct(t, repo, "Lightning Cable", 14.99, location.ID, department.ID, true, "")
	createTestProduct(t, repo, "Screen Protector", 8.99, location.ID, department.ID, true, "")

	byName, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 20, Search: "cable"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 2 || len(byName) != 2 {
		t.Fatalf("search want 2 got total=%d len=%d", total, len(byName))
	}

	byBarcode, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 20, Barcode: "194252099889"})
	if err != nil {
		t.Fatalf("barcode lookup failed: %v", err)
	}
	if total != 1 || byBarcode[0].Name != "USB-C Charging Cable" {
		t.Fatalf("barcode lookup want USB-C Charging Cable got total=%d", total)
	}

	product, err := repo.GetByBarcode("194252099889")
	if err != nil {
		t.Fatalf("get by barcode failed: %v", err)
	}
	if product == nil || product.Name != "USB-C Charging Cable" {
		t.Fatalf("get by barcode returned wrong product: %+v", product)
	}
	missing, err := repo.GetByBarcode("000000000000")
	if err != nil {
		t.Fatalf("get missing barcode failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing barcode should be nil, got %+v", missing)
	}
}

func TestProductListPaginationAndRelations(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	location, department := seedCatalog(t, db)

	for i := 0; i < 5; i++ {
		createTestProduct(t, repo, fmt.Sprintf("Item %d", i), 10.00, location.ID, department.ID, true, "")
	}

	page2, total, err := repo.List(ProductListFilter{Page: 2, PageSize: 2, WithRelations: true})
	if err != nil {
		t.Fatalf("paginated list failed: %v", err)
	}
	if total != 5 {
		t.Fatalf("total want 5 got %d", total)
	}
	if len(page2) != 2 {
		t.Fatalf("page 2 want 2 items got %d", len(page2))
	}
	if page2[0].Department.ID == 0 || page2[0].Location.ID == 0 {
		t.Fatalf("relations should be preloaded, got %+v", page2[0])
	}

	soft := createTestProduct(t, repo, "To Delete", 1.00, location.ID, department.ID, true, "")
	if err := repo.Delete(soft.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	got, err := repo.GetByID(soft.ID)
	if err != nil {
		t.Fatalf("get deleted failed: %v", err)
	}
	if got != nil {
		t.Fatalf("soft-deleted product should be invisible, got %+v", got)
	}
}
