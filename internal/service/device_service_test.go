package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/fixmart-next/internal/repository"
)

func (f *catalogFixture) newDeviceService() *DeviceService {
	return NewDeviceService(
		repository.NewDeviceRepository(f.db),
		repository.NewLocationRepository(f.db),
		repository.NewDepartmentRepository(f.db),
	)
}

func TestDeviceCreateValidation(t *testing.T) {
	f := setupCatalogFixture(t, "device_create")
	svc := f.newDeviceService()

	if _, err := svc.Create(DeviceInput{Name: "无主设备"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without owner, got %v", err)
	}
	if _, err := svc.Create(DeviceInput{OwnerID: f.user.ID, Name: " "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}

	longIMEI := strings.Repeat("9", 16)
	if _, err := svc.Create(DeviceInput{OwnerID: f.user.ID, Name: "IMEI超长", IMEI: &longIMEI}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for 16-digit imei, got %v", err)
	}

	imei := "490154203237518"
	device, err := svc.Create(DeviceInput{
		OwnerID:      f.user.ID,
		Name:         "Galaxy S21 换屏",
		IMEI:         &imei,
		RepairPrice:  moneyPtr(200),
		DepartmentID: &f.taxableDept.ID,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if device.IMEI == nil || *device.IMEI != imei {
		t.Fatalf("unexpected imei: %+v", device.IMEI)
	}

	// IMEI 重复拒绝
	if _, err := svc.Create(DeviceInput{OwnerID: f.otherUser.ID, Name: "重复IMEI", IMEI: &imei}); !errors.Is(err, ErrIMEITaken) {
		t.Fatalf("expected ErrIMEITaken, got %v", err)
	}

	// 更新自身保留相同 IMEI 不算冲突
	if _, err := svc.Update(device.ID, DeviceInput{OwnerID: f.user.ID, Name: device.Name, IMEI: &imei}); err != nil {
		t.Fatalf("Update self with same imei error: %v", err)
	}
}

func TestDeviceOwnership(t *testing.T) {
	f := setupCatalogFixture(t, "device_owner")
	svc := f.newDeviceService()

	device, err := svc.GetOwned(f.ownDevice.ID, f.user.ID)
	if err != nil {
		t.Fatalf("GetOwned error: %v", err)
	}
	if device.ID != f.ownDevice.ID {
		t.Fatalf("unexpected device: %+v", device)
	}

	if _, err := svc.GetOwned(f.foreignDevice.ID, f.user.ID); !errors.Is(err, ErrOwnershipViolation) {
		t.Fatalf("expected ErrOwnershipViolation, got %v", err)
	}
	if _, err := svc.GetOwned(99999, f.user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := svc.DeleteOwned(f.foreignDevice.ID, f.user.ID); !errors.Is(err, ErrOwnershipViolation) {
		t.Fatalf("expected ErrOwnershipViolation on delete, got %v", err)
	}
	if err := svc.DeleteOwned(f.unpricedDevice.ID, f.user.ID); err != nil {
		t.Fatalf("DeleteOwned error: %v", err)
	}

	devices, total, err := svc.ListByOwner(f.user.ID, 1, 10)
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if total != 1 || len(devices) != 1 {
		t.Fatalf("expected 1 device left, got total=%d len=%d", total, len(devices))
	}
}

func TestLocationAndDepartmentInUseGuard(t *testing.T) {
	f := setupCatalogFixture(t, "catalog_guard")
	locationSvc := NewLocationService(repository.NewLocationRepository(f.db), repository.NewProductRepository(f.db))
	departmentSvc := NewDepartmentService(repository.NewDepartmentRepository(f.db), repository.NewProductRepository(f.db))

	// 仍被商品引用时拒绝删除
	if err := locationSvc.Delete(f.location.ID); !errors.Is(err, ErrLocationInUse) {
		t.Fatalf("expected ErrLocationInUse, got %v", err)
	}
	if err := departmentSvc.Delete(f.taxableDept.ID); !errors.Is(err, ErrDepartmentInUse) {
		t.Fatalf("expected ErrDepartmentInUse, got %v", err)
	}

	// 名称重复拒绝
	if _, err := locationSvc.Create(f.location.Name, ""); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}
	if _, err := departmentSvc.Create(DepartmentInput{Name: f.taxableDept.Name}); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}

	// 无引用后可删除
	empty, err := locationSvc.Create("后仓", "")
	if err != nil {
		t.Fatalf("Create location error: %v", err)
	}
	if err := locationSvc.Delete(empty.ID); err != nil {
		t.Fatalf("Delete empty location error: %v", err)
	}
}
