package main

import (
	"github.com/fixmart-next/internal/config"
	"github.com/fixmart-next/internal/logger"
	"github.com/fixmart-next/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加库位
	locations := []models.Location{
		{Name: "Front Counter", Description: "展示柜与收银台周边"},
		{Name: "Back Shelf A", Description: "后仓 A 区货架"},
		{Name: "Repair Bench", Description: "维修工位"},
	}
	for _, loc := range locations {
		var existing models.Location
		if err := models.DB.Where("name = ?", loc.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&loc).Error; err != nil {
				stdLog.Printf("Failed to create location %s: %v", loc.Name, err)
			} else {
				stdLog.Printf("Created location: %s", loc.Name)
			}
		} else {
			stdLog.Printf("Location already exists: %s", loc.Name)
		}
	}

	// 添加部门
	departments := []models.Department{
		{Name: "Accessories", Description: "手机壳、贴膜、数据线", IsTaxable: true},
		{Name: "Pre-Owned Phones", Description: "二手整机", IsTaxable: true},
		{Name: "Repair Services", Description: "维修服务（免税）", IsTaxable: false},
	}
	for _, dept := range departments {
		var existing models.Department
		if err := models.DB.Where("name = ?", dept.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&dept).Error; err != nil {
				stdLog.Printf("Failed to create department %s: %v", dept.Name, err)
			} else {
				stdLog.Printf("Created department: %s", dept.Name)
			}
		} else {
			stdLog.Printf("Department already exists: %s", dept.Name)
		}
	}

	locationIDs := map[string]uint{}
	var locationList []models.Location
	if err := models.DB.Find(&locationList).Error; err != nil {
		stdLog.Printf("Failed to load locations: %v", err)
	}
	for _, loc := range locationList {
		locationIDs[loc.Name] = loc.ID
	}
	departmentIDs := map[string]uint{}
	var departmentList []models.Department
	if err := models.DB.Find(&departmentList).Error; err != nil {
		stdLog.Printf("Failed to load departments: %v", err)
	}
	for _, dept := range departmentList {
		departmentIDs[dept.Name] = dept.ID
	}

	// 添加商品
	tenPercent := 10.0
	caseBarcode := "888462998888"
	cableBarcode := "194252099889"
	products := []models.Product{
		{
			Name:         "Clear Phone Case",
			Description:  "透明防摔壳，适配主流机型",
			Barcode:      &caseBarcode,
			Price:        models.NewMoneyFromFloat(19.99),
			Cost:         moneyPtr(6.50),
			LocationID:   locationIDs["Front Counter"],
			DepartmentID: departmentIDs["Accessories"],
			IsAvailable:  true,
			OnHand:       40,
		},
		{
			Name:               "USB-C Charging Cable",
			Description:        "1 米编织线，支持快充",
			Barcode:            &cableBarcode,
			Price:              models.NewMoneyFromFloat(12.99),
			Cost:               moneyPtr(3.20),
			DiscountPercentage: &tenPercent,
			LocationID:         locationIDs["Front Counter"],
			DepartmentID:       departmentIDs["Accessories"],
			IsAvailable:        true,
			OnHand:             65,
		},
		{
			Name:         "Refurbished iPhone 12",
			Description:  "128G，成色良好，已换新电池",
			Price:        models.NewMoneyFromFloat(329.00),
			Cost:         moneyPtr(210.00),
			LocationID:   locationIDs["Back Shelf A"],
			DepartmentID: departmentIDs["Pre-Owned Phones"],
			IsAvailable:  true,
			OnHand:       3,
		},
		{
			Name:         "Screen Repair - Standard",
			Description:  "通用屏幕更换服务",
			Price:        models.NewMoneyFromFloat(89.00),
			LocationID:   locationIDs["Repair Bench"],
			DepartmentID: departmentIDs["Repair Services"],
			IsAvailable:  true,
			OnHand:       0,
		},
	}
	for _, p := range products {
		var existing models.Product
		if err := models.DB.Where("name = ?", p.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&p).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", p.Name, err)
			} else {
				stdLog.Printf("Created product: %s", p.Name)
			}
		} else {
			stdLog.Printf("Product already exists: %s", p.Name)
		}
	}

	// 添加演示顾客
	demoEmail := "demo@fixmart.local"
	var demoUser models.User
	if err := models.DB.Where("email = ?", demoEmail).First(&demoUser).Error; err != nil {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte("demo12345"), bcrypt.DefaultCost)
		if hashErr != nil {
			stdLog.Fatalf("Failed to hash demo password: %v", hashErr)
		}
		demoUser = models.User{
			Email:        demoEmail,
			PasswordHash: string(hash),
			DisplayName:  "Demo Customer",
			PhoneNumber:  "555-0100",
			Carrier:      "T-Mobile",
			Status:       "active",
		}
		if err := models.DB.Create(&demoUser).Error; err != nil {
			stdLog.Fatalf("Failed to create demo user: %v", err)
		}
		stdLog.Printf("Created demo user: %s (password: demo12345)", demoEmail)
	} else {
		stdLog.Printf("Demo user already exists: %s", demoEmail)
	}

	// 添加演示设备
	imei := "356938035643809"
	repairDeptID := departmentIDs["Repair Services"]
	benchID := locationIDs["Repair Bench"]
	devices := []models.Device{
		{
			OwnerID:      demoUser.ID,
			Name:         "Galaxy S21",
			DeviceModel:  "SM-G991U",
			RepairPrice:  moneyPtr(129.00),
			IMEI:         &imei,
			Defect:       "碎屏，触控正常",
			Carrier:      "T-Mobile",
			LocationID:   &benchID,
			DepartmentID: &repairDeptID,
		},
		{
			OwnerID:     demoUser.ID,
			Name:        "iPad Air 4",
			DeviceModel: "A2316",
			Defect:      "无法开机，等待检测报价",
		},
	}
	for _, d := range devices {
		var existing models.Device
		if err := models.DB.Where("owner_id = ? AND name = ?", d.OwnerID, d.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&d).Error; err != nil {
				stdLog.Printf("Failed to create device %s: %v", d.Name, err)
			} else {
				stdLog.Printf("Created device: %s", d.Name)
			}
		} else {
			stdLog.Printf("Device already exists: %s", d.Name)
		}
	}

	stdLog.Printf("Seed completed")
}

func moneyPtr(amount float64) *models.Money {
	m := models.NewMoneyFromFloat(amount)
	return &m
}
