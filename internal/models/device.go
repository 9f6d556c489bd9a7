package models

import (
	"time"

	"gorm.io/gorm"
)

// Device 顾客维修设备表
type Device struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                          // 主键
	OwnerID            uint           `gorm:"not null;index" json:"owner_id"`                // 设备归属用户ID
	Name               string         `gorm:"not null" json:"name"`                          // 设备名称
	DeviceModel        string         `gorm:"type:varchar(100)" json:"device_model"`         // 设备型号
	RepairPrice        *Money         `gorm:"type:decimal(20,2)" json:"repair_price"`        // 维修报价（未定价时为空）
	DiscountAmount     *Money         `gorm:"type:decimal(20,2)" json:"discount_amount"`     // 固定折扣金额（与百分比互斥）
	DiscountPercentage *float64       `gorm:"type:decimal(5,2)" json:"discount_percentage"`  // 折扣百分比（与固定金额互斥）
	SaleStartAt        *time.Time     `gorm:"index" json:"sale_start_at"`                    // 促销开始时间
	SaleEndAt          *time.Time     `gorm:"index" json:"sale_end_at"`                      // 促销结束时间
	Barcode            *string        `gorm:"uniqueIndex" json:"barcode"`                    // 条码（可空，非空时唯一）
	IMEI               *string        `gorm:"type:varchar(15);uniqueIndex" json:"imei"`      // IMEI（最长 15 位，非空时唯一）
	SerialNumber       *string        `gorm:"uniqueIndex" json:"serial_number"`              // 序列号（非空时唯一）
	Defect             string         `gorm:"type:text" json:"defect"`                       // 故障描述
	Notes              string         `gorm:"type:text" json:"notes"`                        // 备注
	Carrier            string         `gorm:"type:varchar(50)" json:"carrier"`               // 运营商
	EstimatedValue     *Money         `gorm:"type:decimal(20,2)" json:"estimated_value"`     // 估值
	Passcode           string         `gorm:"type:varchar(100)" json:"passcode"`             // 解锁密码
	LocationID         *uint          `gorm:"index" json:"location_id"`                      // 库位ID（可空）
	DepartmentID       *uint          `gorm:"index" json:"department_id"`                    // 部门ID（可空，空则不计税）
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt          time.Time      `json:"updated_at"`                                    // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间

	// 关联
	Location   *Location   `gorm:"foreignKey:LocationID" json:"location,omitempty"`     // 库位信息
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"` // 部门信息
}

// TableName 指定表名
func (Device) TableName() string {
	return "devices"
}
