package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                      // 主键
	Name               string         `gorm:"not null;index" json:"name"`                                // 商品名称
	Description        string         `gorm:"type:text" json:"description"`                              // 商品描述
	Barcode            *string        `gorm:"uniqueIndex" json:"barcode"`                                // 条码（可空，非空时唯一）
	Price              Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`        // 售价
	Cost               *Money         `gorm:"type:decimal(20,2)" json:"cost"`                            // 成本价
	DiscountAmount     *Money         `gorm:"type:decimal(20,2)" json:"discount_amount"`                 // 固定折扣金额（与百分比互斥）
	DiscountPercentage *float64       `gorm:"type:decimal(5,2)" json:"discount_percentage"`              // 折扣百分比（与固定金额互斥）
	SaleStartAt        *time.Time     `gorm:"index" json:"sale_start_at"`                                // 促销开始时间
	SaleEndAt          *time.Time     `gorm:"index" json:"sale_end_at"`                                  // 促销结束时间
	LocationID         uint           `gorm:"not null;index" json:"location_id"`                         // 库位ID
	DepartmentID       uint           `gorm:"not null;index" json:"department_id"`                       // 部门ID
	IsAvailable        bool           `gorm:"not null;default:true;index" json:"is_available"`           // 是否可售
	OnHand             int            `gorm:"not null;default:0" json:"on_hand"`                         // 现货数量
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt          time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	// 关联
	Location   Location   `gorm:"foreignKey:LocationID" json:"location,omitempty"`     // 库位信息
	Department Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"` // 部门信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
