package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单行项表；价格与税额为下单时刻的快照
type OrderItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                     // 主键
	OrderID   uint           `gorm:"not null;index" json:"order_id"`                           // 订单ID
	Target    LineTarget     `gorm:"embedded" json:"target"`                                   // 售卖目标（商品/设备）
	Name      string         `gorm:"not null" json:"name"`                                     // 目标名称快照
	Quantity  int            `gorm:"not null" json:"quantity"`                                 // 数量
	Price     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`      // 单价快照
	TaxAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax_amount"` // 行税额快照
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                                  // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
