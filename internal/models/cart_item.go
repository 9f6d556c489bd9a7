package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem 购物车行项
type CartItem struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                      // 主键
	CartID        uint           `gorm:"not null;index" json:"cart_id"`                             // 购物车ID
	Target        LineTarget     `gorm:"embedded" json:"target"`                                    // 售卖目标（商品/设备）
	Quantity      int            `gorm:"not null" json:"quantity"`                                  // 数量
	OverridePrice *Money         `gorm:"type:decimal(20,2)" json:"override_price"`                  // 手工改价（优先于目录价）
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
