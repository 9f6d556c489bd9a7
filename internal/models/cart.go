package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart 购物车表；每个用户只有一辆当前购物车
type Cart struct {
	ID        uint           `gorm:"primarykey" json:"id"`              // 主键
	UserID    uint           `gorm:"not null;uniqueIndex" json:"user_id"` // 用户ID（一人一车）
	CreatedAt time.Time      `gorm:"index" json:"created_at"`           // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`           // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                    // 软删除时间

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"` // 车内行项
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}
