package models

import (
	"time"

	"gorm.io/gorm"
)

// Location 门店库位表
type Location struct {
	ID          uint           `gorm:"primarykey" json:"id"`                 // 主键
	Name        string         `gorm:"uniqueIndex;not null" json:"name"`     // 库位名称
	Description string         `gorm:"type:text" json:"description"`         // 库位描述
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                           // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                       // 软删除时间
}

// TableName 指定表名
func (Location) TableName() string {
	return "locations"
}
