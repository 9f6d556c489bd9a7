package models

import (
	"time"

	"gorm.io/gorm"
)

// Department 商品部门表；部门决定行项是否计税
type Department struct {
	ID          uint           `gorm:"primarykey" json:"id"`                          // 主键
	Name        string         `gorm:"uniqueIndex;not null" json:"name"`              // 部门名称
	Description string         `gorm:"type:text" json:"description"`                  // 部门描述
	IsTaxable   bool           `gorm:"not null;default:false;index" json:"is_taxable"` // 是否计税
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                    // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间
}

// TableName 指定表名
func (Department) TableName() string {
	return "departments"
}
