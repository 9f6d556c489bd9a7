package models

import "github.com/fixmart-next/internal/constants"

// LineTarget 行项指向的售卖对象（商品或维修设备）
// 目标类型 + 目标ID 成对出现，不存在"同时指向两者"或"都未指向"的状态
type LineTarget struct {
	Type string `gorm:"column:target_type;type:varchar(20);not null;index" json:"target_type"` // 目标类型（product/device）
	ID   uint   `gorm:"column:target_id;not null;index" json:"target_id"`                      // 目标ID
}

// Valid 校验目标类型与ID是否合法
func (t LineTarget) Valid() bool {
	if t.ID == 0 {
		return false
	}
	return t.Type == constants.LineTargetProduct || t.Type == constants.LineTargetDevice
}
