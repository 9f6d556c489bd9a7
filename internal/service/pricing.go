package service

import (
	"time"

	"github.com/fixmart-next/internal/models"

	"github.com/shopspring/decimal"
)

// SellableView 售卖目标的定价视图；由 CatalogResolver 从商品或设备解析而来
type SellableView struct {
	Target             models.LineTarget
	Name               string
	BasePrice          models.Money
	DiscountAmount     *models.Money
	DiscountPercentage *float64
	SaleStartAt        *time.Time
	SaleEndAt          *time.Time
	Taxable            bool
}

// DiscountedPrice 计算折后目录价
// 两种折扣互斥；促销窗口存在且当前时间不在窗口内时折扣不生效；结果不为负
func DiscountedPrice(view SellableView, now time.Time) (models.Money, error) {
	if view.DiscountAmount != nil && view.DiscountPercentage != nil {
		return models.Money{}, ErrInvalidDiscountConfig
	}

	base := view.BasePrice.Decimal
	if !saleWindowActive(view.SaleStartAt, view.SaleEndAt, now) {
		return models.NewMoneyFromDecimal(base), nil
	}

	switch {
	case view.DiscountAmount != nil:
		base = base.Sub(view.DiscountAmount.Decimal)
	case view.DiscountPercentage != nil:
		pct := decimal.NewFromFloat(*view.DiscountPercentage)
		base = base.Sub(base.Mul(pct).Div(decimal.NewFromInt(100)))
	}
	if base.IsNegative() {
		base = decimal.Zero
	}
	return models.NewMoneyFromDecimal(base), nil
}

// saleWindowActive 判断折扣是否处于生效窗口；未配置窗口时恒生效
func saleWindowActive(start, end *time.Time, now time.Time) bool {
	if start != nil && now.Before(*start) {
		return false
	}
	if end != nil && now.After(*end) {
		return false
	}
	return true
}

// EffectivePrice 解析行项单价：手工改价 > 价格快照 > 折后目录价
func EffectivePrice(override *models.Money, snapshot *models.Money, view *SellableView, now time.Time) (models.Money, error) {
	if override != nil {
		return *override, nil
	}
	if snapshot != nil {
		return *snapshot, nil
	}
	if view != nil {
		return DiscountedPrice(*view, now)
	}
	return models.Money{}, ErrPriceIndeterminate
}

// LineTotal 计算行小计（单价 × 数量）
func LineTotal(unitPrice models.Money, quantity int) (models.Money, error) {
	if quantity <= 0 {
		return models.Money{}, ErrInvalidQuantity
	}
	return models.NewMoneyFromDecimal(unitPrice.Decimal.Mul(decimal.NewFromInt(int64(quantity)))), nil
}

// ValidateDiscountFields 写入前校验折扣配置（互斥、非负）
func ValidateDiscountFields(amount *models.Money, percentage *float64) error {
	if amount != nil && percentage != nil {
		return ErrInvalidDiscountConfig
	}
	if amount != nil && amount.Decimal.IsNegative() {
		return ErrInvalidPrice
	}
	if percentage != nil && (*percentage < 0 || *percentage > 100) {
		return ErrInvalidDiscountConfig
	}
	return nil
}
