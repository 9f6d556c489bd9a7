package service

import (
	"github.com/fixmart-next/internal/models"

	"github.com/shopspring/decimal"
)

// TaxCalculator 销售税计算器；税率在进程启动时注入，构造后只读
type TaxCalculator struct {
	rate decimal.Decimal
}

// NewTaxCalculator 创建销售税计算器
func NewTaxCalculator(salesRate float64) *TaxCalculator {
	rate := decimal.NewFromFloat(salesRate)
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	return &TaxCalculator{rate: rate}
}

// Rate 返回税率
func (c *TaxCalculator) Rate() decimal.Decimal {
	return c.rate
}

// LineTax 计算行税额（单价 × 数量 × 税率）；不计税行返回零
func (c *TaxCalculator) LineTax(unitPrice models.Money, quantity int, taxable bool) models.Money {
	if !taxable || quantity <= 0 {
		return models.NewMoneyFromDecimal(decimal.Zero)
	}
	tax := unitPrice.Decimal.
		Mul(decimal.NewFromInt(int64(quantity))).
		Mul(c.rate)
	return models.NewMoneyFromDecimal(tax)
}
