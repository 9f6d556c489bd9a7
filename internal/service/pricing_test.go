package service

import (
	"errors"
	"testing"
	"time"

	"github.com/fixmart-next/internal/models"
)

func moneyFromFloat(v float64) models.Money {
	return models.NewMoneyFromFloat(v)
}

func moneyPtr(v float64) *models.Money {
	m := models.NewMoneyFromFloat(v)
	return &m
}

func floatPtr(v float64) *float64 {
	return &v
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestDiscountedPriceAmount(t *testing.T) {
	view := SellableView{
		BasePrice:      moneyFromFloat(100),
		DiscountAmount: moneyPtr(30),
	}
	price, err := DiscountedPrice(view, time.Now())
	if err != nil {
		t.Fatalf("DiscountedPrice error: %v", err)
	}
	if price.String() != "70.00" {
		t.Fatalf("expected 70.00, got %s", price.String())
	}
}

func TestDiscountedPricePercentage(t *testing.T) {
	view := SellableView{
		BasePrice:          moneyFromFloat(100),
		DiscountPercentage: floatPtr(10),
	}
	price, err := DiscountedPrice(view, time.Now())
	if err != nil {
		t.Fatalf("DiscountedPrice error: %v", err)
	}
	if price.String() != "90.00" {
		t.Fatalf("expected 90.00, got %s", price.String())
	}
}

func TestDiscountedPriceFloorAtZero(t *testing.T) {
	view := SellableView{
		BasePrice:      moneyFromFloat(20),
		DiscountAmount: moneyPtr(50),
	}
	price, err := DiscountedPrice(view, time.Now())
	if err != nil {
		t.Fatalf("DiscountedPrice error: %v", err)
	}
	if price.String() != "0.00" {
		t.Fatalf("expected 0.00, got %s", price.String())
	}
}

func TestDiscountedPriceBothConfigured(t *testing.T) {
	view := SellableView{
		BasePrice:          moneyFromFloat(100),
		DiscountAmount:     moneyPtr(10),
		DiscountPercentage: floatPtr(10),
	}
	if _, err := DiscountedPrice(view, time.Now()); !errors.Is(err, ErrInvalidDiscountConfig) {
		t.Fatalf("expected ErrInvalidDiscountConfig, got %v", err)
	}
}

func TestDiscountedPriceSaleWindow(t *testing.T) {
	now := time.Now()
	view := SellableView{
		BasePrice:      moneyFromFloat(100),
		DiscountAmount: moneyPtr(30),
		SaleStartAt:    timePtr(now.Add(-time.Hour)),
		SaleEndAt:      timePtr(now.Add(time.Hour)),
	}
	price, err := DiscountedPrice(view, now)
	if err != nil {
		t.Fatalf("DiscountedPrice error: %v", err)
	}
	if price.String() != "70.00" {
		t.Fatalf("expected discount inside window, got %s", price.String())
	}

	// 窗口已过：回到原价
	view.SaleStartAt = timePtr(now.Add(-2 * time.Hour))
	view.SaleEndAt = timePtr(now.Add(-time.Hour))
	price, err = DiscountedPrice(view, now)
	if err != nil {
		t.Fatalf("DiscountedPrice error: %v", err)
	}
	if price.String() != "100.00" {
		t.Fatalf("expected base price outside window, got %s", price.String())
	}

	// 窗口未开始：回到原价
	view.SaleStartAt = timePtr(now.Add(time.Hour))
	view.SaleEndAt = nil
	price, err = DiscountedPrice(view, now)
	if err != nil {
		t.Fatalf("DiscountedPrice error: %v", err)
	}
	if price.String() != "100.00" {
		t.Fatalf("expected base price before window, got %s", price.String())
	}
}

func TestEffectivePricePrecedence(t *testing.T) {
	now := time.Now()
	view := &SellableView{BasePrice: moneyFromFloat(200)}

	// 手工改价优先于目录价
	price, err := EffectivePrice(moneyPtr(80), nil, view, now)
	if err != nil {
		t.Fatalf("EffectivePrice error: %v", err)
	}
	if price.String() != "80.00" {
		t.Fatalf("expected override 80.00, got %s", price.String())
	}

	// 快照优先于目录价
	price, err = EffectivePrice(nil, moneyPtr(150), view, now)
	if err != nil {
		t.Fatalf("EffectivePrice error: %v", err)
	}
	if price.String() != "150.00" {
		t.Fatalf("expected snapshot 150.00, got %s", price.String())
	}

	// 改价优先于快照
	price, err = EffectivePrice(moneyPtr(80), moneyPtr(150), view, now)
	if err != nil {
		t.Fatalf("EffectivePrice error: %v", err)
	}
	if price.String() != "80.00" {
		t.Fatalf("expected override over snapshot, got %s", price.String())
	}

	// 全部缺失：无法定价
	if _, err := EffectivePrice(nil, nil, nil, now); !errors.Is(err, ErrPriceIndeterminate) {
		t.Fatalf("expected ErrPriceIndeterminate, got %v", err)
	}
}

func TestLineTotal(t *testing.T) {
	total, err := LineTotal(moneyFromFloat(90), 2)
	if err != nil {
		t.Fatalf("LineTotal error: %v", err)
	}
	if total.String() != "180.00" {
		t.Fatalf("expected 180.00, got %s", total.String())
	}
	if _, err := LineTotal(moneyFromFloat(90), 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity for zero, got %v", err)
	}
	if _, err := LineTotal(moneyFromFloat(90), -1); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity for negative, got %v", err)
	}
}

func TestValidateDiscountFields(t *testing.T) {
	if err := ValidateDiscountFields(nil, nil); err != nil {
		t.Fatalf("expected nil error for empty config, got %v", err)
	}
	if err := ValidateDiscountFields(moneyPtr(10), nil); err != nil {
		t.Fatalf("expected nil error for amount only, got %v", err)
	}
	if err := ValidateDiscountFields(nil, floatPtr(15)); err != nil {
		t.Fatalf("expected nil error for percentage only, got %v", err)
	}
	if err := ValidateDiscountFields(moneyPtr(10), floatPtr(15)); !errors.Is(err, ErrInvalidDiscountConfig) {
		t.Fatalf("expected ErrInvalidDiscountConfig for both, got %v", err)
	}
	if err := ValidateDiscountFields(moneyPtr(-1), nil); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice for negative amount, got %v", err)
	}
	if err := ValidateDiscountFields(nil, floatPtr(101)); !errors.Is(err, ErrInvalidDiscountConfig) {
		t.Fatalf("expected ErrInvalidDiscountConfig for >100 percent, got %v", err)
	}
}
