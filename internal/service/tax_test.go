package service

import "testing"

func TestLineTaxTaxable(t *testing.T) {
	calc := NewTaxCalculator(0.07)
	tax := calc.LineTax(moneyFromFloat(150), 1, true)
	if tax.String() != "10.50" {
		t.Fatalf("expected 10.50, got %s", tax.String())
	}
}

func TestLineTaxNotTaxable(t *testing.T) {
	calc := NewTaxCalculator(0.07)
	tax := calc.LineTax(moneyFromFloat(150), 1, false)
	if tax.String() != "0.00" {
		t.Fatalf("expected 0.00, got %s", tax.String())
	}
}

func TestLineTaxQuantity(t *testing.T) {
	calc := NewTaxCalculator(0.07)
	tax := calc.LineTax(moneyFromFloat(100), 3, true)
	if tax.String() != "21.00" {
		t.Fatalf("expected 21.00, got %s", tax.String())
	}
}

func TestNewTaxCalculatorNegativeRate(t *testing.T) {
	calc := NewTaxCalculator(-0.05)
	if !calc.Rate().IsZero() {
		t.Fatalf("expected negative rate clamped to zero, got %s", calc.Rate().String())
	}
}
