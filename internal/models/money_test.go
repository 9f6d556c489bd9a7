package models

import (
	"encoding/json"
	"testing"
)

func TestMoneyRoundsToTwoDecimals(t *testing.T) {
	m := NewMoneyFromFloat(19.999)
	if m.String() != "20.00" {
		t.Fatalf("rounded value want 20.00 got %s", m.String())
	}

	m, err := NewMoneyFromString("12.345")
	if err != nil {
		t.Fatalf("parse money failed: %v", err)
	}
	if m.String() != "12.35" {
		t.Fatalf("parsed value want 12.35 got %s", m.String())
	}

	if _, err := NewMoneyFromString("not-a-number"); err == nil {
		t.Fatalf("invalid amount should fail to parse")
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := NewMoneyFromFloat(5)
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal money failed: %v", err)
	}
	if string(data) != `"5.00"` {
		t.Fatalf(`marshal want "5.00" got %s`, string(data))
	}

	var fromString Money
	if err := json.Unmarshal([]byte(`"7.5"`), &fromString); err != nil {
		t.Fatalf("unmarshal string money failed: %v", err)
	}
	if fromString.String() != "7.50" {
		t.Fatalf("unmarshal string want 7.50 got %s", fromString.String())
	}

	var fromNumber Money
	if err := json.Unmarshal([]byte(`3.145`), &fromNumber); err != nil {
		t.Fatalf("unmarshal numeric money failed: %v", err)
	}
	if fromNumber.String() != "3.15" {
		t.Fatalf("unmarshal numeric want 3.15 got %s", fromNumber.String())
	}
}

func TestLineTargetValid(t *testing.T) {
	cases := []struct {
		name   string
		target LineTarget
		want   bool
	}{
		{name: "product", target: LineTarget{Type: "product", ID: 1}, want: true},
		{name: "device", target: LineTarget{Type: "device", ID: 2}, want: true},
		{name: "zero id", target: LineTarget{Type: "product", ID: 0}, want: false},
		{name: "unknown type", target: LineTarget{Type: "voucher", ID: 1}, want: false},
		{name: "empty", target: LineTarget{}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.target.Valid(); got != tc.want {
				t.Fatalf("valid want %v got %v", tc.want, got)
			}
		})
	}
}
