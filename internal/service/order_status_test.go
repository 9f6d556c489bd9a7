package service

import (
	"errors"
	"testing"

	"github.com/fixmart-next/internal/constants"
)

func TestValidateOrderStatusTransitionAllowed(t *testing.T) {
	cases := [][2]string{
		{constants.OrderStatusPending, constants.OrderStatusProcessing},
		{constants.OrderStatusPending, constants.OrderStatusCancelled},
		{constants.OrderStatusProcessing, constants.OrderStatusShipped},
		{constants.OrderStatusProcessing, constants.OrderStatusCancelled},
		{constants.OrderStatusShipped, constants.OrderStatusDelivered},
		{constants.OrderStatusShipped, constants.OrderStatusCancelled},
	}
	for _, c := range cases {
		if err := ValidateOrderStatusTransition(c[0], c[1]); err != nil {
			t.Fatalf("expected %s -> %s allowed, got %v", c[0], c[1], err)
		}
	}
}

func TestValidateOrderStatusTransitionRejected(t *testing.T) {
	cases := [][2]string{
		{constants.OrderStatusPending, constants.OrderStatusShipped},
		{constants.OrderStatusPending, constants.OrderStatusDelivered},
		{constants.OrderStatusProcessing, constants.OrderStatusPending},
		{constants.OrderStatusShipped, constants.OrderStatusProcessing},
		{constants.OrderStatusDelivered, constants.OrderStatusCancelled},
		{constants.OrderStatusDelivered, constants.OrderStatusPending},
		{constants.OrderStatusCancelled, constants.OrderStatusPending},
		{constants.OrderStatusCancelled, constants.OrderStatusProcessing},
		{constants.OrderStatusPending, constants.OrderStatusPending},
		{constants.OrderStatusPending, "unknown"},
		{"unknown", constants.OrderStatusProcessing},
	}
	for _, c := range cases {
		if err := ValidateOrderStatusTransition(c[0], c[1]); !errors.Is(err, ErrOrderStatusInvalid) {
			t.Fatalf("expected %s -> %s rejected, got %v", c[0], c[1], err)
		}
	}
}

func TestNormalizeOrderStatus(t *testing.T) {
	if got := NormalizeOrderStatus("  Shipped "); got != constants.OrderStatusShipped {
		t.Fatalf("expected normalized shipped, got %q", got)
	}
	if err := ValidateOrderStatusTransition(" PENDING ", "processing"); err != nil {
		t.Fatalf("expected case-insensitive transition allowed, got %v", err)
	}
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range []string{
		constants.OrderStatusPending,
		constants.OrderStatusProcessing,
		constants.OrderStatusShipped,
		constants.OrderStatusDelivered,
		constants.OrderStatusCancelled,
	} {
		if !IsValidOrderStatus(status) {
			t.Fatalf("expected %s valid", status)
		}
	}
	if IsValidOrderStatus("refunded") {
		t.Fatalf("expected refunded invalid")
	}
}
