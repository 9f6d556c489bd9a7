package service

import (
	"strings"

	"github.com/fixmart-next/internal/constants"
)

// allowedTransitions 订单状态机
// pending → processing → shipped → delivered；delivered / cancelled 为终态
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusProcessing: true,
		constants.OrderStatusCancelled:  true,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipped:   true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
		constants.OrderStatusCancelled: true,
	},
}

// NormalizeOrderStatus 归一化状态值
func NormalizeOrderStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// IsValidOrderStatus 判断是否为已知订单状态
func IsValidOrderStatus(status string) bool {
	switch NormalizeOrderStatus(status) {
	case constants.OrderStatusPending,
		constants.OrderStatusProcessing,
		constants.OrderStatusShipped,
		constants.OrderStatusDelivered,
		constants.OrderStatusCancelled:
		return true
	}
	return false
}

// ValidateOrderStatusTransition 校验状态流转是否合法
func ValidateOrderStatusTransition(from, to string) error {
	from = NormalizeOrderStatus(from)
	to = NormalizeOrderStatus(to)
	if !IsValidOrderStatus(from) || !IsValidOrderStatus(to) {
		return ErrOrderStatusInvalid
	}
	if from == to {
		return ErrOrderStatusInvalid
	}
	if !allowedTransitions[from][to] {
		return ErrOrderStatusInvalid
	}
	return nil
}
