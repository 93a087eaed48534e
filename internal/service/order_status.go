package service

import (
	"strings"

	"github.com/gemdesk/internal/constants"
)

// orderTransitions 订单状态允许的流转
var orderTransitions = map[string][]string{
	constants.OrderStatusPending:    {constants.OrderStatusProcessing, constants.OrderStatusCancelled},
	constants.OrderStatusProcessing: {constants.OrderStatusShipped, constants.OrderStatusCancelled},
	constants.OrderStatusShipped:    {constants.OrderStatusDelivered},
}

// IsValidOrderStatus 判断状态是否合法
func IsValidOrderStatus(status string) bool {
	switch normalizeOrderStatus(status) {
	case constants.OrderStatusPending,
		constants.OrderStatusProcessing,
		constants.OrderStatusShipped,
		constants.OrderStatusDelivered,
		constants.OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionOrder 判断订单能否从 from 流转到 to
func CanTransitionOrder(from, to string) bool {
	for _, next := range orderTransitions[normalizeOrderStatus(from)] {
		if next == normalizeOrderStatus(to) {
			return true
		}
	}
	return false
}

// NextOrderStatuses 返回当前状态可流转的目标状态
func NextOrderStatuses(status string) []string {
	next := orderTransitions[normalizeOrderStatus(status)]
	out := make([]string, len(next))
	copy(out, next)
	return out
}

func normalizeOrderStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}
