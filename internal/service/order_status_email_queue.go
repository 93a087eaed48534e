package service

import (
	"strings"

	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/queue"

	"github.com/hibiken/asynq"
)

// EmailTaskQueue 邮件任务入队能力（由 queue.Client 实现）
type EmailTaskQueue interface {
	Enabled() bool
	EnqueueOrderStatusEmail(payload queue.OrderStatusEmailPayload, opts ...asynq.Option) error
	EnqueueVendorReviewEmail(payload queue.VendorReviewEmailPayload, opts ...asynq.Option) error
}

// enqueueOrderStatusEmailTaskIfEligible 根据订单收件邮箱决定是否入队状态邮件任务。
// 返回值 skipped 表示任务被跳过（未启用队列或没有收件邮箱）。
func enqueueOrderStatusEmailTaskIfEligible(queueClient EmailTaskQueue, order *models.Order, status string) (skipped bool, err error) {
	if queueClient == nil || !queueClient.Enabled() || order == nil || order.ID == 0 {
		return true, nil
	}
	if strings.TrimSpace(order.CustomerEmail) == "" {
		return true, nil
	}
	if err := queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: order.ID,
		Status:  strings.TrimSpace(status),
	}); err != nil {
		return false, err
	}
	return false, nil
}
