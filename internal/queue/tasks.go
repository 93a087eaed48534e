package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gemdesk/internal/constants"

	"github.com/hibiken/asynq"
)

// 任务类型
const (
	TaskOrderStatusEmail  = constants.TaskOrderStatusEmail
	TaskVendorReviewEmail = constants.TaskVendorReviewEmail
)

// OrderStatusEmailPayload 订单状态变更通知
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// VendorReviewEmailPayload 供应商审核结果通知
type VendorReviewEmailPayload struct {
	UserID       uint   `json:"user_id"`
	VendorStatus string `json:"vendor_status"`
	Reason       string `json:"reason,omitempty"`
}

// 各任务类型的默认投递参数，调用方传入的选项在后面生效
var taskDefaults = map[string][]asynq.Option{
	TaskOrderStatusEmail: {
		asynq.Queue(constants.QueueDefault),
		asynq.MaxRetry(8),
		asynq.Timeout(30 * time.Second),
	},
	TaskVendorReviewEmail: {
		asynq.Queue(constants.QueueCritical),
		asynq.MaxRetry(5),
		asynq.Timeout(30 * time.Second),
	},
}

func newTask(taskType string, payload interface{}, opts ...asynq.Option) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", taskType, err)
	}
	options := append(append([]asynq.Option{}, taskDefaults[taskType]...), opts...)
	return asynq.NewTask(taskType, body, options...), nil
}

// NewOrderStatusEmailTask 订单状态邮件任务
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload, opts ...asynq.Option) (*asynq.Task, error) {
	return newTask(TaskOrderStatusEmail, payload, opts...)
}

// NewVendorReviewEmailTask 供应商审核邮件任务
func NewVendorReviewEmailTask(payload VendorReviewEmailPayload, opts ...asynq.Option) (*asynq.Task, error) {
	return newTask(TaskVendorReviewEmail, payload, opts...)
}

// DecodePayload 解析任务载荷
func DecodePayload[T any](task *asynq.Task) (T, error) {
	var payload T
	if task == nil {
		return payload, fmt.Errorf("task is nil")
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, fmt.Errorf("decode %s payload: %w", task.Type(), err)
	}
	return payload, nil
}
