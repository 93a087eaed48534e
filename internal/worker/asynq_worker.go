package worker

import (
	"context"
	"errors"
	"strings"

	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/logger"
	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/provider"
	"github.com/gemdesk/internal/queue"
	"github.com/gemdesk/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskVendorReviewEmail, c.handleVendorReviewEmail)
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_order_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.DecodePayload[queue.OrderStatusEmailPayload](task)
	if err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	receiver := strings.TrimSpace(order.CustomerEmail)
	if receiver == "" {
		logger.Debugw("worker_order_status_email_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	emailService := c.resolveEmailService()
	if emailService == nil {
		logger.Warnw("worker_order_status_email_skip_email_service_nil", "order_id", order.ID)
		return nil
	}
	input := buildOrderStatusEmailInput(order, payload.Status)
	if err := emailService.SendOrderStatusEmail(receiver, input, ""); err != nil {
		if isPermanentEmailError(err) {
			logger.Warnw("worker_order_status_email_dropped", "order_id", order.ID, "order_no", order.OrderNo, "error", err)
			return nil
		}
		logger.Warnw("worker_order_status_email_send_failed", "order_id", order.ID, "order_no", order.OrderNo, "error", err)
		return err
	}
	logger.Infow("worker_order_status_email_sent", "order_id", order.ID, "order_no", order.OrderNo, "status", input.Status)
	return nil
}

func (c *Consumer) handleVendorReviewEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_vendor_review_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.DecodePayload[queue.VendorReviewEmailPayload](task)
	if err != nil {
		logger.Warnw("worker_vendor_review_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.UserID == 0 {
		logger.Debugw("worker_vendor_review_email_skip_invalid_payload", "user_id", payload.UserID)
		return nil
	}
	user, err := c.UserRepo.GetByID(payload.UserID)
	if err != nil {
		logger.Warnw("worker_vendor_review_email_fetch_user_failed", "user_id", payload.UserID, "error", err)
		return err
	}
	if user == nil || strings.TrimSpace(user.Email) == "" {
		logger.Debugw("worker_vendor_review_email_skip_user_not_found", "user_id", payload.UserID)
		return nil
	}
	emailService := c.resolveEmailService()
	if emailService == nil {
		logger.Warnw("worker_vendor_review_email_skip_email_service_nil", "user_id", user.ID)
		return nil
	}
	input := buildVendorReviewEmailInput(user, payload)
	if err := emailService.SendVendorReviewEmail(user.Email, input, ""); err != nil {
		if isPermanentEmailError(err) {
			logger.Warnw("worker_vendor_review_email_dropped", "user_id", user.ID, "error", err)
			return nil
		}
		logger.Warnw("worker_vendor_review_email_send_failed", "user_id", user.ID, "error", err)
		return err
	}
	logger.Infow("worker_vendor_review_email_sent", "user_id", user.ID, "vendor_status", input.VendorStatus)
	return nil
}

// resolveEmailService 发送前按 settings 中的 SMTP 设置刷新运行时配置
func (c *Consumer) resolveEmailService() *service.EmailService {
	if c.EmailService == nil {
		return nil
	}
	if c.SettingService != nil && c.Config != nil {
		setting, err := c.SettingService.GetSMTPSetting(c.Config.Email)
		if err != nil {
			logger.Warnw("worker_smtp_setting_load_failed", "error", err)
		} else {
			cfg := service.SMTPSettingToConfig(setting)
			c.EmailService.SetConfig(&cfg)
		}
	}
	return c.EmailService
}

func buildOrderStatusEmailInput(order *models.Order, status string) service.OrderStatusEmailInput {
	if order == nil {
		return service.OrderStatusEmailInput{}
	}
	status = strings.TrimSpace(status)
	if status == "" {
		status = order.Status
	}
	return service.OrderStatusEmailInput{
		OrderNo:      order.OrderNo,
		CustomerName: strings.TrimSpace(order.CustomerName),
		Status:       status,
		Amount:       order.TotalAmount,
	}
}

func buildVendorReviewEmailInput(user *models.User, payload queue.VendorReviewEmailPayload) service.VendorReviewEmailInput {
	status := strings.TrimSpace(payload.VendorStatus)
	if status == "" && user != nil {
		status = user.VendorStatus
	}
	reason := strings.TrimSpace(payload.Reason)
	input := service.VendorReviewEmailInput{VendorStatus: status, Reason: reason}
	if user != nil {
		input.Name = strings.TrimSpace(user.Name)
		input.BusinessName = strings.TrimSpace(user.BusinessName)
		if input.Reason == "" && status == constants.VendorStatusRejected {
			input.Reason = strings.TrimSpace(user.RejectReason)
		}
	}
	return input
}

// 重试无意义的错误直接丢弃任务
func isPermanentEmailError(err error) bool {
	return errors.Is(err, service.ErrEmailServiceDisabled) ||
		errors.Is(err, service.ErrEmailServiceNotConfigured) ||
		errors.Is(err, service.ErrInvalidEmail) ||
		errors.Is(err, service.ErrEmailRecipientRejected)
}
