package service

import (
	"fmt"
	"io"

	"github.com/gemdesk/internal/export"
	"github.com/gemdesk/internal/logger"
	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/repository"
)

// OrderService 订单业务服务
type OrderService struct {
	repo  repository.OrderRepository
	queue EmailTaskQueue
}

// NewOrderService 创建订单服务
func NewOrderService(repo repository.OrderRepository, queueClient EmailTaskQueue) *OrderService {
	return &OrderService{repo: repo, queue: queueClient}
}

// List 订单列表
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.repo.List(filter)
}

// Get 订单详情
func (s *OrderService) Get(id uint) (*models.Order, error) {
	order, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// UpdateStatus 按流转规则更新订单状态并入队通知邮件
func (s *OrderService) UpdateStatus(id uint, status string) (*models.Order, error) {
	target := normalizeOrderStatus(status)
	if !IsValidOrderStatus(target) {
		return nil, ErrOrderStatusInvalid
	}
	order, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !CanTransitionOrder(order.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrOrderStatusInvalid, order.Status, target)
	}
	affected, err := s.repo.UpdateStatus(id, order.Status, target)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// 并发修改导致前置状态不匹配
		return nil, fmt.Errorf("%w: status changed concurrently", ErrOrderStatusInvalid)
	}
	previous := order.Status
	order.Status = target

	skipped, err := enqueueOrderStatusEmailTaskIfEligible(s.queue, order, target)
	if err != nil {
		logger.Warnw("order_status_email_enqueue_failed", "order_id", id, "status", target, "error", err)
	} else if skipped {
		logger.Debugw("order_status_email_skipped", "order_id", id, "status", target)
	}
	logger.Infow("order_status_updated", "order_id", id, "from", previous, "to", target)
	return order, nil
}

// CountByStatus 按状态统计订单数
func (s *OrderService) CountByStatus() (map[string]int64, error) {
	rows, err := s.repo.CountGroupByStatus()
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}

// Export 按筛选条件导出订单为 XLSX
func (s *OrderService) Export(w io.Writer, filter repository.OrderListFilter) error {
	all := make([]models.Order, 0)
	filter.PageSize = exportPageSize
	for page := 1; ; page++ {
		filter.Page = page
		rows, total, err := s.repo.List(filter)
		if err != nil {
			return err
		}
		all = append(all, rows...)
		if len(rows) == 0 || int64(len(all)) >= total {
			break
		}
	}
	return export.WriteWorkbook(w, export.OrdersSheet(all))
}
