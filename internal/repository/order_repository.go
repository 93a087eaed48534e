package repository

import (
	"strings"

	"github.com/gemdesk/internal/models"

	"gorm.io/gorm"
)

var orderSortColumns = []string{"id", "order_no", "total_amount", "status", "created_at"}

// OrderStatusCountRow 订单状态统计行
type OrderStatusCountRow struct {
	Status string
	Total  int64
}

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	List(filter OrderListFilter) ([]models.Order, int64, error)
	GetByID(id uint) (*models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id uint, fromStatus, toStatus string) (int64, error)
	CountGroupByStatus() ([]OrderStatusCountRow, error)
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create 写入订单（种子数据与店铺端下单）
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// List 订单列表
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	query = applySearch(query, filter.Search, []string{"order_no", "customer_name", "customer_email", "customer_phone"}, nil)

	return findPage[models.Order](query, listSpec{
		page:     filter.Page,
		pageSize: filter.PageSize,
		orderBy:  filter.OrderBy,
		sortable: orderSortColumns,
		fallback: "created_at DESC, id DESC",
	})
}

// GetByID 根据 ID 获取订单
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	return firstOrNil[models.Order](r.db, id)
}

// UpdateStatus 以当前状态为条件更新订单状态，返回影响行数
func (r *GormOrderRepository) UpdateStatus(id uint, fromStatus, toStatus string) (int64, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Update("status", toStatus)
	return result.RowsAffected, result.Error
}

// CountGroupByStatus 按状态分组统计订单
func (r *GormOrderRepository) CountGroupByStatus() ([]OrderStatusCountRow, error) {
	var rows []OrderStatusCountRow
	err := r.db.Model(&models.Order{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Order("status ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
