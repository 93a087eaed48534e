package repository

import (
	"strings"

	"github.com/gemdesk/internal/models"

	"gorm.io/gorm"
)

// RPCAuditLogRepository doAll 审计日志数据访问接口
type RPCAuditLogRepository interface {
	Create(log *models.RPCAuditLog) error
	List(filter RPCAuditListFilter) ([]models.RPCAuditLog, int64, error)
}

// GormRPCAuditLogRepository GORM 实现
type GormRPCAuditLogRepository struct {
	db *gorm.DB
}

// NewRPCAuditLogRepository 创建 doAll 审计日志仓库
func NewRPCAuditLogRepository(db *gorm.DB) *GormRPCAuditLogRepository {
	return &GormRPCAuditLogRepository{db: db}
}

// Create 创建审计日志
func (r *GormRPCAuditLogRepository) Create(log *models.RPCAuditLog) error {
	if log == nil {
		return nil
	}
	return r.db.Create(log).Error
}

// List 管理端查询审计日志
func (r *GormRPCAuditLogRepository) List(filter RPCAuditListFilter) ([]models.RPCAuditLog, int64, error) {
	query := r.db.Model(&models.RPCAuditLog{})
	if filter.ActorID != 0 {
		query = query.Where("actor_id = ?", filter.ActorID)
	}
	if target := strings.TrimSpace(filter.Target); target != "" {
		query = query.Where("target = ?", target)
	}
	if action := strings.TrimSpace(filter.Action); action != "" {
		query = query.Where("action = ?", action)
	}
	if filter.Allowed != nil {
		query = query.Where("allowed = ?", *filter.Allowed)
	}

	return findPage[models.RPCAuditLog](query, listSpec{
		page:     filter.Page,
		pageSize: filter.PageSize,
		fallback: "id DESC",
	})
}
