package repository

import (
	"strings"

	"github.com/gemdesk/internal/models"

	"gorm.io/gorm"
)

// UserLoginLogRepository 登录审计记录，只追加不修改
type UserLoginLogRepository interface {
	Create(log *models.UserLoginLog) error
	List(filter LoginLogListFilter) ([]models.UserLoginLog, int64, error)
}

type GormUserLoginLogRepository struct {
	db *gorm.DB
}

func NewUserLoginLogRepository(db *gorm.DB) *GormUserLoginLogRepository {
	return &GormUserLoginLogRepository{db: db}
}

func (r *GormUserLoginLogRepository) Create(log *models.UserLoginLog) error {
	if log == nil {
		return nil
	}
	return r.db.Create(log).Error
}

// scopes 空值条件不参与过滤，邮箱按小写精确匹配
func (f LoginLogListFilter) scopes() []func(*gorm.DB) *gorm.DB {
	var scopes []func(*gorm.DB) *gorm.DB
	add := func(active bool, cond string, arg interface{}) {
		if active {
			scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where(cond, arg) })
		}
	}
	email := strings.ToLower(strings.TrimSpace(f.Email))
	status := strings.TrimSpace(f.Status)
	ip := strings.TrimSpace(f.ClientIP)

	add(f.UserID != 0, "user_id = ?", f.UserID)
	add(email != "", "email = ?", email)
	add(status != "", "status = ?", status)
	add(ip != "", "client_ip = ?", ip)
	if f.CreatedFrom != nil {
		add(true, "created_at >= ?", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		add(true, "created_at <= ?", *f.CreatedTo)
	}
	return scopes
}

// List 最新记录在前
func (r *GormUserLoginLogRepository) List(filter LoginLogListFilter) ([]models.UserLoginLog, int64, error) {
	query := r.db.Model(&models.UserLoginLog{}).Scopes(filter.scopes()...)
	return findPage[models.UserLoginLog](query, listSpec{
		page:     filter.Page,
		pageSize: filter.PageSize,
		fallback: "id DESC",
	})
}
