package repository

import (
	"strings"

	"github.com/gemdesk/internal/models"

	"gorm.io/gorm"
)

var faqSortColumns = []string{"id", "sort_order", "category", "created_at"}

// FAQRepository FAQ 数据访问接口
type FAQRepository interface {
	List(filter FAQListFilter) ([]models.FAQ, int64, error)
	GetByID(id uint) (*models.FAQ, error)
	Create(faq *models.FAQ) error
	Update(faq *models.FAQ) error
	SoftDelete(id uint) error
}

// GormFAQRepository GORM 实现
type GormFAQRepository struct {
	db *gorm.DB
}

// NewFAQRepository 创建 FAQ 仓库
func NewFAQRepository(db *gorm.DB) *GormFAQRepository {
	return &GormFAQRepository{db: db}
}

// List FAQ 列表
func (r *GormFAQRepository) List(filter FAQListFilter) ([]models.FAQ, int64, error) {
	query := r.db.Model(&models.FAQ{})
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	query = applySearch(query, filter.Search, []string{"question", "answer"}, nil)

	return findPage[models.FAQ](query, listSpec{
		page:     filter.Page,
		pageSize: filter.PageSize,
		orderBy:  filter.OrderBy,
		sortable: faqSortColumns,
		fallback: "sort_order DESC, id ASC",
	})
}

// GetByID 根据 ID 获取 FAQ
func (r *GormFAQRepository) GetByID(id uint) (*models.FAQ, error) {
	return firstOrNil[models.FAQ](r.db, id)
}

// Create 创建 FAQ
func (r *GormFAQRepository) Create(faq *models.FAQ) error {
	return r.db.Create(faq).Error
}

// Update 更新 FAQ
func (r *GormFAQRepository) Update(faq *models.FAQ) error {
	return r.db.Save(faq).Error
}

// SoftDelete 软删除 FAQ
func (r *GormFAQRepository) SoftDelete(id uint) error {
	return r.db.Delete(&models.FAQ{}, id).Error
}
