package repository

import (
	"github.com/gemdesk/internal/models"

	"gorm.io/gorm"
)

var reviewSortColumns = []string{"id", "rating", "created_at"}

// ReviewRepository 评价数据访问接口
type ReviewRepository interface {
	List(filter ReviewListFilter) ([]models.Review, int64, error)
	GetByID(id uint) (*models.Review, error)
	SetHidden(id uint, hidden bool) error
	Delete(id uint) error
}

// GormReviewRepository GORM 实现
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓库
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// List 评价列表
func (r *GormReviewRepository) List(filter ReviewListFilter) ([]models.Review, int64, error) {
	query := r.db.Model(&models.Review{})
	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.IsHidden != nil {
		query = query.Where("is_hidden = ?", *filter.IsHidden)
	}
	query = applySearch(query, filter.Search, []string{"customer_name", "comment"}, nil)

	return findPage[models.Review](query, listSpec{
		page:     filter.Page,
		pageSize: filter.PageSize,
		orderBy:  filter.OrderBy,
		sortable: reviewSortColumns,
		fallback: "created_at DESC, id DESC",
	})
}

// GetByID 根据 ID 获取评价
func (r *GormReviewRepository) GetByID(id uint) (*models.Review, error) {
	return firstOrNil[models.Review](r.db, id)
}

// SetHidden 更新隐藏状态
func (r *GormReviewRepository) SetHidden(id uint, hidden bool) error {
	return r.db.Model(&models.Review{}).Where("id = ?", id).Update("is_hidden", hidden).Error
}

// Delete 删除评价
func (r *GormReviewRepository) Delete(id uint) error {
	return r.db.Delete(&models.Review{}, id).Error
}
